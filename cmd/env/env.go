package env

// Prefix is the env-var prefix for all CLI flags
const Prefix = "P2PRATES"
