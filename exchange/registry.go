package exchange

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Registry is the closed set of supported exchange adapters,
// resolved once at startup
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates the adapter registry, with all adapters sharing
// the given HTTP client
func NewRegistry(client *http.Client) *Registry {
	adapters := []Adapter{
		NewBinance(client),
		NewBybit(client),
		NewGarantex(client),
	}

	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		byName[strings.ToLower(a.Name())] = a
	}

	return &Registry{
		adapters: byName,
	}
}

// Resolve returns the adapter for the given exchange name.
// The lookup is case-insensitive
func (r *Registry) Resolve(name string) (Adapter, error) {
	adapter, ok := r.adapters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, name)
	}

	return adapter, nil
}

// Names returns the sorted names of all registered exchanges
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
