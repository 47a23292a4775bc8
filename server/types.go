package server

import "github.com/dkozlov/p2prates/snapshot"

type P2PRatesResponse struct {
	Results []snapshot.P2PEntry `json:"results"`
}

type MarketRatesResponse struct {
	Results []snapshot.MarketEntry `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
