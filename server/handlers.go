package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dkozlov/p2prates/snapshot"
)

var (
	errUnableToFetchP2PRates    = errors.New("unable to fetch p2p rates")
	errUnableToFetchMarketRates = errors.New("unable to fetch market rates")
)

// P2PRates returns the latest known P2P best prices.
// An optional ?exchange= query param filters by exchange name
func (s *Server) P2PRates(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.LatestP2P(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch p2p snapshot",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchP2PRates,
		)

		return
	}

	if exchange := r.URL.Query().Get("exchange"); exchange != "" {
		entries = filterP2P(entries, exchange)
	}

	writeJSON(w, http.StatusOK, &P2PRatesResponse{
		Results: entries,
	})
}

// MarketRates returns the latest known spot prices.
// An optional ?exchange= query param filters by exchange name
func (s *Server) MarketRates(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.LatestMarket(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch market snapshot",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchMarketRates,
		)

		return
	}

	if exchange := r.URL.Query().Get("exchange"); exchange != "" {
		entries = filterMarket(entries, exchange)
	}

	writeJSON(w, http.StatusOK, &MarketRatesResponse{
		Results: entries,
	})
}

func filterP2P(entries []snapshot.P2PEntry, exchange string) []snapshot.P2PEntry {
	out := make([]snapshot.P2PEntry, 0, len(entries))

	for _, entry := range entries {
		if strings.EqualFold(entry.Exchange, exchange) {
			out = append(out, entry)
		}
	}

	return out
}

func filterMarket(entries []snapshot.MarketEntry, exchange string) []snapshot.MarketEntry {
	out := make([]snapshot.MarketEntry, 0, len(entries))

	for _, entry := range entries {
		if strings.EqualFold(entry.Exchange, exchange) {
			out = append(out, entry)
		}
	}

	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
