package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Simplici0/homecost/internal/pricing"
)

// reload rebuilds the served cost table from the store. On failure the
// previous table stays in effect.
func (s *server) reload(ctx context.Context) (*pricing.Table, error) {
	table, err := s.provider.Refresh(ctx, s.costs, s.base)
	if err != nil {
		log.Warn().Err(err).Msg("cost table reload failed, keeping previous table")
		return nil, err
	}
	log.Info().Int("entries", len(table.Entries())).Int("locations", len(table.Locations())).Msg("cost table reloaded")
	return table, nil
}

// writeApplied reports a successful store write and whether the live table
// picked it up.
func (s *server) writeApplied(w http.ResponseWriter, r *http.Request, saved any) {
	resp := map[string]any{"saved": saved, "applied": true}
	if _, err := s.reload(r.Context()); err != nil {
		resp["applied"] = false
		resp["reloadError"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleAdminEntriesList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.costs.ListEntries(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *server) handleAdminEntryUpsert(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry := req.entry()
	// The entry must fit the live table, including tiers that only exist
	// in the base document, or every later reload would fail.
	doc := s.provider.Current().Document()
	doc.SetEntry(entry)
	if _, err := pricing.NewTable(doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.costs.UpsertEntry(r.Context(), entry); err != nil {
		writeFailure(w, err)
		return
	}
	s.writeApplied(w, r, entry)
}

func (s *server) handleAdminRatesGet(w http.ResponseWriter, r *http.Request) {
	rates, err := s.costs.GetRates(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (s *server) handleAdminRatesUpdate(w http.ResponseWriter, r *http.Request) {
	var req ratesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rates := pricing.Surcharges(req)
	if err := s.costs.UpdateRates(r.Context(), rates); err != nil {
		writeFailure(w, err)
		return
	}
	s.writeApplied(w, r, rates)
}

func (s *server) handleAdminLocationsList(w http.ResponseWriter, r *http.Request) {
	locations, err := s.costs.ListLocations(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

func (s *server) handleAdminLocationUpsert(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.ToLower(strings.TrimSpace(req.Name))
	if err := s.costs.UpsertLocation(r.Context(), req.Name, req.Factor); err != nil {
		writeFailure(w, err)
		return
	}
	s.writeApplied(w, r, req)
}

func (s *server) handleAdminReload(w http.ResponseWriter, r *http.Request) {
	table, err := s.reload(r.Context())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "reload_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"entries":   len(table.Entries()),
		"locations": len(table.Locations()),
	})
}
