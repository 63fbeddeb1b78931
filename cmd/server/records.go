package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/store"
)

const maxCompare = 4

func (s *server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := estimate.EstimateHouse(s.provider.Current(), req.Input)
	if err != nil {
		writeFailure(w, err)
		return
	}
	share, err := s.shares.Save(r.Context(), req.Input, res.Total())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, share)
}

func (s *server) handleShareGet(w http.ResponseWriter, r *http.Request) {
	share, err := s.shares.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) < 2 || len(ids) > maxCompare {
		writeError(w, http.StatusBadRequest, "invalid_request", "ids must list between 2 and 4 share ids")
		return
	}

	shares, err := s.shares.Compare(r.Context(), ids)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shares": shares})
}

func (s *server) handleLeadCreate(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := estimate.EstimateHouse(s.provider.Current(), req.Input)
	if err != nil {
		writeFailure(w, err)
		return
	}
	lead, err := s.leads.Create(r.Context(), store.Lead{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		Notes: strings.TrimSpace(req.Notes),
		Input: req.Input,
		Total: res.Total(),
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	log.Info().Int64("lead_id", lead.ID).Str("request_id", requestID(r)).Msg("lead captured")
	writeJSON(w, http.StatusCreated, lead)
}

func (s *server) handleLeadsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	leads, err := s.leads.List(r.Context(), query)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "leads": leads})
}

func (s *server) handleLeadGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "lead id must be a positive integer")
		return
	}
	lead, err := s.leads.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}
