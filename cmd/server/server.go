package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/homecost/internal/db"
	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/rooms"
	"github.com/Simplici0/homecost/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	db          *sql.DB
	provider    *pricing.Provider
	base        pricing.Document
	catalog     *rooms.Catalog
	costs       *store.CostStore
	shares      *store.ShareStore
	leads       *store.LeadStore
	adminToken  string
	upsellLimit int
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rooms", s.handleRooms)
		r.Post("/estimates/house", s.handleHouseEstimate)
		r.Post("/estimates/house/export", s.handleHouseExport)
		r.Post("/estimates/rooms", s.handleRoomsEstimate)
		r.Post("/financing", s.handleFinancing)

		r.Post("/shares", s.handleShareCreate)
		r.Get("/shares/{id}", s.handleShareGet)
		r.Get("/compare", s.handleCompare)

		r.Post("/leads", s.handleLeadCreate)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/leads", s.handleLeadsList)
			r.Get("/leads/{id}", s.handleLeadGet)
			r.Get("/admin/cost-entries", s.handleAdminEntriesList)
			r.Put("/admin/cost-entries", s.handleAdminEntryUpsert)
			r.Get("/admin/rates", s.handleAdminRatesGet)
			r.Put("/admin/rates", s.handleAdminRatesUpdate)
			r.Get("/admin/locations", s.handleAdminLocationsList)
			r.Put("/admin/locations", s.handleAdminLocationUpsert)
			r.Post("/admin/reload", s.handleAdminReload)
		})
	})

	return r
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", requestID(r)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := db.Ping(r.Context(), s.db); err != nil {
		log.Error().Err(err).Msg("health check: database unreachable")
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status, "service": "homecost"})
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Problems []string          `json:"problems,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

// decodeJSON reads a size-limited JSON body into dst and runs its
// validation rules when it has any.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return false
	}
	if v, ok := dst.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			writeValidation(w, err)
			return false
		}
	}
	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "invalid_request", Message: err.Error()}
	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = make(map[string]string, len(fields))
		for k, v := range fields {
			resp.Fields[k] = v.Error()
		}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeFailure maps domain and store errors onto status codes.
func writeFailure(w http.ResponseWriter, err error) {
	var invalid *estimate.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    "invalid_input",
			Message:  "the house description is incomplete or inconsistent",
			Problems: invalid.Problems(),
		})
	case errors.Is(err, estimate.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	case errors.Is(err, finance.ErrInvalidTerms):
		writeError(w, http.StatusUnprocessableEntity, "invalid_terms", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrInvalid):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
