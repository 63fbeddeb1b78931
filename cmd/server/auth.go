package main

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
)

const adminTokenHeader = "X-Admin-Token"

// requireAdmin guards the admin routes with the shared ADMIN_TOKEN. An empty
// configured token disables them entirely.
func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeError(w, http.StatusServiceUnavailable, "admin_disabled", "admin endpoints are disabled")
			return
		}

		if !validToken(s.adminToken, r.Header.Get(adminTokenHeader)) {
			log.Warn().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("rejected admin request")
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func validToken(expected, provided string) bool {
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
