package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"codegen-agent-gateway/internal/domain"
	"codegen-agent-gateway/internal/infra/metrics"
)

// checkBearer validates an Authorization header against the configured key.
// The scheme match is exact ("Bearer", case-sensitive); the key match is
// constant-time.
func checkBearer(header, apiKey string) error {
	scheme, credentials, _ := strings.Cut(header, " ")
	if scheme == "" || credentials == "" {
		return domain.ErrNotAuthenticated
	}
	if scheme != "Bearer" {
		return domain.ErrInvalidAuthScheme
	}
	if subtle.ConstantTimeCompare([]byte(credentials), []byte(apiKey)) != 1 {
		return domain.ErrInvalidAPIKey
	}
	return nil
}

// bearerAuth guards /run-agent. Scheme problems are 403, a wrong key is 401,
// and nothing reaches the agent service unless the check passes.
func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := checkBearer(r.Header.Get("Authorization"), s.apiKey)
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, domain.ErrInvalidAPIKey):
			metrics.IncAuthRejection("credential")
			writeDetail(w, http.StatusUnauthorized, "Invalid API Key")
		case errors.Is(err, domain.ErrInvalidAuthScheme):
			metrics.IncAuthRejection("scheme")
			writeDetail(w, http.StatusForbidden, "Invalid authentication scheme")
		default:
			metrics.IncAuthRejection("missing")
			writeDetail(w, http.StatusForbidden, "Not authenticated")
		}
	})
}
