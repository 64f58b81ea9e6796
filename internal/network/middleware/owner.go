package middleware

import (
	"net/http"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/helpers"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
)

// RequireRole - пропускает только запросы с нужной ролью в JWT токене.
// Ставится после jwtauth.Verifier и jwtauth.Authenticator.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !helpers.HasRole(r.Context(), role) {
				logger.Warn("Forbidden request", r.Method, r.RequestURI)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
