package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coursehub/internal/auth"
	"coursehub/internal/domain/models"
	"coursehub/internal/httputil"
)

// AuthMiddleware resolves the caller from an optional bearer token.
// Requests without a token continue as anonymous; services decide what
// anonymous callers may do. A token that fails verification is rejected.
// A nil verifier treats every request as anonymous.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, models.ActorFromClaims(claims)))
		})
	}
}
