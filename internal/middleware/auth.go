package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/noelps-git/tastemates/internal/config"
	"github.com/noelps-git/tastemates/internal/repositories"
	"github.com/noelps-git/tastemates/internal/security"
	"github.com/noelps-git/tastemates/pkg/logger"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth resolves the caller's session token to an internal user id. A token
// that does not resolve to an existing user fails the whole request with
// 401; handlers downstream can rely on UserID being set.
func Auth(cfg *config.Config, userRepo *repositories.UserRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := security.ValidateJWT(token, cfg.JWTSecret)
			if err != nil {
				unauthorized(w, "invalid or expired session token")
				return
			}

			exists, err := userRepo.UserExists(claims.UserID)
			if err != nil {
				logger.Error("identity lookup failed", "user_id", claims.UserID, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"internal error"}}`))
				return
			}
			if !exists {
				unauthorized(w, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"` + msg + `"}}`))
}

// UserID returns the resolved user id placed in the request context by Auth.
func UserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey).(uint)
	return id, ok
}

// WithUserID is a test hook for building requests that skip the middleware.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
