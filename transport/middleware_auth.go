package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/utils/errors"
)

// TokenResolver maps a presented bearer token back to a user id.
type TokenResolver interface {
	Resolve(ctx context.Context, key string) (uint64, error)
}

// AuthMiddleware returns a middleware that resolves opaque bearer tokens.
// It allows public endpoints (like /login, /register, /swagger/) without token.
func AuthMiddleware(resolver TokenResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			userID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed userID into context
			ctx := context.WithValue(r.Context(), constant.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	switch path {
	case "/login", "/register", "/token-auth", "/password-reset", "/password-reset-confirm", "/healthz":
		return true
	}

	return false
}
