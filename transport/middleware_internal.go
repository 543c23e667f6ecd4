package transport

import (
	"net/http"
)

// InternalMiddleware checks for the static internal service key. It guards
// endpoints only trusted peers (the OAuth edge) may call.
func InternalMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Header.Get("Authorization") != "Bearer "+apiKey {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
