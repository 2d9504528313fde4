package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"notification-router/internal/common/logging"
)

// BearerAuth rejects requests whose Authorization header does not carry token
func BearerAuth(token string) func(http.Handler) http.Handler {
	expected := []byte("Bearer " + token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(strings.TrimSpace(r.Header.Get("Authorization")))
			if token == "" || subtle.ConstantTimeCompare(got, expected) != 1 {
				logging.Warn("Rejected unauthorized request",
					logging.String("path", r.URL.Path),
					logging.String("remote_addr", r.RemoteAddr))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
