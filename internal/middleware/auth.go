package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// RequireToken guards the content management routes with a static shared
// secret, accepted as "Authorization: Bearer <token>" or a "token"
// form/query field. There is deliberately no default secret: with none
// configured the routes answer 503 instead of falling back to a weak
// placeholder.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				deny(w, http.StatusServiceUnavailable, "content management is disabled: no admin token configured")
				return
			}
			got := bearerToken(r)
			if got == "" {
				got = r.URL.Query().Get("token")
			}
			if got == "" && r.Method != http.MethodGet {
				if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
					got = r.FormValue("token")
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				deny(w, http.StatusUnauthorized, "invalid or missing token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
