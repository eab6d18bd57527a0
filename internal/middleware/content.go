package middleware

import (
	"mime"
	"net/http"
	"strings"
)

// RequireJSON rejects any request on the guarded subtree whose Content-Type
// is not application/json. The protocol's clients send JSON everywhere; the
// 415 fires before any method or route consideration.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := strings.TrimSpace(r.Header.Get("Content-Type"))
		mediaType := ""
		if contentType != "" {
			mediaType, _, _ = mime.ParseMediaType(contentType)
		}

		if mediaType != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_, _ = w.Write([]byte("Unsupported Media Type"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// MethodNotAllowed is the shared 405 handler for JSON subtrees: any path
// under them that is not a defined (method, route) pair answers 405,
// which is what launchers probing the API expect.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte("Method Not Allowed"))
}
