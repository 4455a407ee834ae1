package routing

import (
	"net/http"
	"strings"
)

// corsMiddleware mirrors the original site's policy: only the frontend
// origin (plus its 127.0.0.1 alias during local development) may make
// credentialed requests. Unknown origins get the frontend origin back,
// which the browser then refuses to match.
func corsMiddleware(frontendURL string) func(http.Handler) http.Handler {
	allowed := []string{frontendURL}
	if strings.Contains(frontendURL, "localhost") {
		allowed = append(allowed, strings.Replace(frontendURL, "localhost", "127.0.0.1", 1))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowOrigin := allowed[0]
			for _, candidate := range allowed {
				if origin == candidate {
					allowOrigin = origin
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
