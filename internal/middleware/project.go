package middleware

import "net/http"

// ProjectMiddleware rejects requests whose X-Project-ID header does not match
// the configured project. When projectID is empty the check is disabled.
func ProjectMiddleware(projectID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if projectID != "" && r.Header.Get("X-Project-ID") != projectID {
				respondError(w, "Unknown project", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
