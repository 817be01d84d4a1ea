package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware implementing the browser cross-origin contract
// for the configured origin allow-list. Allowed origins are echoed back
// with credentials enabled and all methods permitted; preflight requests
// (OPTIONS carrying Origin and Access-Control-Request-Method) short-circuit
// with 204. Requests from other origins are still served, just without
// CORS headers.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					// Wildcard header lists are invalid with credentials.
					w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
				}
			}

			// A bare OPTIONS request is not a preflight; it falls through
			// to routing.
			if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
