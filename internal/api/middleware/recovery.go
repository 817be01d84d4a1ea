package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Recovery returns middleware that converts panics into JSON 500 responses.
// The panic value is serialized into the body the same way handler errors
// are, keeping the error contract of the webhook endpoints.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.String("request_id", RequestIDFromContext(r.Context())),
						zap.Stack("stack"),
					)

					writeError(w, http.StatusInternalServerError, fmt.Sprintf("%v", rec))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
