package middleware

import (
	"net/http"

	"github.com/google/uuid"
	slogctx "github.com/veqryn/slog-context"
)

// RequestIDHeader carries the caller supplied correlation ID.
const RequestIDHeader = "X-Request-Id"

// RequestID attaches a correlation ID to the request scoped logger and echoes
// it back on the response. Requests without the header get a fresh UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := slogctx.With(r.Context(), "requestId", id)
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
