// Package handler maps the wall clock service onto its public HTTP surface.
package handler

import (
	"net/http"

	slogctx "github.com/veqryn/slog-context"

	"github.com/oraesatta/cheoresono/internal/service"
)

// PathCheOreSono is the single public endpoint, Italian for "what time is
// it". Kept verbatim for compatibility with existing callers.
const PathCheOreSono = "/che_ore_sono"

// CurrentTime answers with the current date and time in the configured zone
// as plain text. A failed zone resolution answers 500 with the operator
// remediation hint in the body; the server stays up and the next request
// retries the lookup.
func CurrentTime(wallClock *service.WallClock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := wallClock.NowFormatted(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		_, err = w.Write([]byte(now.String()))
		if err != nil {
			slogctx.Error(r.Context(), "writing response failed", "error", err)
		}
	}
}
