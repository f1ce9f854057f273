package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/oraesatta/cheoresono/internal/service"
)

const stackBufSize = 9 << 11

// Recover helps in recovering panics in HTTP handlers.
// we could also add a client to notify in the future.
type Recover struct{}

// NewRecover will create a Recover instance.
func NewRecover() *Recover {
	return &Recover{}
}

// Middleware intercepts any panic and helps our server to recover.
// Note: It is better to add this as the innermost middleware of the chain.
func (r *Recover) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// following defer will recover from panics from the handler
		defer func() {
			rec := recover()
			if rec != nil {
				r.logError(req.Method + " " + req.URL.Path)
				http.Error(w, service.ErrPanic.Error(), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, req)
	})
}

// logError prints stacktrace.
func (r *Recover) logError(operation string) {
	// we could also notify this to some notification mechanism in the future
	stackBuf := make([]byte, stackBufSize)
	stackSize := runtime.Stack(stackBuf, true)
	slog.Error(fmt.Sprintf(
		"------------------------------- \n operation:[%s] \n Trace:\n %s \n--------------------------------",
		operation,
		string(stackBuf[:stackSize])),
	)
}
