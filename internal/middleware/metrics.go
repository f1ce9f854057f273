package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const ErrDomainMetrics = "metrics"

func InitMeters(ctx context.Context, cfgApp *commoncfg.Application, meter metric.Meter) (*Meters, error) {
	var err error

	requestCounts, err := meter.Int64Counter(
		"http.request_count",
		metric.WithDescription("Counter of HTTP requests, partitioned by operation and status."),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating http_request_count meter")
	}

	requestDurations, err := meter.Float64Histogram(
		"http.request_duration",
		metric.WithDescription("Incoming end to end duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating http_request_duration meter")
	}

	return &Meters{
		application:      cfgApp,
		requestCounts:    requestCounts,
		requestDurations: requestDurations,
	}, nil
}

// Meters helps with collecting metrics for prometheus from the HTTP server.
type Meters struct {
	application      *commoncfg.Application
	requestCounts    metric.Int64Counter
	requestDurations metric.Float64Histogram
}

// statusWriter captures the status code the wrapped handler writes. Handlers
// that never call WriteHeader implicitly answer 200.
type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware tracks the duration and count of HTTP requests.
func (m *Meters) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestStartTime := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		elapsedTime := float64(time.Since(requestStartTime)) / float64(time.Millisecond)

		// Matched requests carry the route pattern, keeping the label set
		// bounded by the mux registrations. Requests that matched nothing
		// fall back to the raw method and path.
		operation := r.Pattern
		if operation == "" {
			operation = r.Method + " " + r.URL.Path
		}

		// Meters logic
		attrs := metric.WithAttributes(
			otlp.CreateAttributesFrom(*m.application,
				attribute.String(commoncfg.AttrOperation, operation),
				attribute.String("status", strconv.Itoa(sw.status)),
			)...,
		)
		m.requestDurations.Record(r.Context(), elapsedTime, attrs)
		m.requestCounts.Add(r.Context(), 1, attrs)
	})
}
