package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope used for all application instruments.
const MeterName = "usercrud"

// Metrics holds the HTTP request instruments.
type Metrics struct {
	requests metric.Int64Counter
	duration metric.Int64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	duration, err := meter.Int64Histogram("http_request_duration_ms",
		metric.WithDescription("HTTP request handling time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_ms histogram: %w", err)
	}

	return &Metrics{
		requests: requests,
		duration: duration,
	}, nil
}

// Record registers one handled request. route is the matched route pattern,
// not the raw path, to keep cardinality bounded.
func (m *Metrics) Record(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.duration.Record(ctx, elapsed.Milliseconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}
