package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"usercrud/internal/metrics"
	"usercrud/internal/models"
	"usercrud/internal/service"

	"github.com/google/uuid"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRequestMiddleware_RequestID(t *testing.T) {
	s := &service.Service{Users: &mockUsers{users: []models.User{}}}
	r := newTestRouter(t, s)

	t.Run("generated when missing", func(t *testing.T) {
		w := serve(r, formRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected generated uuid, got %q (%v)", id, err)
		}
	})

	t.Run("echoed when provided", func(t *testing.T) {
		req := formRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := serve(r, req)
		if got := w.Header().Get(requestIDHeader); got != "abc-123" {
			t.Fatalf("expected echoed id, got %q", got)
		}
	})
}

func TestRequestMiddleware_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := metrics.NewMetrics(provider.Meter(metrics.MeterName))
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	s := &service.Service{Users: &mockUsers{users: []models.User{}}}
	r := newTestRouter(t, s, WithMetrics(m, nil))

	serve(r, formRequest(http.MethodDelete, "/users/1", nil))
	serve(r, formRequest(http.MethodDelete, "/users/2", nil))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "http_requests_total" {
				continue
			}
			sum := md.Data.(metricdata.Sum[int64])
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value("route")
				if route.AsString() != "/users/:id" {
					t.Fatalf("expected route pattern, got %q", route.AsString())
				}
				total += dp.Value
			}
		}
	}
	if total != 2 {
		t.Fatalf("expected 2 recorded requests, got %d", total)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	exposition := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	withEndpoint := newTestRouter(t, &service.Service{}, WithMetrics(nil, exposition))
	if w := serve(withEndpoint, formRequest(http.MethodGet, "/metrics", nil)); w.Code != http.StatusOK || w.Body.String() != "# metrics" {
		t.Fatalf("unexpected /metrics response: %d %q", w.Code, w.Body.String())
	}

	without := newTestRouter(t, &service.Service{})
	if w := serve(without, formRequest(http.MethodGet, "/metrics", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"ok", nil, http.StatusOK, "ok"},
		{"db unreachable", errors.New("closed"), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t, &service.Service{Health: &mockHealth{err: tc.pingErr}})
			w := serve(r, formRequest(http.MethodGet, "/health", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d", w.Code, tc.wantCode)
			}
			var out struct {
				Status string `json:"status"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Status != tc.wantStatus {
				t.Fatalf("status field: got %q, want %q", out.Status, tc.wantStatus)
			}
		})
	}
}

func TestSwaggerToggle(t *testing.T) {
	on := newTestRouter(t, &service.Service{}, WithSwagger(true))
	if w := serve(on, formRequest(http.MethodGet, "/swagger/doc.json", nil)); w.Code != http.StatusOK {
		t.Fatalf("expected swagger doc, got %d", w.Code)
	}

	off := newTestRouter(t, &service.Service{})
	if w := serve(off, formRequest(http.MethodGet, "/swagger/doc.json", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with swagger disabled, got %d", w.Code)
	}
}
