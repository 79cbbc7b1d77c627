package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rishov2004/Blood-Donation/internal/donor"
	"github.com/Rishov2004/Blood-Donation/internal/donor/store"
)

func newTestRouter(t *testing.T, checks map[string]HealthCheck) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := donor.NewService(store.NewInMemory())
	return NewRouter(Dependencies{
		Logger:       logger,
		Donors:       donor.NewHandler(svc, logger),
		HealthChecks: checks,
	})
}

func TestHealthzHealthy(t *testing.T) {
	router := newTestRouter(t, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthy healthz, got %d", rec.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode healthz response: %v", err)
	}
	if resp.Status != "ok" || resp.Components["postgres"] != "ok" {
		t.Fatalf("unexpected healthz body: %+v", resp)
	}
}

func TestHealthzDegraded(t *testing.T) {
	router := newTestRouter(t, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from degraded healthz, got %d", rec.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode healthz response: %v", err)
	}
	if resp.Status != "degraded" || resp.Components["redis"] != "unhealthy" {
		t.Fatalf("unexpected healthz body: %+v", resp)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected Prometheus exposition output from /metrics")
	}
}

func TestDonorRoutesMounted(t *testing.T) {
	router := newTestRouter(t, nil)

	body := bytes.NewReader([]byte(`{
		"name": "Asha Verma",
		"age": 29,
		"blood_group": "A+",
		"phone": "+919876543210",
		"email": "asha@example.com",
		"latitude": 28.6139,
		"longitude": 77.2090
	}`))
	req := httptest.NewRequest(http.MethodPost, "/donors", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from mounted donor route, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header from middleware chain")
	}
}
