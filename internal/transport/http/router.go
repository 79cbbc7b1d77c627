// Package httptransport assembles the HTTP surface: the donor routes, the
// health endpoint, and the Prometheus scrape endpoint, behind the shared
// middleware chain.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rishov2004/Blood-Donation/internal/donor"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/httputil"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/middleware/metadata"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/middleware/requestid"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/middleware/requesttime"
)

// HealthCheck pings one backing component. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Logger *slog.Logger
	Donors *donor.Handler

	// HealthChecks maps component names ("postgres", "redis") to their ping.
	HealthChecks map[string]HealthCheck
}

// NewRouter wires all endpoints.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	deps.Donors.Register(r)

	r.Get("/healthz", handleHealth(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// handleHealth reports per-component status. Any failing component turns the
// response into a 503 so load balancers stop routing here.
func handleHealth(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(deps.HealthChecks))
		for name, check := range deps.HealthChecks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				components[name] = "unhealthy"
				if deps.Logger != nil {
					deps.Logger.WarnContext(ctx, "health check failed",
						"component", name,
						"error", err.Error(),
					)
				}
				continue
			}
			components[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(components) > 0 {
			body["components"] = components
		}
		httputil.WriteJSON(w, status, body)
	}
}
