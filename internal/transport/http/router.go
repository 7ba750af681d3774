package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ratelimit "phishshield/internal/ratelimit/middleware"
	"phishshield/internal/urlrisk/handler"
	"phishshield/pkg/platform/httputil"
	"phishshield/pkg/platform/middleware/admin"
	"phishshield/pkg/platform/middleware/metadata"
	"phishshield/pkg/platform/middleware/request"
	"phishshield/pkg/platform/middleware/requesttime"
)

// RateLimitGroup names the bucket shared by the analyze endpoints.
const RateLimitGroup = "analyze"

// HealthCheck probes one optional backend for /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies are the components the router mounts.
type Dependencies struct {
	Analysis    *handler.Handler
	Logger      *slog.Logger
	Gatherer    prometheus.Gatherer
	RateLimiter *ratelimit.Middleware
	AdminToken  string
	Health      []HealthCheck
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Recovery(d.Logger))
	r.Use(request.Logger(d.Logger))

	r.Get("/health", healthHandler(d.Health))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.PerIP(RateLimitGroup))
		}
		d.Analysis.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(d.AdminToken, d.Logger))
		d.Analysis.RegisterAdmin(r)
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler reports "ok" unless a configured backend fails its probe.
func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				resp.Checks[c.Name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
