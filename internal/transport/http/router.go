// Package httptransport assembles the HTTP surface: shared middleware, the
// health and metrics endpoints, and the public, caller and admin route groups
// each component handler contributes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"bicns/internal/platform/metrics"
	"bicns/pkg/platform/httputil"
	adminmw "bicns/pkg/platform/middleware/admin"
	authmw "bicns/pkg/platform/middleware/auth"
	"bicns/pkg/platform/middleware/metadata"
	"bicns/pkg/platform/middleware/request"
	"bicns/pkg/platform/middleware/requesttime"
)

// PublicRoutes serve reads without authentication.
type PublicRoutes interface {
	RegisterPublic(r chi.Router)
}

// CallerRoutes require a caller token.
type CallerRoutes interface {
	Register(r chi.Router)
}

// AdminRoutes require the admin token.
type AdminRoutes interface {
	RegisterAdmin(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger     *slog.Logger
	Validator  authmw.JWTValidator
	AdminToken string
	Metrics    *metrics.Metrics
	Health     map[string]HealthCheck

	Public []PublicRoutes
	Caller []CallerRoutes
	Admin  []AdminRoutes
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(logger))
	r.Use(request.Recovery(logger))
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	r.Get("/healthz", healthHandler(cfg.Health))

	for _, h := range cfg.Public {
		h.RegisterPublic(r)
	}
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireCaller(cfg.Validator, logger))
		for _, h := range cfg.Caller {
			h.Register(r)
		}
	})
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(cfg.AdminToken, logger))
		for _, h := range cfg.Admin {
			h.RegisterAdmin(r)
		}
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok"}
		status := http.StatusOK
		for _, name := range names {
			if resp.Checks == nil {
				resp.Checks = make(map[string]string, len(names))
			}
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
