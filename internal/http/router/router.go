package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"delivery-dispatch/internal/http/handlers"
	mw "delivery-dispatch/internal/http/middleware"
	"delivery-dispatch/internal/http/middleware/ratelimit"
	"delivery-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	base *handlers.Handlers,
	partners *handlers.PartnerHandler,
	orders *handlers.OrderHandler,
	assignments *handlers.AssignmentHandler,
	limiter *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(mw.Observability(logger))
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/partners", func(r chi.Router) {
			r.Get("/", partners.List)
			r.Post("/", partners.Create)
			r.Put("/", partners.Update)
			r.Get("/{id}", partners.GetByID)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/{id}", orders.GetByID)
		})
		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", assignments.List)
			r.Post("/run", assignments.Run)
			r.Get("/metrics", assignments.Metrics)
		})
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
