package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig collects everything NewRouter mounts.
type RouterConfig struct {
	Courts     CourtService
	TimeSlots  TimeSlotService
	Bookings   BookingService
	Auth       AuthService
	Tokens     TokenParser
	Log        *zap.Logger
	CORSOrigin string

	// Registry receives the HTTP collectors and backs /metrics.
	Registry *prometheus.Registry
}

// NewRouter builds the full API.
func NewRouter(cfg RouterConfig) http.Handler {
	metrics := NewMetrics(cfg.Registry)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(cfg.Log))         // structured access log
	r.Use(CORS(cfg.CORSOrigin))
	r.Use(metrics.Middleware)

	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/courts", NewCourtHandler(cfg.Courts, cfg.Log).Routes)
		r.Route("/timeslots", NewTimeSlotHandler(cfg.TimeSlots, cfg.Log).Routes)
		r.Route("/auth", NewAuthHandler(cfg.Auth, cfg.Tokens, cfg.Log).Routes)
		r.Route("/bookings", func(r chi.Router) {
			r.Use(Authenticate(cfg.Tokens))
			NewBookingHandler(cfg.Bookings, cfg.Log).Routes(r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return r
}
