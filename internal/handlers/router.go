// Package handlers exposes the trip sheet service as a JSON API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ukydev/tripsheet/internal/auth"
	"github.com/ukydev/tripsheet/internal/middleware"
	"github.com/ukydev/tripsheet/internal/service"
)

// Config carries what the router needs besides the service.
type Config struct {
	// Auth verifies bearer tokens. Nil leaves the API open.
	Auth *auth.Service

	CORSOrigins            []string
	RateLimitRequests      int
	RateLimitWindowSeconds int
	RequestTimeout         time.Duration
	ExpiryWarningDays      int

	// Ping reports the record store's health on /health. Optional.
	Ping func(ctx context.Context) error
}

// Handler serves the API routes.
type Handler struct {
	svc        *service.Service
	expiryDays int
	ping       func(ctx context.Context) error
}

// NewRouter builds the HTTP handler with every route and middleware.
func NewRouter(svc *service.Service, cfg Config) http.Handler {
	h := &Handler{svc: svc, expiryDays: cfg.ExpiryWarningDays, ping: cfg.Ping}
	if h.expiryDays <= 0 {
		h.expiryDays = 30
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRateLimitMiddleware().RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindowSeconds))
		r.Use(middleware.NewAuthMiddleware(cfg.Auth).Authenticate)

		r.Route("/api/trucks", func(r chi.Router) {
			r.Get("/", h.ListTrucks)
			r.Post("/", h.CreateTruck)
			r.Post("/bulk", h.CreateTrucks)
			r.Get("/expiring", h.ExpiringDocuments)
			r.Get("/{id}", h.GetTruck)
			r.Put("/{id}", h.UpdateTruck)
			r.Delete("/{id}", h.DeleteTruck)
		})

		r.Route("/api/drivers", func(r chi.Router) {
			r.Get("/", h.ListDrivers)
			r.Post("/", h.CreateDriver)
			r.Get("/{id}", h.GetDriver)
			r.Put("/{id}", h.UpdateDriver)
			r.Delete("/{id}", h.DeleteDriver)
		})

		r.Route("/api/trips", func(r chi.Router) {
			r.Get("/", h.ListTrips)
			r.Post("/", h.CreateTrip)
			r.Post("/validate-dates", h.ValidateTripDates)
			r.Get("/export", h.ExportTrips)
			r.Get("/{id}", h.GetTrip)
			r.Patch("/{id}", h.UpdateTrip)
			r.Put("/{id}", h.UpdateTrip)
			r.Delete("/{id}", h.DeleteTrip)
			r.Get("/{id}/loads", h.ListLoads)
			r.Post("/{id}/loads", h.CreateLoad)
			r.Get("/{id}/expenses", h.ListExpenses)
			r.Post("/{id}/expenses", h.CreateExpense)
			r.Put("/{id}/expense-sheet", h.SaveExpenseSheet)
		})

		r.Route("/api/loads", func(r chi.Router) {
			r.Post("/validate-date", h.ValidateLoadingDate)
			r.Get("/{id}", h.GetLoad)
			r.Put("/{id}", h.UpdateLoad)
			r.Delete("/{id}", h.DeleteLoad)
			r.Put("/{id}/payment", h.UpdateLoadPayment)
			r.Post("/{id}/payments", h.RecordPayment)
			r.Get("/{id}/courier", h.GetCourier)
			r.Put("/{id}/courier", h.UpsertCourier)
		})

		r.Get("/api/payments/pending", h.PendingPayments)
		r.Get("/api/payments/pending/export", h.ExportPendingPayments)

		r.Route("/api/couriers", func(r chi.Router) {
			r.Get("/", h.ListCouriers)
			r.Delete("/{id}", h.DeleteCourier)
		})

		r.Route("/api/expenses", func(r chi.Router) {
			r.Put("/{id}", h.UpdateExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})

		r.Route("/api/tyres", func(r chi.Router) {
			r.Get("/", h.ListTyres)
			r.Post("/", h.CreateTyre)
			r.Get("/export", h.ExportTyres)
			r.Put("/{id}", h.UpdateTyre)
			r.Delete("/{id}", h.DeleteTyre)
		})

		r.Get("/api/dashboard", h.Dashboard)
		r.Get("/api/dashboard/recent-trips", h.RecentTrips)
	})

	return r
}

// Health reports liveness and, when configured, record store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, envelope{Error: "database unavailable"})
			return
		}
	}
	ok(w, map[string]string{"status": "ok"})
}
