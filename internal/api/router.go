package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes
// configured. Every endpoint is mounted both at the root and under
// /api, which is the prefix the web client uses. Rate limiting is
// applied globally: 60 requests per minute per IP.
func NewRouter(handlers *Handlers, db dbPinger, redisClient redisPinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(60, time.Minute))

	health := HealthHandlerFunc(db, redisClient, log)

	mount := func(r chi.Router) {
		r.Get("/health", health)

		r.Post("/routes", handlers.CreateRoute)
		r.Get("/routes", handlers.ListRoutes)
		r.Get("/routes/{id}", handlers.GetRoute)
		r.Put("/routes/{id}", handlers.UpdateRoute)
		r.Delete("/routes/{id}", handlers.DeleteRoute)
		r.Post("/routes/{id}/reorder", handlers.ReorderRoute)
		r.Get("/routes/{id}/export-pdf", handlers.ExportRoutePDF)
		r.Post("/calculate-route", handlers.CalculateRoute)

		r.Get("/tourist-spots", handlers.ListTouristSpots)
		r.Get("/tourist-spots/{id}", handlers.GetTouristSpot)

		r.Get("/search-places", handlers.SearchPlaces)
	}

	r.Group(mount)
	r.Route("/api", mount)

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
