package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/neexbeast/tourist-routes/internal/route"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	repo     RouteRepo
	catalog  SpotCatalog
	searcher PlaceSearcher
	pdf      PDFRenderer
	clock    route.Clock
	log      *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(repo RouteRepo, cat SpotCatalog, searcher PlaceSearcher, pdf PDFRenderer, clock route.Clock, log *slog.Logger) *Handlers {
	return &Handlers{
		repo:     repo,
		catalog:  cat,
		searcher: searcher,
		pdf:      pdf,
		clock:    clock,
		log:      log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to its HTTP status: validation → 400,
// authorization → 403, not found → 404, anything else → 500 with the
// message surfaced.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var vErr *route.ValidationError
	var aErr *route.AuthorizationError
	var nErr *route.NotFoundError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Msg})
	case errors.As(err, &aErr):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": aErr.Msg})
	case errors.As(err, &nErr):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": nErr.Msg})
	default:
		h.log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// HealthCheck pings DB and Redis; returns 200 if both ok, 503 otherwise.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
