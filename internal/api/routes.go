package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/tourist-routes/internal/pdf"
	"github.com/neexbeast/tourist-routes/internal/route"
)

// routeID parses the {id} URL parameter. A non-numeric id behaves like
// an unknown one.
func routeID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, &route.NotFoundError{Msg: "Rota não encontrada"}
	}
	return id, nil
}

// loadRoute fetches a route or returns a NotFoundError.
func (h *Handlers) loadRoute(r *http.Request) (*route.Route, error) {
	id, err := routeID(r)
	if err != nil {
		return nil, err
	}
	rt, err := h.repo.GetRoute(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, &route.NotFoundError{Msg: "Rota não encontrada"}
	}
	return rt, nil
}

// CreateRoute handles POST /routes.
func (h *Handlers) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req route.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &route.ValidationError{Msg: "Corpo da requisição inválido"})
		return
	}

	rt, err := route.NewRoute(req, h.clock)
	if err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.repo.CreateRoute(r.Context(), rt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("route created", "id", created.ID, "nome", created.Nome, "stops", len(created.Pontos))
	writeJSON(w, http.StatusCreated, created)
}

// ListRoutes handles GET /routes?user_id=.
func (h *Handlers) ListRoutes(w http.ResponseWriter, r *http.Request) {
	userID := route.DefaultUserID
	if v := r.URL.Query().Get("user_id"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, &route.ValidationError{Msg: "user_id inválido"})
			return
		}
		userID = parsed
	}

	routes, err := h.repo.ListRoutes(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if routes == nil {
		routes = []*route.Route{}
	}
	writeJSON(w, http.StatusOK, routes)
}

// GetRoute handles GET /routes/{id}.
func (h *Handlers) GetRoute(w http.ResponseWriter, r *http.Request) {
	rt, err := h.loadRoute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// UpdateRoute handles PUT /routes/{id}. Only fields present in the
// body change; a validation failure leaves the record untouched.
func (h *Handlers) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	rt, err := h.loadRoute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req route.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &route.ValidationError{Msg: "Corpo da requisição inválido"})
		return
	}

	updated, err := route.ApplyUpdate(*rt, req, h.clock)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.repo.UpdateRoute(r.Context(), updated); err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("route updated", "id", updated.ID)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRoute handles DELETE /routes/{id}. Deletion is permanent.
func (h *Handlers) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	found, err := h.repo.DeleteRoute(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		h.writeError(w, &route.NotFoundError{Msg: "Rota não encontrada"})
		return
	}

	h.log.Info("route deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rota deletada com sucesso"})
}

// ReorderRoute handles POST /routes/{id}/reorder. The new order must
// be a pure permutation of the current stops.
func (h *Handlers) ReorderRoute(w http.ResponseWriter, r *http.Request) {
	rt, err := h.loadRoute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req route.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &route.ValidationError{Msg: "Corpo da requisição inválido"})
		return
	}

	updated, err := route.ApplyReorder(*rt, req, h.clock)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.repo.UpdateRoute(r.Context(), updated); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// CalculateRoute handles POST /calculate-route.
func (h *Handlers) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req route.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &route.ValidationError{Msg: "Corpo da requisição inválido"})
		return
	}

	result, err := route.Optimize(req.Points)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportRoutePDF handles GET /routes/{id}/export-pdf, streaming the
// itinerary document as a download.
func (h *Handlers) ExportRoutePDF(w http.ResponseWriter, r *http.Request) {
	rt, err := h.loadRoute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	b, err := h.pdf.Render(rt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(rt.Nome)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
