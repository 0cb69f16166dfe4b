package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/tourist-routes/internal/catalog"
	"github.com/neexbeast/tourist-routes/internal/places"
	"github.com/neexbeast/tourist-routes/internal/route"
)

const defaultRadiusKm = 10.0

// ListTouristSpots handles GET /tourist-spots?search=&lat=&lng=&radius=.
// Name and proximity filters compose; unparsable coordinates are
// treated as absent.
func (h *Handlers) ListTouristSpots(w http.ResponseWriter, r *http.Request) {
	spots := h.catalog.Load()

	if search := r.URL.Query().Get("search"); search != "" {
		spots = catalog.FilterByName(spots, search)
	}

	lat, latOK := queryFloat(r, "lat")
	lng, lngOK := queryFloat(r, "lng")
	if latOK && lngOK {
		radius, ok := queryFloat(r, "radius")
		if !ok {
			radius = defaultRadiusKm
		}
		spots = catalog.FilterByProximity(spots, lat, lng, radius)
	}

	writeJSON(w, http.StatusOK, spots)
}

// GetTouristSpot handles GET /tourist-spots/{id}.
func (h *Handlers) GetTouristSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, &route.NotFoundError{Msg: "Ponto turístico não encontrado"})
		return
	}

	for _, spot := range h.catalog.Load() {
		if spot.ID == id {
			writeJSON(w, http.StatusOK, spot)
			return
		}
	}
	h.writeError(w, &route.NotFoundError{Msg: "Ponto turístico não encontrado"})
}

// SearchPlaces handles GET /search-places?q=, merging catalog matches
// with external results. External failures degrade to local-only.
func (h *Handlers) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, &route.ValidationError{Msg: "Parâmetro de busca obrigatório"})
		return
	}

	results := h.searcher.Search(r.Context(), query)
	if results == nil {
		results = []places.Place{}
	}
	writeJSON(w, http.StatusOK, results)
}

func queryFloat(r *http.Request, name string) (float64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
