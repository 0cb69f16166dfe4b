package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/neexbeast/tourist-routes/internal/geo"
)

// Spot is a catalog point of interest with a stable local id.
type Spot struct {
	ID          int          `json:"id"`
	Nome        string       `json:"nome"`
	Descricao   string       `json:"descricao,omitempty"`
	Localizacao geo.Location `json:"localizacao"`
	ImagemURL   string       `json:"imagem_url,omitempty"`
	Distance    *float64     `json:"distance,omitempty"`
}

// Loader reads the static tourist spot catalog from a JSON file. The
// file is re-read on every Load; there is no cache to invalidate.
type Loader struct {
	path string
	log  *slog.Logger
}

// NewLoader constructs a Loader for the catalog file at path.
func NewLoader(path string, log *slog.Logger) *Loader {
	return &Loader{path: path, log: log}
}

// Load reads the catalog. Both a bare array and an object wrapping the
// array under "tourist_spots" are accepted. Read or parse failures
// degrade to an empty catalog: the failure is logged, never surfaced.
func (l *Loader) Load() []Spot {
	b, err := os.ReadFile(l.path)
	if err != nil {
		l.log.Warn("tourist spot catalog unavailable", "path", l.path, "err", err)
		return []Spot{}
	}

	var spots []Spot
	if err := json.Unmarshal(b, &spots); err == nil {
		return spots
	}

	var wrapped struct {
		TouristSpots []Spot `json:"tourist_spots"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.TouristSpots != nil {
		return wrapped.TouristSpots
	}

	l.log.Warn("tourist spot catalog malformed", "path", l.path)
	return []Spot{}
}

// FilterByName keeps spots whose name contains search, case-insensitively.
func FilterByName(spots []Spot, search string) []Spot {
	search = strings.ToLower(search)
	out := make([]Spot, 0, len(spots))
	for _, s := range spots {
		if strings.Contains(strings.ToLower(s.Nome), search) {
			out = append(out, s)
		}
	}
	return out
}

// FilterByProximity keeps spots within radiusKm of the query point,
// annotates each with its computed distance, and sorts ascending by
// distance. Distances use the planar ~111 km/degree approximation.
func FilterByProximity(spots []Spot, lat, lng, radiusKm float64) []Spot {
	out := make([]Spot, 0, len(spots))
	for _, s := range spots {
		d := geo.Round2(geo.DistanceKm(lat, lng, s.Localizacao.Latitude, s.Localizacao.Longitude))
		if d <= radiusKm {
			s.Distance = &d
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	return out
}
