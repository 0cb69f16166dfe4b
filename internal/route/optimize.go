package route

import (
	"math"

	"github.com/neexbeast/tourist-routes/internal/geo"
)

const (
	// avgSpeedKmh is the assumed travel speed between stops.
	avgSpeedKmh = 30.0

	// visitMinutes is the assumed time spent at each stop.
	visitMinutes = 60
)

// OptimizeRequest carries the stops to order into an itinerary.
type OptimizeRequest struct {
	Points []Point `json:"points"`
}

// RouteData describes the computed itinerary geometry.
type RouteData struct {
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Waypoints []geo.Location `json:"waypoints"`
	LegsKm    []float64      `json:"legs_km"`
}

// OptimizedRoute is the result of ordering a set of stops.
type OptimizedRoute struct {
	OptimizedPoints []Point   `json:"optimized_points"`
	TotalDistance   float64   `json:"total_distance"`
	EstimatedTime   int       `json:"estimated_time"`
	RouteData       RouteData `json:"route_data"`
}

// Optimize orders points by repeated nearest-neighbour selection
// starting from the first point, then estimates the total distance and
// time for visiting them all. Distances use the same planar
// approximation as the catalog proximity filter.
func Optimize(points []Point) (*OptimizedRoute, error) {
	if len(points) < 2 {
		return nil, &ValidationError{Msg: "Pelo menos 2 pontos são necessários para calcular uma rota"}
	}

	coords := make([]geo.Location, len(points))
	for i, p := range points {
		lat, lng, ok := p.Coordinates()
		if !ok {
			return nil, &ValidationError{Msg: "Todos os pontos devem ter latitude e longitude"}
		}
		coords[i] = geo.Location{Latitude: lat, Longitude: lng}
	}

	ordered := make([]Point, 0, len(points))
	orderedCoords := make([]geo.Location, 0, len(points))
	remaining := make([]int, 0, len(points))
	for i := 1; i < len(points); i++ {
		remaining = append(remaining, i)
	}

	cur := 0
	ordered = append(ordered, points[cur])
	orderedCoords = append(orderedCoords, coords[cur])

	var legs []float64
	total := 0.0
	for len(remaining) > 0 {
		best := 0
		bestDist := math.MaxFloat64
		for i, idx := range remaining {
			d := geo.DistanceKm(
				coords[cur].Latitude, coords[cur].Longitude,
				coords[idx].Latitude, coords[idx].Longitude,
			)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		cur = remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)

		ordered = append(ordered, points[cur])
		orderedCoords = append(orderedCoords, coords[cur])
		legs = append(legs, geo.Round2(bestDist))
		total += bestDist
	}

	travelMinutes := total / avgSpeedKmh * 60
	estimated := int(math.Round(travelMinutes)) + visitMinutes*len(points)

	return &OptimizedRoute{
		OptimizedPoints: ordered,
		TotalDistance:   geo.Round2(total),
		EstimatedTime:   estimated,
		RouteData: RouteData{
			Start:     ordered[0].Nome(),
			End:       ordered[len(ordered)-1].Nome(),
			Waypoints: orderedCoords,
			LegsKm:    legs,
		},
	}, nil
}
