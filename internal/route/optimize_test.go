package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourist-routes/internal/route"
)

func rioPoints() []route.Point {
	return []route.Point{
		{"id": float64(1), "nome": "Cristo Redentor", "latitude": -22.951916, "longitude": -43.210487},
		{"id": float64(2), "nome": "Pão de Açúcar", "latitude": -22.948658, "longitude": -43.157444},
		{"id": float64(3), "nome": "Copacabana", "latitude": -22.971177, "longitude": -43.182543},
	}
}

func TestOptimize_NearestNeighbourOrder(t *testing.T) {
	result, err := route.Optimize(rioPoints())
	require.NoError(t, err)

	// From Cristo Redentor the closest is Copacabana, then Pão de Açúcar.
	require.Len(t, result.OptimizedPoints, 3)
	assert.Equal(t, "Cristo Redentor", result.OptimizedPoints[0].Nome())
	assert.Equal(t, "Copacabana", result.OptimizedPoints[1].Nome())
	assert.Equal(t, "Pão de Açúcar", result.OptimizedPoints[2].Nome())

	assert.Greater(t, result.TotalDistance, 0.0)
	assert.Greater(t, result.EstimatedTime, 3*60) // at least the visit time
	assert.Equal(t, "Cristo Redentor", result.RouteData.Start)
	assert.Equal(t, "Pão de Açúcar", result.RouteData.End)
	assert.Len(t, result.RouteData.Waypoints, 3)
	assert.Len(t, result.RouteData.LegsKm, 2)
}

func TestOptimize_TooFewPoints(t *testing.T) {
	_, err := route.Optimize(rioPoints()[:1])

	var vErr *route.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "2 pontos")
}

func TestOptimize_MissingCoordinates(t *testing.T) {
	points := []route.Point{
		{"id": float64(1), "nome": "Sem coordenadas"},
		{"id": float64(2), "nome": "Copacabana", "latitude": -22.971177, "longitude": -43.182543},
	}
	_, err := route.Optimize(points)

	var vErr *route.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestOptimize_NestedLocalizacao(t *testing.T) {
	points := []route.Point{
		{"id": float64(1), "nome": "A", "localizacao": map[string]any{"latitude": -22.95, "longitude": -43.21}},
		{"id": float64(2), "nome": "B", "localizacao": map[string]any{"latitude": -22.97, "longitude": -43.18}},
	}
	result, err := route.Optimize(points)
	require.NoError(t, err)
	assert.Len(t, result.OptimizedPoints, 2)
}
