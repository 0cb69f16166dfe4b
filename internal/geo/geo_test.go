package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neexbeast/tourist-routes/internal/geo"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, geo.DistanceKm(-22.95, -43.21, -22.95, -43.21))
}

func TestDistanceKm_OneDegreeLatitude(t *testing.T) {
	assert.InDelta(t, 111.0, geo.DistanceKm(0, 0, 1, 0), 0.001)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := geo.DistanceKm(-22.95, -43.21, -22.97, -43.18)
	b := geo.DistanceKm(-22.97, -43.18, -22.95, -43.21)
	assert.Equal(t, a, b)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.77, geo.Round2(3.7689))
	assert.Equal(t, 0.0, geo.Round2(0.001))
}
