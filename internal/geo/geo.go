package geo

import "math"

// kmPerDegree is the approximate length of one degree of latitude.
// The same factor is applied to longitude, so distances are planar
// approximations, not geodesics.
const kmPerDegree = 111.0

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceKm returns the approximate distance in kilometers between two
// coordinates, computed as the planar degree distance scaled by ~111 km.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lat1-lat2, lng1-lng2) * kmPerDegree
}

// Round2 rounds a distance to two decimal places.
func Round2(km float64) float64 {
	return math.Round(km*100) / 100
}
