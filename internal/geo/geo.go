// Package geo implements the attendance geofence.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceMeters returns the great-circle distance between two points given in degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c * 1000
}

// Within reports whether the point lies inside the circle of radius meters around the center.
func Within(lat, lon, centerLat, centerLon, radius float64) bool {
	return DistanceMeters(lat, lon, centerLat, centerLon) <= radius
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
