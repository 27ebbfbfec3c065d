package aggregate

import "github.com/deereallinda/uber-nyc-2015-analysis/trip"

// DefaultGeoSampleLimit bounds how many points the map layer receives.
const DefaultGeoSampleLimit = 5000

// GeoPoint is one pickup location for the map scatter.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SampleGeoPoints returns at most max coordinate pairs from the view,
// skipping rows without usable coordinates. Sampling is a fixed stride over
// the view order, so the same view always yields the same points.
func SampleGeoPoints(view []trip.Record, max int) []GeoPoint {
	if max <= 0 {
		max = DefaultGeoSampleLimit
	}
	points := make([]GeoPoint, 0, min(len(view), max))
	for _, rec := range view {
		if rec.HasCoordinates() {
			points = append(points, GeoPoint{Lat: rec.Lat, Lon: rec.Lon})
		}
	}
	if len(points) <= max {
		return points
	}
	stride := (len(points) + max - 1) / max
	sampled := make([]GeoPoint, 0, max)
	for i := 0; i < len(points) && len(sampled) < max; i += stride {
		sampled = append(sampled, points[i])
	}
	return sampled
}
