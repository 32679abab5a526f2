// internal/geo/geo.go
// Great-circle distance between coordinates

package geo

import "math"

const earthRadiusKm = 6371

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine distance in kilometers between two points,
// rounded to one decimal. It returns nil when either point is missing.
func Distance(a, b *Point) *float64 {
	if a == nil || b == nil {
		return nil
	}

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	km := math.Round(earthRadiusKm*c*10) / 10
	return &km
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
