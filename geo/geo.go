// Package geo provides the spherical distance and random placement math
// used by order generation and delivery tracking.
package geo

import (
	"math"
	"math/rand"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distance
const EarthRadiusMeters = 6371_000.0

// Point is a latitude/longitude pair in degrees
type Point struct {
	Lat float64 `json:"latitude" yaml:"latitude"`
	Lon float64 `json:"longitude" yaml:"longitude"`
}

// Distance returns the great-circle distance between two points in meters
// using the haversine formula. Symmetric, zero iff a == b.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// RandomPointWithin returns a point uniformly distributed over the disc of
// radiusMeters around center. The radial coordinate is scaled by sqrt(u) so
// the distribution is uniform over area, not over radius; longitude offsets
// are corrected by cos(latitude) so the disc does not shrink east-west.
func RandomPointWithin(rng *rand.Rand, center Point, radiusMeters float64) Point {
	if radiusMeters <= 0 {
		return center
	}

	// Degrees of latitude per meter
	const degPerMeter = 180 / (math.Pi * EarthRadiusMeters)

	r := radiusMeters * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi

	dLat := r * math.Sin(theta) * degPerMeter
	dLon := r * math.Cos(theta) * degPerMeter / math.Cos(center.Lat*math.Pi/180)

	p := Point{
		Lat: center.Lat + dLat,
		Lon: center.Lon + dLon,
	}

	// The planar offset overshoots the great-circle radius slightly at high
	// latitudes. Pull the point back in so Distance(center, p) <= radiusMeters
	// always holds.
	if d := Distance(center, p); d > radiusMeters {
		scale := radiusMeters / d
		p.Lat = center.Lat + dLat*scale
		p.Lon = center.Lon + dLon*scale
	}
	return p
}
