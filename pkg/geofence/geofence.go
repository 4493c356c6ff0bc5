package geofence

import (
	"fmt"
	"math"
)

// DefaultThresholdMeters is the redemption radius. A device exactly on the
// threshold counts as within range.
const DefaultThresholdMeters = 15.0

const earthRadiusMeters = 6371000.0

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Status is the gate state derived from the latest location update.
type Status struct {
	WithinRange     bool
	DistanceMeters  float64
	RemainingMeters int
	Reason          string
}

// ReasonLocationUnavailable is reported while the location provider is
// failing; the gate stays closed but the monitor keeps listening.
const ReasonLocationUnavailable = "location unavailable"

// Distance returns the great-circle distance between two points in meters
// using the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Classify evaluates a device position against a target. A nil target means
// the deal carries no redemption coordinate, so gating is disabled and the
// device is always within range.
func Classify(target *Coordinate, thresholdMeters float64, device Coordinate) Status {
	if target == nil {
		return Status{WithinRange: true}
	}

	d := Distance(*target, device)
	if d <= thresholdMeters {
		return Status{WithinRange: true, DistanceMeters: d}
	}

	remaining := int(math.Floor(d - thresholdMeters))
	return Status{
		WithinRange:     false,
		DistanceMeters:  d,
		RemainingMeters: remaining,
		Reason:          fmt.Sprintf("Move %dm closer", remaining),
	}
}
