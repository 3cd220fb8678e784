package spatial

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// Constants
const (
	PixelsPerFoot       = 12.0  // Canvas pixels per warehouse foot
	DefaultWalkingSpeed = 264.0 // Feet per minute, about 3 mph
)

// ManhattanDistance returns the grid distance between two canvas points in pixels
func ManhattanDistance(a, b r2.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// RoundTripFeet converts a one-way pixel distance to a round trip in feet
func RoundTripFeet(pixels float64) float64 {
	return (pixels * 2) / PixelsPerFoot
}

// NearestCartParking finds the cart parking marker closest to p.
// Other marker types are ignored; ties go to the lowest sequence order.
// ok is false when the layout has no cart parking marker.
func NearestCartParking(p r2.Point, markers []models.RouteMarker) (nearest models.RouteMarker, pixels float64, ok bool) {
	for _, m := range markers {
		if m.MarkerType != models.MarkerTypeCartParking {
			continue
		}
		d := ManhattanDistance(p, MarkerPoint(m))
		if !ok || d < pixels || (d == pixels && m.SequenceOrder < nearest.SequenceOrder) {
			nearest, pixels, ok = m, d, true
		}
	}
	return nearest, pixels, ok
}

// ElementRoundTripFeet returns the round trip in feet from the element's
// center to the nearest cart parking marker
func ElementRoundTripFeet(e models.WarehouseElement, markers []models.RouteMarker) (float64, bool) {
	_, px, ok := NearestCartParking(ElementCenter(e), markers)
	if !ok {
		return 0, false
	}
	return RoundTripFeet(px), true
}

// WalkingMinutes converts feet to minutes at the given speed in feet per
// minute, falling back to DefaultWalkingSpeed
func WalkingMinutes(feet, speedFPM float64) float64 {
	if speedFPM <= 0 {
		speedFPM = DefaultWalkingSpeed
	}
	return feet / speedFPM
}
