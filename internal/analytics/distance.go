package analytics

import (
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/spatial"
)

// ElementDistances maps each slot element to its round trip in feet to the
// nearest cart parking marker. Elements are absent when no parking exists.
func ElementDistances(elements []models.WarehouseElement, markers []models.RouteMarker) map[int64]float64 {
	out := make(map[int64]float64, len(elements))
	for _, e := range elements {
		if !e.IsSlot() {
			continue
		}
		if feet, ok := spatial.ElementRoundTripFeet(e, markers); ok {
			out[e.ID] = feet
		}
	}
	return out
}

// AttachDistances returns a copy of aggregates with round-trip distances
func AttachDistances(aggregates []models.AggregatedPickData, distances map[int64]float64) []models.AggregatedPickData {
	out := make([]models.AggregatedPickData, len(aggregates))
	for i, a := range aggregates {
		if feet, ok := distances[a.ElementID]; ok {
			a.RoundTripFeet = feet
			a.HasDistance = true
		} else {
			a.RoundTripFeet = 0
			a.HasDistance = false
		}
		out[i] = a
	}
	return out
}

// AttachItemDistances returns a copy of item aggregates with round-trip
// distances taken from the item's element
func AttachItemDistances(aggregates []models.AggregatedItemPickData, distances map[int64]float64) []models.AggregatedItemPickData {
	out := make([]models.AggregatedItemPickData, len(aggregates))
	for i, a := range aggregates {
		if feet, ok := distances[a.ElementID]; ok {
			a.RoundTripFeet = feet
			a.HasDistance = true
		} else {
			a.RoundTripFeet = 0
			a.HasDistance = false
		}
		out[i] = a
	}
	return out
}

// ClosestByType returns the shortest round trip of any slot per element type
func ClosestByType(elements []models.WarehouseElement, distances map[int64]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, e := range elements {
		feet, ok := distances[e.ID]
		if !ok {
			continue
		}
		if cur, seen := out[e.Type]; !seen || feet < cur {
			out[e.Type] = feet
		}
	}
	return out
}
