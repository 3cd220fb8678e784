package analytics

import (
	"sort"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// BuildHeatmap produces one cell per slot element, intensity normalized to
// the busiest element. Slots without picks are included at zero intensity.
func BuildHeatmap(elements []models.WarehouseElement, aggregates []models.AggregatedPickData, tiers map[int64]string) models.HeatmapResponse {
	picks := make(map[int64]int, len(aggregates))
	for _, a := range aggregates {
		picks[a.ElementID] += a.TotalPicks
	}

	cells := make([]models.HeatmapCell, 0, len(elements))
	maxValue, minValue := 0, -1
	for _, e := range elements {
		if !e.IsSlot() {
			continue
		}
		v := picks[e.ID]
		if v > maxValue {
			maxValue = v
		}
		if minValue < 0 || v < minValue {
			minValue = v
		}
		tier := tiers[e.ID]
		if tier == "" {
			tier = models.TierCold
		}
		cells = append(cells, models.HeatmapCell{
			ElementID:   e.ID,
			Label:       e.Label,
			ElementType: e.Type,
			X:           e.X,
			Y:           e.Y,
			Width:       e.Width,
			Height:      e.Height,
			Value:       v,
			Tier:        tier,
		})
	}
	if minValue < 0 {
		minValue = 0
	}
	if maxValue > 0 {
		for i := range cells {
			cells[i].Intensity = float64(cells[i].Value) / float64(maxValue)
		}
	}

	sort.SliceStable(cells, func(a, b int) bool {
		return cells[a].ElementID < cells[b].ElementID
	})

	return models.HeatmapResponse{
		Cells:    cells,
		Count:    len(cells),
		MaxValue: maxValue,
		MinValue: minValue,
	}
}
