package analytics

import (
	"sort"

	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/spatial"
	"github.com/jengzang/slotting-backend-go/internal/stats"
)

// DefaultReslottingLimit caps the number of proposals returned
const DefaultReslottingLimit = 50

// FitsWithHeadroom reports whether quantity units fit in a slot of capacity
// units while keeping threshold (0-1) of it free. Unknown quantity or
// capacity (<= 0) never blocks a move.
func FitsWithHeadroom(quantity, capacity int, threshold float64) bool {
	if quantity <= 0 || capacity <= 0 {
		return true
	}
	return float64(quantity) <= float64(capacity)*(1-threshold)
}

// Priority grades a proposal by minutes saved per day
func Priority(minutesPerDay float64, opts Options) string {
	opts = opts.withDefaults()
	switch {
	case minutesPerDay >= opts.HighPriorityMinutes:
		return models.PriorityHigh
	case minutesPerDay >= opts.MediumPriorityMinutes:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// FindItemReslottingOpportunities matches hot items sitting farther from
// cart parking than the median item against slower items (or empty slots)
// of the same element type that are closer to parking.
//
// Movers are visited busiest first and every slot takes part in at most one
// proposal. For each mover the candidate with the largest distance delta
// wins. Both sides of a swap must fit their new slot with
// opts.CapacityThreshold headroom.
func FindItemReslottingOpportunities(items []models.ItemVelocityAnalysis, emptySlots []models.Slot, opts Options, limit int) []models.ReslottingOpportunity {
	opts = opts.withDefaults()
	if limit <= 0 {
		limit = DefaultReslottingLimit
	}

	located := make([]models.ItemVelocityAnalysis, 0, len(items))
	distances := make([]float64, 0, len(items))
	for _, it := range items {
		if !it.HasDistance {
			continue
		}
		located = append(located, it)
		distances = append(distances, it.RoundTripFeet)
	}
	if len(located) == 0 {
		return []models.ReslottingOpportunity{}
	}
	median := stats.Median(distances)

	movers := make([]models.ItemVelocityAnalysis, 0)
	for _, it := range located {
		if it.Tier == models.TierHot && it.RoundTripFeet > median {
			movers = append(movers, it)
		}
	}
	sort.SliceStable(movers, func(a, b int) bool {
		if movers[a].AvgDailyPicks != movers[b].AvgDailyPicks {
			return movers[a].AvgDailyPicks > movers[b].AvgDailyPicks
		}
		return movers[a].ItemID < movers[b].ItemID
	})

	used := make(map[int64]bool)
	opportunities := make([]models.ReslottingOpportunity, 0)

	for _, mover := range movers {
		if used[mover.ElementID] {
			continue
		}

		var (
			best      *models.ItemVelocityAnalysis
			bestEmpty *models.Slot
			bestDelta float64
			bestID    int64
		)
		consider := func(elementID int64, delta float64) bool {
			if delta <= 0 {
				return false
			}
			if best == nil && bestEmpty == nil {
				return true
			}
			if delta != bestDelta {
				return delta > bestDelta
			}
			return elementID < bestID
		}

		for i := range located {
			cand := &located[i]
			if cand.ElementID == mover.ElementID || used[cand.ElementID] {
				continue
			}
			if cand.ElementType != mover.ElementType || cand.AvgDailyPicks >= mover.AvgDailyPicks {
				continue
			}
			if !FitsWithHeadroom(mover.Quantity, cand.Capacity, opts.CapacityThreshold) ||
				!FitsWithHeadroom(cand.Quantity, mover.Capacity, opts.CapacityThreshold) {
				continue
			}
			delta := mover.RoundTripFeet - cand.RoundTripFeet
			if consider(cand.ElementID, delta) {
				best, bestEmpty, bestDelta, bestID = cand, nil, delta, cand.ElementID
			}
		}
		for i := range emptySlots {
			slot := &emptySlots[i]
			if slot.ElementID == mover.ElementID || used[slot.ElementID] || slot.ElementType != mover.ElementType {
				continue
			}
			if !FitsWithHeadroom(mover.Quantity, slot.Capacity, opts.CapacityThreshold) {
				continue
			}
			delta := mover.RoundTripFeet - slot.RoundTripFeet
			if consider(slot.ElementID, delta) {
				best, bestEmpty, bestDelta, bestID = nil, slot, delta, slot.ElementID
			}
		}
		if best == nil && bestEmpty == nil {
			continue
		}

		feet := mover.AvgDailyPicks * bestDelta
		opp := models.ReslottingOpportunity{
			ItemID:            mover.ItemID,
			ItemDescription:   mover.Description,
			ItemTier:          mover.Tier,
			AvgDailyPicks:     mover.AvgDailyPicks,
			FromElementID:     mover.ElementID,
			FromLocation:      mover.Label,
			FromRoundTripFeet: mover.RoundTripFeet,
			ElementType:       mover.ElementType,
			DistanceDelta:     bestDelta,
			FeetSavedPerDay:   feet,
			MinutesPerDay:     spatial.WalkingMinutes(feet, opts.WalkingSpeedFPM),
			NetFeetPerDay:     feet,
		}
		if best != nil {
			opp.ToElementID = best.ElementID
			opp.ToLocation = best.Label
			opp.ToRoundTripFeet = best.RoundTripFeet
			opp.SwapItemID = best.ItemID
			opp.SwapItemTier = best.Tier
			opp.SwapAvgDailyPicks = best.AvgDailyPicks
			opp.NetFeetPerDay = (mover.AvgDailyPicks - best.AvgDailyPicks) * bestDelta
		} else {
			opp.ToElementID = bestEmpty.ElementID
			opp.ToLocation = bestEmpty.Label
			opp.ToRoundTripFeet = bestEmpty.RoundTripFeet
		}
		opp.NetMinutesPerDay = spatial.WalkingMinutes(opp.NetFeetPerDay, opts.WalkingSpeedFPM)
		opp.Priority = Priority(opp.MinutesPerDay, opts)

		used[mover.ElementID] = true
		used[opp.ToElementID] = true
		opportunities = append(opportunities, opp)
	}

	sort.SliceStable(opportunities, func(a, b int) bool {
		if opportunities[a].FeetSavedPerDay != opportunities[b].FeetSavedPerDay {
			return opportunities[a].FeetSavedPerDay > opportunities[b].FeetSavedPerDay
		}
		return opportunities[a].ItemID < opportunities[b].ItemID
	})
	if len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}
	return opportunities
}

// FindElementReslottingOpportunities pairs hot elements farther than the
// median element from parking with cold elements of the same type that are
// closer, moving the busy contents forward. Round trips come from distances;
// elements missing from it are skipped.
func FindElementReslottingOpportunities(analyses []models.VelocityAnalysis, distances map[int64]float64, opts Options, limit int) []models.ElementReslottingOpportunity {
	opts = opts.withDefaults()
	if limit <= 0 {
		limit = DefaultReslottingLimit
	}

	located := make([]models.VelocityAnalysis, 0, len(analyses))
	feet := make([]float64, 0, len(analyses))
	for _, a := range analyses {
		d, ok := distances[a.ElementID]
		if !ok {
			continue
		}
		a.RoundTripFeet = d
		located = append(located, a)
		feet = append(feet, d)
	}
	if len(located) == 0 {
		return []models.ElementReslottingOpportunity{}
	}
	median := stats.Median(feet)

	movers := make([]models.VelocityAnalysis, 0)
	for _, a := range located {
		if a.Tier == models.TierHot && a.RoundTripFeet > median {
			movers = append(movers, a)
		}
	}
	sort.SliceStable(movers, func(a, b int) bool {
		if movers[a].AvgDailyPicks != movers[b].AvgDailyPicks {
			return movers[a].AvgDailyPicks > movers[b].AvgDailyPicks
		}
		return movers[a].ElementID < movers[b].ElementID
	})

	used := make(map[int64]bool)
	out := make([]models.ElementReslottingOpportunity, 0)
	for _, mover := range movers {
		var best *models.VelocityAnalysis
		var bestDelta float64
		for i := range located {
			cand := &located[i]
			if cand.ElementID == mover.ElementID || used[cand.ElementID] {
				continue
			}
			if cand.Tier != models.TierCold || cand.ElementType != mover.ElementType {
				continue
			}
			delta := mover.RoundTripFeet - cand.RoundTripFeet
			if delta <= 0 {
				continue
			}
			if best == nil || delta > bestDelta || (delta == bestDelta && cand.ElementID < best.ElementID) {
				best, bestDelta = cand, delta
			}
		}
		if best == nil {
			continue
		}

		saved := mover.AvgDailyPicks * bestDelta
		minutes := spatial.WalkingMinutes(saved, opts.WalkingSpeedFPM)
		out = append(out, models.ElementReslottingOpportunity{
			FromElementID:     mover.ElementID,
			FromLocation:      mover.Label,
			FromTier:          mover.Tier,
			FromAvgDaily:      mover.AvgDailyPicks,
			FromRoundTripFeet: mover.RoundTripFeet,
			ToElementID:       best.ElementID,
			ToLocation:        best.Label,
			ToTier:            best.Tier,
			ToAvgDaily:        best.AvgDailyPicks,
			ToRoundTripFeet:   best.RoundTripFeet,
			ElementType:       mover.ElementType,
			DistanceDelta:     bestDelta,
			FeetSavedPerDay:   saved,
			MinutesPerDay:     minutes,
			NetFeetPerDay:     (mover.AvgDailyPicks - best.AvgDailyPicks) * bestDelta,
			Priority:          Priority(minutes, opts),
		})
		used[mover.ElementID] = true
		used[best.ElementID] = true
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].FeetSavedPerDay != out[b].FeetSavedPerDay {
			return out[a].FeetSavedPerDay > out[b].FeetSavedPerDay
		}
		return out[a].FromElementID < out[b].FromElementID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SumSavings totals feet and minutes saved per day across proposals
func SumSavings(opps []models.ReslottingOpportunity) (feet, minutes float64) {
	for _, o := range opps {
		feet += o.FeetSavedPerDay
		minutes += o.MinutesPerDay
	}
	return feet, minutes
}
