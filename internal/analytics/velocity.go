package analytics

import (
	"sort"

	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/stats"
)

// ClassifyTier maps a top-percentile (lower is busier) to a velocity tier
func ClassifyTier(percentile float64, opts Options) string {
	opts = opts.withDefaults()
	switch {
	case percentile <= opts.HotPercentile:
		return models.TierHot
	case percentile <= opts.WarmPercentile:
		return models.TierWarm
	default:
		return models.TierCold
	}
}

// Trend returns the percent change against the previous period and its
// direction
func Trend(current, previous int, opts Options) (float64, string) {
	opts = opts.withDefaults()
	pct := stats.PercentChange(float64(current), float64(previous))
	switch {
	case previous == 0 && current > 0:
		return pct, models.TrendNew
	case pct > opts.TrendBand:
		return pct, models.TrendUp
	case pct < -opts.TrendBand:
		return pct, models.TrendDown
	default:
		return pct, models.TrendStable
	}
}

// WithDailyAverages fills AvgDailyPicks and Days over a period of days.
// days <= 0 falls back to each record's own first/last date span.
func WithDailyAverages(aggregates []models.AggregatedPickData, days int) []models.AggregatedPickData {
	out := make([]models.AggregatedPickData, len(aggregates))
	for i, a := range aggregates {
		a.Days = days
		if a.Days <= 0 {
			a.Days = models.InclusiveDays(a.FirstDate, a.LastDate)
		}
		a.AvgDailyPicks = float64(a.TotalPicks) / float64(a.Days)
		out[i] = a
	}
	return out
}

// WithItemDailyAverages is WithDailyAverages for item aggregates
func WithItemDailyAverages(aggregates []models.AggregatedItemPickData, days int) []models.AggregatedItemPickData {
	out := make([]models.AggregatedItemPickData, len(aggregates))
	for i, a := range aggregates {
		a.Days = days
		if a.Days <= 0 {
			a.Days = models.InclusiveDays(a.FirstDate, a.LastDate)
		}
		a.AvgDailyPicks = float64(a.TotalPicks) / float64(a.Days)
		out[i] = a
	}
	return out
}

// AnalyzeVelocity classifies every element of the current period into a
// velocity tier and compares it with the previous period. Percentiles rank
// the current period's elements only. Elements picked only in the previous
// period are appended with zero current picks, tier cold and percentile 100.
// closest maps element type to the shortest round trip of that type and
// drives the walk-savings estimate.
func AnalyzeVelocity(current, previous []models.AggregatedPickData, closest map[string]float64, opts Options) []models.VelocityAnalysis {
	opts = opts.withDefaults()

	prevPicks := make(map[int64]int, len(previous))
	for _, p := range previous {
		prevPicks[p.ElementID] += p.TotalPicks
	}

	volumes := make([]float64, len(current))
	for i, c := range current {
		volumes[i] = float64(c.TotalPicks)
	}
	percentiles := stats.TopPercentiles(volumes)

	out := make([]models.VelocityAnalysis, 0, len(current)+len(previous))
	seen := make(map[int64]bool, len(current))
	for i, c := range current {
		seen[c.ElementID] = true
		out = append(out, elementVelocity(c, percentiles[i], prevPicks[c.ElementID], closest, opts))
	}
	for _, p := range previous {
		if seen[p.ElementID] {
			continue
		}
		seen[p.ElementID] = true
		p.TotalPicks = 0
		p.AvgDailyPicks = 0
		out = append(out, elementVelocity(p, 100, prevPicks[p.ElementID], closest, opts))
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TotalPicks != out[b].TotalPicks {
			return out[a].TotalPicks > out[b].TotalPicks
		}
		return out[a].ElementID < out[b].ElementID
	})
	return out
}

func elementVelocity(r models.AggregatedPickData, percentile float64, previous int, closest map[string]float64, opts Options) models.VelocityAnalysis {
	tier := ClassifyTier(percentile, opts)
	if r.TotalPicks == 0 {
		tier = models.TierCold
	}
	pct, dir := Trend(r.TotalPicks, previous, opts)

	v := models.VelocityAnalysis{
		ElementID:     r.ElementID,
		Label:         r.Label,
		ElementType:   r.ElementType,
		TotalPicks:    r.TotalPicks,
		PreviousPicks: previous,
		TrendPercent:  stats.Round(pct, 1),
		Trend:         dir,
		Percentile:    stats.Round(percentile, 2),
		Tier:          tier,
		AvgDailyPicks: r.AvgDailyPicks,
		RoundTripFeet: r.RoundTripFeet,
	}
	if r.HasDistance {
		v.DailyWalkFeet = r.AvgDailyPicks * r.RoundTripFeet
		v.PotentialFeetPerDay = potentialSavings(tier, r.AvgDailyPicks, r.RoundTripFeet, closest, r.ElementType)
	}
	return v
}

// AnalyzeItemVelocity is AnalyzeVelocity keyed by item
func AnalyzeItemVelocity(current, previous []models.AggregatedItemPickData, closest map[string]float64, opts Options) []models.ItemVelocityAnalysis {
	opts = opts.withDefaults()

	prevPicks := make(map[string]int, len(previous))
	for _, p := range previous {
		prevPicks[p.ItemID] += p.TotalPicks
	}

	volumes := make([]float64, len(current))
	for i, c := range current {
		volumes[i] = float64(c.TotalPicks)
	}
	percentiles := stats.TopPercentiles(volumes)

	out := make([]models.ItemVelocityAnalysis, 0, len(current)+len(previous))
	seen := make(map[string]bool, len(current))
	for i, c := range current {
		seen[c.ItemID] = true
		out = append(out, itemVelocity(c, percentiles[i], prevPicks[c.ItemID], closest, opts))
	}
	for _, p := range previous {
		if seen[p.ItemID] {
			continue
		}
		seen[p.ItemID] = true
		p.TotalPicks = 0
		p.AvgDailyPicks = 0
		out = append(out, itemVelocity(p, 100, prevPicks[p.ItemID], closest, opts))
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TotalPicks != out[b].TotalPicks {
			return out[a].TotalPicks > out[b].TotalPicks
		}
		return out[a].ItemID < out[b].ItemID
	})
	return out
}

func itemVelocity(r models.AggregatedItemPickData, percentile float64, previous int, closest map[string]float64, opts Options) models.ItemVelocityAnalysis {
	tier := ClassifyTier(percentile, opts)
	if r.TotalPicks == 0 {
		tier = models.TierCold
	}
	pct, dir := Trend(r.TotalPicks, previous, opts)

	v := models.ItemVelocityAnalysis{
		ItemID:        r.ItemID,
		Description:   r.Description,
		ElementID:     r.ElementID,
		Label:         r.Label,
		ElementType:   r.ElementType,
		Quantity:      r.Quantity,
		Capacity:      r.Capacity,
		TotalPicks:    r.TotalPicks,
		PreviousPicks: previous,
		TrendPercent:  stats.Round(pct, 1),
		Trend:         dir,
		Percentile:    stats.Round(percentile, 2),
		Tier:          tier,
		AvgDailyPicks: r.AvgDailyPicks,
		RoundTripFeet: r.RoundTripFeet,
		HasDistance:   r.HasDistance,
	}
	if r.HasDistance {
		v.DailyWalkFeet = r.AvgDailyPicks * r.RoundTripFeet
		v.PotentialFeetPerDay = potentialSavings(tier, r.AvgDailyPicks, r.RoundTripFeet, closest, r.ElementType)
	}
	return v
}

// SummarizeTiers counts analyses per tier
func SummarizeTiers(tiers []string) models.VelocitySummary {
	var s models.VelocitySummary
	for _, t := range tiers {
		switch t {
		case models.TierHot:
			s.Hot++
		case models.TierWarm:
			s.Warm++
		default:
			s.Cold++
		}
		s.Total++
	}
	return s
}

// potentialSavings estimates daily feet saved if a hot or warm key sat in the
// closest slot of its type
func potentialSavings(tier string, avgDaily, roundTrip float64, closest map[string]float64, elementType string) float64 {
	if tier == models.TierCold {
		return 0
	}
	best, ok := closest[elementType]
	if !ok || roundTrip <= best {
		return 0
	}
	return avgDaily * (roundTrip - best)
}
