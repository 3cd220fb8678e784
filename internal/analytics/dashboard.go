package analytics

import (
	"sort"

	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/stats"
)

// DefaultTopElements is the number of busiest elements on the dashboard
const DefaultTopElements = 10

// DashboardInput is everything the dashboard KPIs are computed from
type DashboardInput struct {
	Period        models.Period
	Elements      []models.WarehouseElement
	Current       []models.AggregatedPickData // With averages and distances attached
	PreviousPicks int
	ActiveItems   int
	Daily         []models.DailyPickTotal
	Velocity      []models.VelocityAnalysis
	HasParking    bool
	Top           int
}

// BuildDashboard computes the headline KPIs of a layout
func BuildDashboard(in DashboardInput) models.DashboardKPIs {
	top := in.Top
	if top <= 0 {
		top = DefaultTopElements
	}

	kpi := models.DashboardKPIs{
		Period:         in.Period,
		ActiveItems:    in.ActiveItems,
		DailyPicks:     in.Daily,
		HasCartParking: in.HasParking,
	}
	if kpi.DailyPicks == nil {
		kpi.DailyPicks = []models.DailyPickTotal{}
	}
	for _, e := range in.Elements {
		if e.IsSlot() {
			kpi.SlotElements++
		}
	}

	var located, locatedDaily, volumes []float64
	for _, a := range in.Current {
		kpi.TotalPicks += a.TotalPicks
		if a.TotalPicks > 0 {
			kpi.ActiveElements++
			volumes = append(volumes, float64(a.TotalPicks))
		}
		if a.HasDistance {
			located = append(located, a.RoundTripFeet)
			locatedDaily = append(locatedDaily, a.AvgDailyPicks)
			kpi.DailyWalkFeet += a.AvgDailyPicks * a.RoundTripFeet
		}
	}
	kpi.AvgRoundTripFeet = stats.Round(stats.Mean(located), 2)
	kpi.SlottingCorrelation = stats.Round(stats.Spearman(locatedDaily, located), 3)
	kpi.PickEvenness = stats.Round(stats.Evenness(volumes), 3)
	kpi.DailyWalkFeet = stats.Round(kpi.DailyWalkFeet, 2)

	days := in.Period.Days
	if days <= 0 {
		days = 1
	}
	kpi.AvgDailyPicks = stats.Round(float64(kpi.TotalPicks)/float64(days), 2)
	kpi.PickTrendPercent = stats.Round(stats.PercentChange(float64(kpi.TotalPicks), float64(in.PreviousPicks)), 1)

	for _, v := range in.Velocity {
		if v.Tier == models.TierHot {
			kpi.HotElements++
		}
	}

	ranked := make([]models.AggregatedPickData, len(in.Current))
	copy(ranked, in.Current)
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].TotalPicks != ranked[b].TotalPicks {
			return ranked[a].TotalPicks > ranked[b].TotalPicks
		}
		return ranked[a].ElementID < ranked[b].ElementID
	})
	if len(ranked) > top {
		ranked = ranked[:top]
	}
	kpi.TopElements = ranked
	return kpi
}
