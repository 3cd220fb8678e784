package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

func TestClassifyTier(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, models.TierHot, ClassifyTier(5, opts))
	require.Equal(t, models.TierHot, ClassifyTier(20, opts))
	require.Equal(t, models.TierWarm, ClassifyTier(20.01, opts))
	require.Equal(t, models.TierWarm, ClassifyTier(50, opts))
	require.Equal(t, models.TierCold, ClassifyTier(51, opts))

	t.Run("zero options fall back to defaults", func(t *testing.T) {
		require.Equal(t, models.TierHot, ClassifyTier(10, Options{}))
	})
}

func TestTrend(t *testing.T) {
	cases := []struct {
		current, previous int
		pct               float64
		dir               string
	}{
		{150, 100, 50, models.TrendUp},
		{95, 100, -5, models.TrendStable},
		{50, 100, -50, models.TrendDown},
		{5, 0, 100, models.TrendNew},
		{0, 0, 0, models.TrendStable},
		{0, 10, -100, models.TrendDown},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_vs_%d", tc.current, tc.previous), func(t *testing.T) {
			pct, dir := Trend(tc.current, tc.previous, DefaultOptions())
			require.InDelta(t, tc.pct, pct, 1e-9)
			require.Equal(t, tc.dir, dir)
		})
	}
}

func TestAnalyzeVelocity(t *testing.T) {
	t.Run("tiers follow pick volume rank", func(t *testing.T) {
		var current []models.AggregatedPickData
		for i := 1; i <= 10; i++ {
			current = append(current, models.AggregatedPickData{
				ElementID:   int64(i),
				Label:       fmt.Sprintf("A%d", i),
				ElementType: models.ElementTypeBin,
				TotalPicks:  110 - i*10, // 100, 90, ... 10
			})
		}

		out := AnalyzeVelocity(WithDailyAverages(current, 10), nil, nil, DefaultOptions())
		require.Len(t, out, 10)

		tiers := make([]string, len(out))
		for i, v := range out {
			tiers[i] = v.Tier
		}
		require.Equal(t, []string{
			models.TierHot, models.TierHot,
			models.TierWarm, models.TierWarm, models.TierWarm,
			models.TierCold, models.TierCold, models.TierCold, models.TierCold, models.TierCold,
		}, tiers)
		require.Equal(t, int64(1), out[0].ElementID)
		require.InDelta(t, 10.0, out[0].AvgDailyPicks, 1e-9)
		require.Equal(t, models.TrendNew, out[0].Trend)

		summary := SummarizeTiers(tiers)
		require.Equal(t, models.VelocitySummary{Hot: 2, Warm: 3, Cold: 5, Total: 10}, summary)
	})

	t.Run("previous only elements are reported cold", func(t *testing.T) {
		current := []models.AggregatedPickData{{ElementID: 1, TotalPicks: 40}}
		previous := []models.AggregatedPickData{
			{ElementID: 1, TotalPicks: 20},
			{ElementID: 2, Label: "B1", TotalPicks: 30},
		}

		out := AnalyzeVelocity(current, previous, nil, DefaultOptions())
		require.Len(t, out, 2)

		require.Equal(t, int64(1), out[0].ElementID)
		require.Equal(t, 20, out[0].PreviousPicks)
		require.InDelta(t, 100.0, out[0].TrendPercent, 1e-9)
		require.Equal(t, models.TrendUp, out[0].Trend)

		require.Equal(t, int64(2), out[1].ElementID)
		require.Equal(t, 0, out[1].TotalPicks)
		require.Equal(t, models.TierCold, out[1].Tier)
		require.Equal(t, models.TrendDown, out[1].Trend)
	})

	t.Run("previous only elements do not shift current ranks", func(t *testing.T) {
		var current, previous []models.AggregatedPickData
		for i := 1; i <= 5; i++ {
			current = append(current, models.AggregatedPickData{ElementID: int64(i), TotalPicks: 60 - i*10})
			previous = append(previous, models.AggregatedPickData{ElementID: int64(100 + i), TotalPicks: 5})
		}

		out := AnalyzeVelocity(current, previous, nil, DefaultOptions())
		require.Len(t, out, 10)

		var tiers []string
		var pcts []float64
		for _, v := range out[:5] {
			tiers = append(tiers, v.Tier)
			pcts = append(pcts, v.Percentile)
		}
		require.Equal(t, []string{models.TierHot, models.TierWarm, models.TierCold, models.TierCold, models.TierCold}, tiers)
		require.Equal(t, []float64{20, 40, 60, 80, 100}, pcts)

		for _, v := range out[5:] {
			require.Greater(t, v.ElementID, int64(100))
			require.Equal(t, models.TierCold, v.Tier)
			require.Equal(t, 100.0, v.Percentile)
		}
	})

	t.Run("walk savings estimate uses closest slot of the type", func(t *testing.T) {
		current := []models.AggregatedPickData{
			{ElementID: 1, ElementType: models.ElementTypeBin, TotalPicks: 100, AvgDailyPicks: 10, RoundTripFeet: 50, HasDistance: true},
			{ElementID: 2, ElementType: models.ElementTypeBin, TotalPicks: 1, AvgDailyPicks: 0.1, RoundTripFeet: 10, HasDistance: true},
			{ElementID: 3, ElementType: models.ElementTypeBin, TotalPicks: 2, AvgDailyPicks: 0.2, RoundTripFeet: 20, HasDistance: true},
			{ElementID: 4, ElementType: models.ElementTypeBin, TotalPicks: 3, AvgDailyPicks: 0.3, RoundTripFeet: 30, HasDistance: true},
			{ElementID: 5, ElementType: models.ElementTypeBin, TotalPicks: 4, AvgDailyPicks: 0.4, RoundTripFeet: 40, HasDistance: true},
		}
		closest := map[string]float64{models.ElementTypeBin: 10}

		out := AnalyzeVelocity(current, nil, closest, DefaultOptions())
		require.Equal(t, models.TierHot, out[0].Tier)
		require.InDelta(t, 400.0, out[0].PotentialFeetPerDay, 1e-9)
		require.InDelta(t, 500.0, out[0].DailyWalkFeet, 1e-9)

		last := out[len(out)-1]
		require.Equal(t, models.TierCold, last.Tier)
		require.Zero(t, last.PotentialFeetPerDay)
	})
}

func TestAnalyzeItemVelocity(t *testing.T) {
	current := []models.AggregatedItemPickData{
		{ItemID: "SKU-2", ElementID: 2, TotalPicks: 10, Quantity: 5, Capacity: 50, HasDistance: true, RoundTripFeet: 12},
		{ItemID: "SKU-1", ElementID: 1, TotalPicks: 10},
		{ItemID: "SKU-3", ElementID: 3, TotalPicks: 1},
	}

	out := AnalyzeItemVelocity(current, nil, nil, DefaultOptions())
	require.Len(t, out, 3)
	// ties sort by item id and share the same percentile
	require.Equal(t, "SKU-1", out[0].ItemID)
	require.Equal(t, "SKU-2", out[1].ItemID)
	require.Equal(t, out[0].Percentile, out[1].Percentile)
	require.Equal(t, 5, out[1].Quantity)
	require.Equal(t, 50, out[1].Capacity)
	require.True(t, out[1].HasDistance)
	require.False(t, out[0].HasDistance)
}

func TestWithDailyAverages(t *testing.T) {
	in := []models.AggregatedPickData{{TotalPicks: 30, FirstDate: "2024-01-01", LastDate: "2024-01-03"}}

	require.InDelta(t, 1.0, WithDailyAverages(in, 30)[0].AvgDailyPicks, 1e-9)

	fallback := WithDailyAverages(in, 0)[0]
	require.Equal(t, 3, fallback.Days)
	require.InDelta(t, 10.0, fallback.AvgDailyPicks, 1e-9)

	// input is not modified
	require.Zero(t, in[0].AvgDailyPicks)
}

func TestAnalyzeItemVelocityRanksCurrentPeriodOnly(t *testing.T) {
	current := []models.AggregatedItemPickData{
		{ItemID: "A", TotalPicks: 50},
		{ItemID: "B", TotalPicks: 40},
		{ItemID: "C", TotalPicks: 30},
		{ItemID: "D", TotalPicks: 20},
		{ItemID: "E", TotalPicks: 10},
	}
	previous := []models.AggregatedItemPickData{
		{ItemID: "OLD1", TotalPicks: 70},
		{ItemID: "OLD2", TotalPicks: 70},
		{ItemID: "OLD3", TotalPicks: 70},
	}

	out := AnalyzeItemVelocity(current, previous, nil, DefaultOptions())
	require.Len(t, out, 8)
	require.Equal(t, "A", out[0].ItemID)
	require.Equal(t, models.TierHot, out[0].Tier)
	require.Equal(t, models.TierWarm, out[1].Tier)
	require.Equal(t, 60.0, out[2].Percentile)
	require.Equal(t, models.TierCold, out[2].Tier)

	last := out[len(out)-1]
	require.Equal(t, "OLD3", last.ItemID)
	require.Equal(t, models.TierCold, last.Tier)
	require.Equal(t, 100.0, last.Percentile)
	require.Equal(t, models.TrendDown, last.Trend)
}
