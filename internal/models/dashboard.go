package models

// DashboardKPIs are the headline numbers of the layout dashboard
type DashboardKPIs struct {
	Period           Period  `json:"period"`
	TotalPicks       int     `json:"total_picks"`
	ActiveElements   int     `json:"active_elements"`
	SlotElements     int     `json:"slot_elements"`
	ActiveItems      int     `json:"active_items"`
	AvgDailyPicks    float64 `json:"avg_daily_picks"`
	HotElements      int     `json:"hot_elements"`
	AvgRoundTripFeet float64 `json:"avg_round_trip_feet"`
	DailyWalkFeet    float64 `json:"daily_walk_feet"`
	PickTrendPercent float64 `json:"pick_trend_percent"`
	// Rank correlation of daily picks vs round trip; negative means busy
	// slots sit close to parking
	SlottingCorrelation float64              `json:"slotting_correlation"`
	PickEvenness        float64              `json:"pick_evenness"` // 0 concentrated .. 1 spread evenly
	TopElements         []AggregatedPickData `json:"top_elements"`
	DailyPicks          []DailyPickTotal     `json:"daily_picks"`
	HasCartParking      bool                 `json:"has_cart_parking"`
}
