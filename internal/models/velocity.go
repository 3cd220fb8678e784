package models

// Velocity tiers
const (
	TierHot  = "hot"
	TierWarm = "warm"
	TierCold = "cold"
)

// Trend directions
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
	TrendNew    = "new"
)

// TierRank orders tiers from coldest (0) to hottest (2)
func TierRank(tier string) int {
	switch tier {
	case TierHot:
		return 2
	case TierWarm:
		return 1
	default:
		return 0
	}
}

// VelocityAnalysis is the velocity classification of one element
type VelocityAnalysis struct {
	ElementID           int64   `json:"element_id"`
	Label               string  `json:"element_name"`
	ElementType         string  `json:"element_type"`
	TotalPicks          int     `json:"total_picks"`
	PreviousPicks       int     `json:"previous_picks"`
	TrendPercent        float64 `json:"trend_percent"`
	Trend               string  `json:"trend"`
	Percentile          float64 `json:"percentile"` // 0-100, lower is faster
	Tier                string  `json:"velocity_tier"`
	AvgDailyPicks       float64 `json:"avg_daily_picks"`
	RoundTripFeet       float64 `json:"round_trip_distance_feet"`
	HasDistance         bool    `json:"has_distance"`
	DailyWalkFeet       float64 `json:"daily_walk_feet"`
	PotentialFeetPerDay float64 `json:"potential_feet_saved_per_day"`
}

// ItemVelocityAnalysis is the velocity classification of one item
type ItemVelocityAnalysis struct {
	ItemID              string  `json:"item_id"`
	Description         string  `json:"item_description"`
	ElementID           int64   `json:"element_id"`
	Label               string  `json:"location"`
	ElementType         string  `json:"element_type"`
	Quantity            int     `json:"quantity"`
	Capacity            int     `json:"capacity"`
	TotalPicks          int     `json:"total_picks"`
	PreviousPicks       int     `json:"previous_picks"`
	TrendPercent        float64 `json:"trend_percent"`
	Trend               string  `json:"trend"`
	Percentile          float64 `json:"percentile"`
	Tier                string  `json:"velocity_tier"`
	AvgDailyPicks       float64 `json:"avg_daily_picks"`
	RoundTripFeet       float64 `json:"round_trip_distance_feet"`
	HasDistance         bool    `json:"has_distance"`
	DailyWalkFeet       float64 `json:"daily_walk_feet"`
	PotentialFeetPerDay float64 `json:"potential_feet_saved_per_day"`
}

// VelocitySummary counts keys per tier
type VelocitySummary struct {
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
	Total int `json:"total"`
}

// VelocityResponse is the velocity API response
type VelocityResponse struct {
	Period   Period             `json:"period"`
	Previous Period             `json:"previous_period"`
	Summary  VelocitySummary    `json:"summary"`
	Elements []VelocityAnalysis `json:"elements"`
}

// ItemVelocityResponse is the item velocity API response
type ItemVelocityResponse struct {
	Period   Period                 `json:"period"`
	Previous Period                 `json:"previous_period"`
	Summary  VelocitySummary        `json:"summary"`
	Items    []ItemVelocityAnalysis `json:"items"`
}
