package models

// Reslotting priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ReslottingOpportunity proposes swapping a fast item in a far slot with a
// slower item in a nearer slot of the same element type
type ReslottingOpportunity struct {
	ItemID            string  `json:"item_id"`
	ItemDescription   string  `json:"item_description"`
	ItemTier          string  `json:"velocity_tier"`
	AvgDailyPicks     float64 `json:"avg_daily_picks"`
	FromElementID     int64   `json:"from_element_id"`
	FromLocation      string  `json:"from_location"`
	FromRoundTripFeet float64 `json:"from_round_trip_feet"`
	ToElementID       int64   `json:"to_element_id"`
	ToLocation        string  `json:"to_location"`
	ToRoundTripFeet   float64 `json:"to_round_trip_feet"`
	ElementType       string  `json:"element_type"`
	SwapItemID        string  `json:"swap_item_id,omitempty"`
	SwapItemTier      string  `json:"swap_item_tier,omitempty"`
	SwapAvgDailyPicks float64 `json:"swap_avg_daily_picks"`
	DistanceDelta     float64 `json:"distance_delta_feet"`
	FeetSavedPerDay   float64 `json:"feet_saved_per_day"`
	MinutesPerDay     float64 `json:"minutes_saved_per_day"`
	NetFeetPerDay     float64 `json:"net_feet_saved_per_day"`
	NetMinutesPerDay  float64 `json:"net_minutes_saved_per_day"`
	Priority          string  `json:"priority"`
}

// ElementReslottingOpportunity proposes swapping the contents of a busy far
// element with a quiet nearer element of the same type
type ElementReslottingOpportunity struct {
	FromElementID     int64   `json:"from_element_id"`
	FromLocation      string  `json:"from_location"`
	FromTier          string  `json:"from_tier"`
	FromAvgDaily      float64 `json:"from_avg_daily_picks"`
	FromRoundTripFeet float64 `json:"from_round_trip_feet"`
	ToElementID       int64   `json:"to_element_id"`
	ToLocation        string  `json:"to_location"`
	ToTier            string  `json:"to_tier"`
	ToAvgDaily        float64 `json:"to_avg_daily_picks"`
	ToRoundTripFeet   float64 `json:"to_round_trip_feet"`
	ElementType       string  `json:"element_type"`
	DistanceDelta     float64 `json:"distance_delta_feet"`
	FeetSavedPerDay   float64 `json:"feet_saved_per_day"`
	MinutesPerDay     float64 `json:"minutes_saved_per_day"`
	NetFeetPerDay     float64 `json:"net_feet_saved_per_day"`
	Priority          string  `json:"priority"`
}

// ReslottingResponse is the reslotting API response
type ReslottingResponse struct {
	Period             Period                  `json:"period"`
	CapacityThreshold  float64                 `json:"capacity_threshold"`
	Opportunities      []ReslottingOpportunity `json:"opportunities"`
	Count              int                     `json:"count"`
	TotalFeetPerDay    float64                 `json:"total_feet_saved_per_day"`
	TotalMinutesPerDay float64                 `json:"total_minutes_saved_per_day"`
}

// ElementReslottingResponse is the element reslotting API response
type ElementReslottingResponse struct {
	Period             Period                         `json:"period"`
	Opportunities      []ElementReslottingOpportunity `json:"opportunities"`
	Count              int                            `json:"count"`
	TotalFeetPerDay    float64                        `json:"total_feet_saved_per_day"`
	TotalMinutesPerDay float64                        `json:"total_minutes_saved_per_day"`
}

// Slot is a candidate location for a reslotting move
type Slot struct {
	ElementID     int64   `json:"element_id"`
	Label         string  `json:"location"`
	ElementType   string  `json:"element_type"`
	Capacity      int     `json:"capacity"`
	RoundTripFeet float64 `json:"round_trip_feet"`
}
