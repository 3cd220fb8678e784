package models

// LaborStandards are the labor assumptions of a layout
type LaborStandards struct {
	LayoutID           int64   `json:"layout_id" db:"layout_id"`
	HourlyRate         float64 `json:"hourly_rate" db:"hourly_rate"`                     // Dollars per hour
	WalkingSpeedFPM    float64 `json:"walking_speed_fpm" db:"walking_speed_fpm"`         // Feet per minute
	PickSeconds        float64 `json:"pick_seconds" db:"pick_seconds"`                   // Seconds per pick
	SetupSeconds       float64 `json:"setup_seconds" db:"setup_seconds"`                 // Seconds per trip
	ShiftHours         float64 `json:"shift_hours" db:"shift_hours"`                     // Productive hours per shift
	WorkingDaysPerYear int     `json:"working_days_per_year" db:"working_days_per_year"` // Days
}

// LaborEstimate is the daily labor need derived from pick volume and
// walking distance
type LaborEstimate struct {
	DailyPicks       float64        `json:"daily_picks"`
	AvgRoundTripFeet float64        `json:"avg_round_trip_feet"`
	DailyWalkFeet    float64        `json:"daily_walk_feet"`
	TravelMinutes    float64        `json:"travel_minutes"`
	PickMinutes      float64        `json:"pick_minutes"`
	SetupMinutes     float64        `json:"setup_minutes"`
	TotalLaborHours  float64        `json:"total_labor_hours"`
	TravelShare      float64        `json:"travel_share"` // 0-1
	FTE              float64        `json:"fte"`
	DailyLaborCost   float64        `json:"daily_labor_cost"`
	AnnualLaborCost  float64        `json:"annual_labor_cost"`
	Standards        LaborStandards `json:"standards"`
}
