package models

// ROIInput carries the savings and cost assumptions of a projection
type ROIInput struct {
	DailyMinutesSaved  float64 `json:"daily_minutes_saved"`
	DailyFeetSaved     float64 `json:"daily_feet_saved"`
	Moves              int     `json:"moves"`
	HourlyRate         float64 `json:"hourly_rate"`
	ImplementationCost float64 `json:"implementation_cost"` // 0 = estimate from moves
	WorkingDaysPerYear int     `json:"working_days_per_year"`
}

// ROIProjection turns daily walking savings into money over time
type ROIProjection struct {
	DailyFeetSaved     float64  `json:"daily_feet_saved"`
	DailyMinutesSaved  float64  `json:"daily_minutes_saved"`
	DailyHoursSaved    float64  `json:"daily_hours_saved"`
	HourlyRate         float64  `json:"hourly_rate"`
	DailySavings       float64  `json:"daily_savings"`
	WeeklySavings      float64  `json:"weekly_savings"`
	MonthlySavings     float64  `json:"monthly_savings"`
	AnnualSavings      float64  `json:"annual_savings"`
	Moves              int      `json:"moves"`
	ImplementationCost float64  `json:"implementation_cost"`
	CostEstimated      bool     `json:"implementation_cost_estimated"`
	PaybackDays        *float64 `json:"payback_days"` // nil when savings are not positive
}

// ROIResponse is the ROI API response
type ROIResponse struct {
	Period        Period        `json:"period"`
	Projection    ROIProjection `json:"projection"`
	Opportunities int           `json:"opportunities"`
}
