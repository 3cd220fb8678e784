package models

import (
	"fmt"
	"time"
)

// Period is an inclusive date range
type Period struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
	Days  int    `json:"days"`
}

// NewPeriod builds a period from two dates, validating order
func NewPeriod(start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: start date must be before end date", ErrInvalidInput)
	}
	s, e := start.Format(DateLayout), end.Format(DateLayout)
	return Period{Start: s, End: e, Days: InclusiveDays(s, e)}, nil
}

// Previous returns the equal-length period immediately before p
func (p Period) Previous() Period {
	start, err := time.Parse(DateLayout, p.Start)
	if err != nil {
		return Period{}
	}
	days := p.Days
	if days < 1 {
		days = 1
	}
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return Period{
		Start: prevStart.Format(DateLayout),
		End:   prevEnd.Format(DateLayout),
		Days:  days,
	}
}

// PeriodFilter represents the date window query parameters shared by the
// analytics endpoints
type PeriodFilter struct {
	Start string `form:"start"` // YYYY-MM-DD
	End   string `form:"end"`   // YYYY-MM-DD
	Days  int    `form:"days"`  // Window length when start is omitted
}

// ReslottingFilter represents filter parameters for reslotting queries
type ReslottingFilter struct {
	PeriodFilter
	Limit     int     `form:"limit"`
	Threshold float64 `form:"threshold"` // Capacity headroom 0-1
}

// ROIFilter represents filter parameters for ROI projections
type ROIFilter struct {
	PeriodFilter
	HourlyRate         float64 `form:"hourlyRate"`
	ImplementationCost float64 `form:"implementationCost"`
	Threshold          float64 `form:"threshold"`
}

// DashboardFilter represents filter parameters for the dashboard
type DashboardFilter struct {
	PeriodFilter
	Top int `form:"top"`
}
