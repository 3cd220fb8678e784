package analytics

import (
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/spatial"
)

// DefaultLaborStandards returns the labor assumptions used until a layout
// stores its own
func DefaultLaborStandards(layoutID int64) models.LaborStandards {
	return models.LaborStandards{
		LayoutID:           layoutID,
		HourlyRate:         18,
		WalkingSpeedFPM:    spatial.DefaultWalkingSpeed,
		PickSeconds:        8,
		SetupSeconds:       4,
		ShiftHours:         7.5,
		WorkingDaysPerYear: 250,
	}
}

// NormalizeLaborStandards replaces non-positive fields with defaults
func NormalizeLaborStandards(s models.LaborStandards) models.LaborStandards {
	d := DefaultLaborStandards(s.LayoutID)
	if s.HourlyRate <= 0 {
		s.HourlyRate = d.HourlyRate
	}
	if s.WalkingSpeedFPM <= 0 {
		s.WalkingSpeedFPM = d.WalkingSpeedFPM
	}
	if s.PickSeconds <= 0 {
		s.PickSeconds = d.PickSeconds
	}
	if s.SetupSeconds < 0 {
		s.SetupSeconds = d.SetupSeconds
	}
	if s.ShiftHours <= 0 {
		s.ShiftHours = d.ShiftHours
	}
	if s.WorkingDaysPerYear <= 0 {
		s.WorkingDaysPerYear = d.WorkingDaysPerYear
	}
	return s
}

// EstimateLabor derives the daily labor need of a pick volume. Every pick is
// a round trip from the cart of avgRoundTripFeet plus pick and setup time.
func EstimateLabor(standards models.LaborStandards, dailyPicks, avgRoundTripFeet float64) models.LaborEstimate {
	s := NormalizeLaborStandards(standards)

	walkFeet := dailyPicks * avgRoundTripFeet
	travel := spatial.WalkingMinutes(walkFeet, s.WalkingSpeedFPM)
	pick := dailyPicks * s.PickSeconds / 60
	setup := dailyPicks * s.SetupSeconds / 60
	totalMinutes := travel + pick + setup
	hours := totalMinutes / 60

	est := models.LaborEstimate{
		DailyPicks:       dailyPicks,
		AvgRoundTripFeet: avgRoundTripFeet,
		DailyWalkFeet:    walkFeet,
		TravelMinutes:    travel,
		PickMinutes:      pick,
		SetupMinutes:     setup,
		TotalLaborHours:  hours,
		FTE:              hours / s.ShiftHours,
		DailyLaborCost:   hours * s.HourlyRate,
		Standards:        s,
	}
	if totalMinutes > 0 {
		est.TravelShare = travel / totalMinutes
	}
	est.AnnualLaborCost = est.DailyLaborCost * float64(s.WorkingDaysPerYear)
	return est
}
