package analytics

import "github.com/jengzang/slotting-backend-go/internal/models"

// ProjectROI turns daily minutes saved into dollar figures over a week,
// month and year, and estimates the payback period of the moves.
//
// When no implementation cost is given it is estimated as the labor to
// perform the moves: moves × MoveMinutes at the hourly rate.
func ProjectROI(in models.ROIInput, opts Options) models.ROIProjection {
	opts = opts.withDefaults()

	rate := in.HourlyRate
	if rate <= 0 {
		rate = opts.HourlyRate
	}
	days := in.WorkingDaysPerYear
	if days <= 0 {
		days = opts.WorkingDaysPerYear
	}

	hours := in.DailyMinutesSaved / 60
	daily := hours * rate
	annual := daily * float64(days)

	p := models.ROIProjection{
		DailyFeetSaved:     in.DailyFeetSaved,
		DailyMinutesSaved:  in.DailyMinutesSaved,
		DailyHoursSaved:    hours,
		HourlyRate:         rate,
		DailySavings:       daily,
		WeeklySavings:      daily * float64(opts.DaysPerWeek),
		MonthlySavings:     annual / 12,
		AnnualSavings:      annual,
		Moves:              in.Moves,
		ImplementationCost: in.ImplementationCost,
	}
	if p.ImplementationCost <= 0 {
		p.ImplementationCost = EstimateImplementationCost(in.Moves, rate, opts)
		p.CostEstimated = true
	}
	if daily > 0 {
		payback := p.ImplementationCost / daily
		p.PaybackDays = &payback
	}
	return p
}

// EstimateImplementationCost prices the labor of relocating moves items
func EstimateImplementationCost(moves int, hourlyRate float64, opts Options) float64 {
	opts = opts.withDefaults()
	if hourlyRate <= 0 {
		hourlyRate = opts.HourlyRate
	}
	return float64(moves) * opts.MoveMinutes / 60 * hourlyRate
}

// ROIInputFromOpportunities aggregates per-item daily savings of the
// proposals into an ROI input
func ROIInputFromOpportunities(opps []models.ReslottingOpportunity, hourlyRate, implementationCost float64) models.ROIInput {
	feet, minutes := SumSavings(opps)
	return models.ROIInput{
		DailyMinutesSaved:  minutes,
		DailyFeetSaved:     feet,
		Moves:              len(opps),
		HourlyRate:         hourlyRate,
		ImplementationCost: implementationCost,
	}
}
