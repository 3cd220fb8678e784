// Package analytics holds the pure slotting computations: velocity tiering,
// walk distances, reslotting matches, ROI and labor projections. Functions
// here never touch storage and are deterministic for a given input.
package analytics

import "github.com/jengzang/slotting-backend-go/internal/spatial"

// Options are the tunable constants of the analytics
type Options struct {
	HotPercentile  float64 `yaml:"hot_percentile"`  // Keys ranked in the top share are hot
	WarmPercentile float64 `yaml:"warm_percentile"` // Keys ranked up to here are warm
	TrendBand      float64 `yaml:"trend_band"`      // Percent change treated as stable

	WalkingSpeedFPM   float64 `yaml:"walking_speed_fpm"`
	CapacityThreshold float64 `yaml:"capacity_threshold"` // Headroom kept free in a target slot, 0-1

	HighPriorityMinutes   float64 `yaml:"high_priority_minutes"`
	MediumPriorityMinutes float64 `yaml:"medium_priority_minutes"`

	HourlyRate         float64 `yaml:"hourly_rate"`
	MoveMinutes        float64 `yaml:"move_minutes"` // Labor to relocate one item
	DaysPerWeek        int     `yaml:"days_per_week"`
	WorkingDaysPerYear int     `yaml:"working_days_per_year"`
}

// DefaultOptions returns the standard analytics constants
func DefaultOptions() Options {
	return Options{
		HotPercentile:         20,
		WarmPercentile:        50,
		TrendBand:             10,
		WalkingSpeedFPM:       spatial.DefaultWalkingSpeed,
		CapacityThreshold:     0.15,
		HighPriorityMinutes:   10,
		MediumPriorityMinutes: 3,
		HourlyRate:            18,
		MoveMinutes:           15,
		DaysPerWeek:           5,
		WorkingDaysPerYear:    250,
	}
}

// withDefaults fills zero fields from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HotPercentile <= 0 {
		o.HotPercentile = d.HotPercentile
	}
	if o.WarmPercentile <= 0 {
		o.WarmPercentile = d.WarmPercentile
	}
	if o.WarmPercentile < o.HotPercentile {
		o.WarmPercentile = o.HotPercentile
	}
	if o.TrendBand <= 0 {
		o.TrendBand = d.TrendBand
	}
	if o.WalkingSpeedFPM <= 0 {
		o.WalkingSpeedFPM = d.WalkingSpeedFPM
	}
	if o.CapacityThreshold < 0 || o.CapacityThreshold >= 1 {
		o.CapacityThreshold = d.CapacityThreshold
	}
	if o.HighPriorityMinutes <= 0 {
		o.HighPriorityMinutes = d.HighPriorityMinutes
	}
	if o.MediumPriorityMinutes <= 0 {
		o.MediumPriorityMinutes = d.MediumPriorityMinutes
	}
	if o.HourlyRate <= 0 {
		o.HourlyRate = d.HourlyRate
	}
	if o.MoveMinutes <= 0 {
		o.MoveMinutes = d.MoveMinutes
	}
	if o.DaysPerWeek <= 0 {
		o.DaysPerWeek = d.DaysPerWeek
	}
	if o.WorkingDaysPerYear <= 0 {
		o.WorkingDaysPerYear = d.WorkingDaysPerYear
	}
	return o
}
