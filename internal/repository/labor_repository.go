package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// LaborRepository handles database operations for labor standards
type LaborRepository struct {
	db *sql.DB
}

// NewLaborRepository creates a new labor repository
func NewLaborRepository(db *sql.DB) *LaborRepository {
	return &LaborRepository{db: db}
}

// Get returns the stored standards of a layout, or nil when none were saved
func (r *LaborRepository) Get(ctx context.Context, layoutID int64) (*models.LaborStandards, error) {
	var s models.LaborStandards
	err := r.db.QueryRowContext(ctx, `
		SELECT layout_id, hourly_rate, walking_speed_fpm, pick_seconds, setup_seconds, shift_hours, working_days_per_year
		FROM labor_standards WHERE layout_id = ?`, layoutID).
		Scan(&s.LayoutID, &s.HourlyRate, &s.WalkingSpeedFPM, &s.PickSeconds, &s.SetupSeconds, &s.ShiftHours, &s.WorkingDaysPerYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get labor standards: %w", err)
	}
	return &s, nil
}

// Upsert stores the standards of a layout
func (r *LaborRepository) Upsert(ctx context.Context, s models.LaborStandards) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO labor_standards (layout_id, hourly_rate, walking_speed_fpm, pick_seconds, setup_seconds, shift_hours, working_days_per_year)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(layout_id) DO UPDATE SET
			hourly_rate = excluded.hourly_rate,
			walking_speed_fpm = excluded.walking_speed_fpm,
			pick_seconds = excluded.pick_seconds,
			setup_seconds = excluded.setup_seconds,
			shift_hours = excluded.shift_hours,
			working_days_per_year = excluded.working_days_per_year,
			updated_at = CURRENT_TIMESTAMP`,
		s.LayoutID, s.HourlyRate, s.WalkingSpeedFPM, s.PickSeconds, s.SetupSeconds, s.ShiftHours, s.WorkingDaysPerYear)
	if err != nil {
		return fmt.Errorf("failed to save labor standards: %w", err)
	}
	return nil
}
