package service

import (
	"context"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/analytics"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"go.uber.org/zap"
)

// LaborService handles the labor standards of a layout
type LaborService struct {
	layoutRepo *repository.LayoutRepository
	laborRepo  *repository.LaborRepository
	opts       analytics.Options
	logger     *zap.Logger
}

// NewLaborService creates a new labor service
func NewLaborService(
	layoutRepo *repository.LayoutRepository,
	laborRepo *repository.LaborRepository,
	opts analytics.Options,
	logger *zap.Logger,
) *LaborService {
	return &LaborService{
		layoutRepo: layoutRepo,
		laborRepo:  laborRepo,
		opts:       opts,
		logger:     logger,
	}
}

// GetStandards returns the stored standards, or the configured defaults
func (s *LaborService) GetStandards(ctx context.Context, layoutID int64) (*models.LaborStandards, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	stored, err := s.laborRepo.Get(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		n := analytics.NormalizeLaborStandards(*stored)
		return &n, nil
	}
	d := analytics.DefaultLaborStandards(layoutID)
	d.HourlyRate = s.opts.HourlyRate
	d.WalkingSpeedFPM = s.opts.WalkingSpeedFPM
	d.WorkingDaysPerYear = s.opts.WorkingDaysPerYear
	d = analytics.NormalizeLaborStandards(d)
	return &d, nil
}

// SaveStandards validates and stores the standards of a layout. Zero
// fields take the default value.
func (s *LaborService) SaveStandards(ctx context.Context, layoutID int64, in models.LaborStandards) (*models.LaborStandards, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	if in.HourlyRate < 0 || in.WalkingSpeedFPM < 0 || in.PickSeconds < 0 ||
		in.SetupSeconds < 0 || in.ShiftHours < 0 || in.WorkingDaysPerYear < 0 {
		return nil, fmt.Errorf("%w: labor standards must not be negative", models.ErrInvalidInput)
	}
	if in.ShiftHours > 24 || in.WorkingDaysPerYear > 366 {
		return nil, fmt.Errorf("%w: shift hours or working days out of range", models.ErrInvalidInput)
	}

	in.LayoutID = layoutID
	n := analytics.NormalizeLaborStandards(in)
	if err := s.laborRepo.Upsert(ctx, n); err != nil {
		return nil, err
	}
	s.logger.Info("labor standards saved", zap.Int64("layout_id", layoutID), zap.Float64("hourly_rate", n.HourlyRate))
	return &n, nil
}
