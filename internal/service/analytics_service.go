package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/analytics"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"github.com/jengzang/slotting-backend-go/internal/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWindowDays is the analysis window when no start date is given
const DefaultWindowDays = 30

// maxWindowDays bounds the analysis window
const maxWindowDays = 366 * 3

// AnalyticsService composes stored pick data with the slotting analytics
type AnalyticsService struct {
	layoutRepo  *repository.LayoutRepository
	elementRepo *repository.ElementRepository
	markerRepo  *repository.RouteMarkerRepository
	pickRepo    *repository.PickRepository
	laborRepo   *repository.LaborRepository
	opts        analytics.Options
	metrics     metrics.Recorder
	logger      *zap.Logger
	now         func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	layoutRepo *repository.LayoutRepository,
	elementRepo *repository.ElementRepository,
	markerRepo *repository.RouteMarkerRepository,
	pickRepo *repository.PickRepository,
	laborRepo *repository.LaborRepository,
	opts analytics.Options,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *AnalyticsService {
	if recorder == nil {
		recorder = metrics.NewNop()
	}
	return &AnalyticsService{
		layoutRepo:  layoutRepo,
		elementRepo: elementRepo,
		markerRepo:  markerRepo,
		pickRepo:    pickRepo,
		laborRepo:   laborRepo,
		opts:        opts,
		metrics:     recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// layoutData is the geometry and pick data of one layout over a period and
// the period before it
type layoutData struct {
	period    models.Period
	previous  models.Period
	elements  []models.WarehouseElement
	markers   []models.RouteMarker
	distances map[int64]float64
	closest   map[string]float64
	current   []models.AggregatedPickData
	prior     []models.AggregatedPickData
}

// ResolvePeriod turns query parameters into an inclusive date window. The
// window ends at the given end date, else at the latest pick date of the
// layout, else today, and spans filter.Days (default 30) unless a start date
// is given.
func (s *AnalyticsService) ResolvePeriod(ctx context.Context, layoutID int64, filter models.PeriodFilter) (models.Period, error) {
	var end time.Time
	switch {
	case filter.End != "":
		t, err := time.Parse(models.DateLayout, filter.End)
		if err != nil {
			return models.Period{}, fmt.Errorf("%w: end must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		end = t
	default:
		latest, err := s.pickRepo.LatestPickDate(ctx, layoutID)
		if err != nil {
			return models.Period{}, err
		}
		if latest != "" {
			end, _ = time.Parse(models.DateLayout, latest)
		} else {
			now := s.now().UTC()
			end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	var start time.Time
	if filter.Start != "" {
		t, err := time.Parse(models.DateLayout, filter.Start)
		if err != nil {
			return models.Period{}, fmt.Errorf("%w: start must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		start = t
	} else {
		days := filter.Days
		if days < 0 {
			return models.Period{}, fmt.Errorf("%w: days must be positive", models.ErrInvalidInput)
		}
		if days == 0 {
			days = DefaultWindowDays
		}
		start = end.AddDate(0, 0, -(days - 1))
	}

	period, err := models.NewPeriod(start, end)
	if err != nil {
		return models.Period{}, err
	}
	if period.Days > maxWindowDays {
		return models.Period{}, fmt.Errorf("%w: window longer than %d days", models.ErrInvalidInput, maxWindowDays)
	}
	return period, nil
}

// load fetches the layout geometry and the element aggregates of the current
// and previous periods concurrently
func (s *AnalyticsService) load(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*layoutData, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	period, err := s.ResolvePeriod(ctx, layoutID, filter)
	if err != nil {
		return nil, err
	}
	d := &layoutData{period: period, previous: period.Previous()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.elements, err = s.elementRepo.ListByLayout(gctx, layoutID, "")
		return err
	})
	g.Go(func() error {
		var err error
		d.markers, err = s.markerRepo.ListByLayout(gctx, layoutID)
		return err
	})
	g.Go(func() error {
		var err error
		d.current, err = s.pickRepo.AggregateByElement(gctx, layoutID, d.period)
		return err
	})
	g.Go(func() error {
		var err error
		d.prior, err = s.pickRepo.AggregateByElement(gctx, layoutID, d.previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load layout %d: %w", layoutID, err)
	}

	d.distances = analytics.ElementDistances(d.elements, d.markers)
	d.closest = analytics.ClosestByType(d.elements, d.distances)
	d.current = analytics.AttachDistances(analytics.WithDailyAverages(d.current, d.period.Days), d.distances)
	d.prior = analytics.AttachDistances(analytics.WithDailyAverages(d.prior, d.previous.Days), d.distances)
	return d, nil
}

func (s *AnalyticsService) observe(name string, start time.Time) {
	s.metrics.ObserveAnalysis(name, time.Since(start))
}

// Velocity classifies every picked element of the layout into tiers
func (s *AnalyticsService) Velocity(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*models.VelocityResponse, error) {
	defer s.observe("velocity", time.Now())

	d, err := s.load(ctx, layoutID, filter)
	if err != nil {
		return nil, err
	}
	analyses := analytics.AnalyzeVelocity(d.current, d.prior, d.closest, s.opts)

	tiers := make([]string, len(analyses))
	for i, a := range analyses {
		tiers[i] = a.Tier
	}
	return &models.VelocityResponse{
		Period:   d.period,
		Previous: d.previous,
		Summary:  analytics.SummarizeTiers(tiers),
		Elements: analyses,
	}, nil
}

// itemVelocity computes item analyses for the period, returning them with the
// loaded layout data
func (s *AnalyticsService) itemVelocity(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*layoutData, []models.ItemVelocityAnalysis, error) {
	d, err := s.load(ctx, layoutID, filter)
	if err != nil {
		return nil, nil, err
	}

	var current, prior []models.AggregatedItemPickData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.pickRepo.AggregateByItem(gctx, layoutID, d.period)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.pickRepo.AggregateByItem(gctx, layoutID, d.previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load item picks: %w", err)
	}

	current = analytics.AttachItemDistances(analytics.WithItemDailyAverages(current, d.period.Days), d.distances)
	prior = analytics.AttachItemDistances(analytics.WithItemDailyAverages(prior, d.previous.Days), d.distances)
	return d, analytics.AnalyzeItemVelocity(current, prior, d.closest, s.opts), nil
}

// ItemVelocity classifies every picked item of the layout into tiers
func (s *AnalyticsService) ItemVelocity(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*models.ItemVelocityResponse, error) {
	defer s.observe("item_velocity", time.Now())

	d, items, err := s.itemVelocity(ctx, layoutID, filter)
	if err != nil {
		return nil, err
	}
	tiers := make([]string, len(items))
	for i, it := range items {
		tiers[i] = it.Tier
	}
	return &models.ItemVelocityResponse{
		Period:   d.period,
		Previous: d.previous,
		Summary:  analytics.SummarizeTiers(tiers),
		Items:    items,
	}, nil
}

// Reslotting proposes item moves toward cart parking
func (s *AnalyticsService) Reslotting(ctx context.Context, layoutID int64, filter models.ReslottingFilter) (*models.ReslottingResponse, error) {
	defer s.observe("reslotting", time.Now())

	opts, err := s.withThreshold(filter.Threshold)
	if err != nil {
		return nil, err
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", models.ErrInvalidInput)
	}

	d, opps, err := s.itemOpportunities(ctx, layoutID, filter.PeriodFilter, opts, filter.Limit)
	if err != nil {
		return nil, err
	}
	feet, minutes := analytics.SumSavings(opps)
	return &models.ReslottingResponse{
		Period:             d.period,
		CapacityThreshold:  opts.CapacityThreshold,
		Opportunities:      opps,
		Count:              len(opps),
		TotalFeetPerDay:    stats.Round(feet, 2),
		TotalMinutesPerDay: stats.Round(minutes, 2),
	}, nil
}

func (s *AnalyticsService) itemOpportunities(ctx context.Context, layoutID int64, filter models.PeriodFilter, opts analytics.Options, limit int) (*layoutData, []models.ReslottingOpportunity, error) {
	d, items, err := s.itemVelocity(ctx, layoutID, filter)
	if err != nil {
		return nil, nil, err
	}
	stocked, err := s.pickRepo.ListItems(ctx, layoutID)
	if err != nil {
		return nil, nil, err
	}
	return d, analytics.FindItemReslottingOpportunities(items, emptySlots(d, stocked), opts, limit), nil
}

// emptySlots lists slot elements that hold no item and have a distance
func emptySlots(d *layoutData, items []models.Item) []models.Slot {
	occupied := make(map[int64]bool, len(items))
	for _, it := range items {
		occupied[it.ElementID] = true
	}
	var slots []models.Slot
	for _, e := range d.elements {
		if !e.IsSlot() || occupied[e.ID] {
			continue
		}
		feet, ok := d.distances[e.ID]
		if !ok {
			continue
		}
		slots = append(slots, models.Slot{
			ElementID:     e.ID,
			Label:         e.Label,
			ElementType:   e.Type,
			Capacity:      e.Capacity,
			RoundTripFeet: feet,
		})
	}
	return slots
}

func (s *AnalyticsService) withThreshold(threshold float64) (analytics.Options, error) {
	opts := s.opts
	if threshold < 0 || threshold >= 1 {
		return opts, fmt.Errorf("%w: threshold must be in [0, 1)", models.ErrInvalidInput)
	}
	if threshold > 0 {
		opts.CapacityThreshold = threshold
	}
	if opts.CapacityThreshold == 0 {
		opts.CapacityThreshold = analytics.DefaultOptions().CapacityThreshold
	}
	return opts, nil
}

// ElementReslotting proposes moving the contents of busy far elements into
// quiet near ones
func (s *AnalyticsService) ElementReslotting(ctx context.Context, layoutID int64, filter models.ReslottingFilter) (*models.ElementReslottingResponse, error) {
	defer s.observe("element_reslotting", time.Now())

	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", models.ErrInvalidInput)
	}
	d, err := s.load(ctx, layoutID, filter.PeriodFilter)
	if err != nil {
		return nil, err
	}

	analyses := analytics.AnalyzeVelocity(d.current, d.prior, d.closest, s.opts)

	// Slots without picks are the coldest targets of all. They join after
	// ranking so they do not shift the tiers of picked elements.
	listed := make(map[int64]bool, len(analyses))
	for _, a := range analyses {
		listed[a.ElementID] = true
	}
	for _, e := range d.elements {
		if !e.IsSlot() || listed[e.ID] {
			continue
		}
		analyses = append(analyses, models.VelocityAnalysis{
			ElementID:     e.ID,
			Label:         e.Label,
			ElementType:   e.Type,
			Trend:         models.TrendStable,
			Percentile:    100,
			Tier:          models.TierCold,
			RoundTripFeet: d.distances[e.ID],
		})
	}
	opps := analytics.FindElementReslottingOpportunities(analyses, d.distances, s.opts, filter.Limit)

	var feet, minutes float64
	for _, o := range opps {
		feet += o.FeetSavedPerDay
		minutes += o.MinutesPerDay
	}
	return &models.ElementReslottingResponse{
		Period:             d.period,
		Opportunities:      opps,
		Count:              len(opps),
		TotalFeetPerDay:    stats.Round(feet, 2),
		TotalMinutesPerDay: stats.Round(minutes, 2),
	}, nil
}

// ROI projects the savings of the proposed item moves
func (s *AnalyticsService) ROI(ctx context.Context, layoutID int64, filter models.ROIFilter) (*models.ROIResponse, error) {
	defer s.observe("roi", time.Now())

	if filter.HourlyRate < 0 || filter.ImplementationCost < 0 {
		return nil, fmt.Errorf("%w: rate and cost must not be negative", models.ErrInvalidInput)
	}
	opts, err := s.withThreshold(filter.Threshold)
	if err != nil {
		return nil, err
	}
	standards, err := s.standards(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	opts.WalkingSpeedFPM = standards.WalkingSpeedFPM

	d, opps, err := s.itemOpportunities(ctx, layoutID, filter.PeriodFilter, opts, 0)
	if err != nil {
		return nil, err
	}

	rate := filter.HourlyRate
	if rate == 0 {
		rate = standards.HourlyRate
	}
	in := analytics.ROIInputFromOpportunities(opps, rate, filter.ImplementationCost)
	in.WorkingDaysPerYear = standards.WorkingDaysPerYear
	return &models.ROIResponse{
		Period:        d.period,
		Projection:    analytics.ProjectROI(in, opts),
		Opportunities: len(opps),
	}, nil
}

// Heatmap returns one intensity cell per slot element
func (s *AnalyticsService) Heatmap(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*models.HeatmapResponse, error) {
	defer s.observe("heatmap", time.Now())

	d, err := s.load(ctx, layoutID, filter)
	if err != nil {
		return nil, err
	}
	tiers := make(map[int64]string, len(d.current))
	for _, a := range analytics.AnalyzeVelocity(d.current, nil, d.closest, s.opts) {
		tiers[a.ElementID] = a.Tier
	}
	resp := analytics.BuildHeatmap(d.elements, d.current, tiers)
	resp.Period = d.period
	return &resp, nil
}

// Dashboard returns the headline KPIs of a layout
func (s *AnalyticsService) Dashboard(ctx context.Context, layoutID int64, filter models.DashboardFilter) (*models.DashboardKPIs, error) {
	defer s.observe("dashboard", time.Now())

	if filter.Top < 0 {
		return nil, fmt.Errorf("%w: top must not be negative", models.ErrInvalidInput)
	}
	d, err := s.load(ctx, layoutID, filter.PeriodFilter)
	if err != nil {
		return nil, err
	}

	var (
		daily []models.DailyPickTotal
		items []models.AggregatedItemPickData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.pickRepo.DailyTotals(gctx, layoutID, d.period)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.pickRepo.AggregateByItem(gctx, layoutID, d.period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	previousPicks := 0
	for _, p := range d.prior {
		previousPicks += p.TotalPicks
	}
	kpi := analytics.BuildDashboard(analytics.DashboardInput{
		Period:        d.period,
		Elements:      d.elements,
		Current:       d.current,
		PreviousPicks: previousPicks,
		ActiveItems:   len(items),
		Daily:         daily,
		Velocity:      analytics.AnalyzeVelocity(d.current, d.prior, d.closest, s.opts),
		HasParking:    hasCartParking(d.markers),
		Top:           filter.Top,
	})
	return &kpi, nil
}

func hasCartParking(markers []models.RouteMarker) bool {
	for _, m := range markers {
		if m.MarkerType == models.MarkerTypeCartParking {
			return true
		}
	}
	return false
}

// Labor estimates the daily labor of the layout's pick volume
func (s *AnalyticsService) Labor(ctx context.Context, layoutID int64, filter models.PeriodFilter) (*models.LaborEstimate, error) {
	defer s.observe("labor", time.Now())

	d, err := s.load(ctx, layoutID, filter)
	if err != nil {
		return nil, err
	}
	standards, err := s.standards(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	// Average round trip is weighted by picks so busy slots dominate.
	var total, located int
	var weighted float64
	for _, a := range d.current {
		total += a.TotalPicks
		if a.HasDistance {
			located += a.TotalPicks
			weighted += float64(a.TotalPicks) * a.RoundTripFeet
		}
	}
	var avgRoundTrip float64
	if located > 0 {
		avgRoundTrip = weighted / float64(located)
	}
	dailyPicks := float64(total) / float64(d.period.Days)

	est := analytics.EstimateLabor(standards, dailyPicks, avgRoundTrip)
	return &est, nil
}

// standards returns the stored labor standards of a layout, or defaults
func (s *AnalyticsService) standards(ctx context.Context, layoutID int64) (models.LaborStandards, error) {
	stored, err := s.laborRepo.Get(ctx, layoutID)
	if err != nil {
		return models.LaborStandards{}, err
	}
	if stored == nil {
		d := analytics.DefaultLaborStandards(layoutID)
		d.HourlyRate = s.opts.HourlyRate
		d.WalkingSpeedFPM = s.opts.WalkingSpeedFPM
		d.WorkingDaysPerYear = s.opts.WorkingDaysPerYear
		return analytics.NormalizeLaborStandards(d), nil
	}
	return analytics.NormalizeLaborStandards(*stored), nil
}
