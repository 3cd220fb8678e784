package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"github.com/jengzang/slotting-backend-go/internal/spatial"
	"go.uber.org/zap"
)

// canvasMargin is the padding added when a layout grows to fit its contents
const canvasMargin = 50.0

// LayoutService handles business logic for layouts, their elements and
// route markers
type LayoutService struct {
	layoutRepo  *repository.LayoutRepository
	elementRepo *repository.ElementRepository
	markerRepo  *repository.RouteMarkerRepository
	logger      *zap.Logger
}

// NewLayoutService creates a new layout service
func NewLayoutService(
	layoutRepo *repository.LayoutRepository,
	elementRepo *repository.ElementRepository,
	markerRepo *repository.RouteMarkerRepository,
	logger *zap.Logger,
) *LayoutService {
	return &LayoutService{
		layoutRepo:  layoutRepo,
		elementRepo: elementRepo,
		markerRepo:  markerRepo,
		logger:      logger,
	}
}

// ListLayouts returns all layouts
func (s *LayoutService) ListLayouts(ctx context.Context) ([]models.Layout, error) {
	return s.layoutRepo.List(ctx)
}

// GetLayout returns one layout
func (s *LayoutService) GetLayout(ctx context.Context, id int64) (*models.Layout, error) {
	return s.layoutRepo.GetByID(ctx, id)
}

// CreateLayout validates and stores a new layout
func (s *LayoutService) CreateLayout(ctx context.Context, in models.LayoutInput) (*models.Layout, error) {
	l, err := layoutFromInput(in)
	if err != nil {
		return nil, err
	}
	created, err := s.layoutRepo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	s.logger.Info("layout created", zap.Int64("layout_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// UpdateLayout overwrites a layout's name, description and canvas size
func (s *LayoutService) UpdateLayout(ctx context.Context, id int64, in models.LayoutInput) (*models.Layout, error) {
	l, err := layoutFromInput(in)
	if err != nil {
		return nil, err
	}
	l.ID = id
	return s.layoutRepo.Update(ctx, l)
}

// DeleteLayout removes a layout with everything in it
func (s *LayoutService) DeleteLayout(ctx context.Context, id int64) error {
	if err := s.layoutRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("layout deleted", zap.Int64("layout_id", id))
	return nil
}

func layoutFromInput(in models.LayoutInput) (models.Layout, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Layout{}, fmt.Errorf("%w: layout name is required", models.ErrInvalidInput)
	}
	if in.CanvasWidth < 0 || in.CanvasHeight < 0 {
		return models.Layout{}, fmt.Errorf("%w: canvas size must not be negative", models.ErrInvalidInput)
	}
	l := models.Layout{
		Name:         name,
		Description:  in.Description,
		CanvasWidth:  in.CanvasWidth,
		CanvasHeight: in.CanvasHeight,
	}
	if l.CanvasWidth == 0 {
		l.CanvasWidth = models.DefaultCanvasWidth
	}
	if l.CanvasHeight == 0 {
		l.CanvasHeight = models.DefaultCanvasHeight
	}
	return l, nil
}

// ListElements returns the elements of a layout, optionally of one type
func (s *LayoutService) ListElements(ctx context.Context, layoutID int64, elementType string) ([]models.WarehouseElement, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	if elementType != "" && !models.IsValidElementType(elementType) {
		return nil, fmt.Errorf("%w: unknown element type %q", models.ErrInvalidInput, elementType)
	}
	return s.elementRepo.ListByLayout(ctx, layoutID, elementType)
}

// CreateElement adds one element to a layout
func (s *LayoutService) CreateElement(ctx context.Context, layoutID int64, in models.ElementInput) (*models.WarehouseElement, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	e := in.ToElement(layoutID)
	e.ID = 0
	if err := validateElement(e); err != nil {
		return nil, err
	}
	created, err := s.elementRepo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	if err := s.fitCanvas(ctx, layoutID); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateElement overwrites an element; the element keeps its layout
func (s *LayoutService) UpdateElement(ctx context.Context, id int64, in models.ElementInput) (*models.WarehouseElement, error) {
	current, err := s.elementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e := in.ToElement(current.LayoutID)
	e.ID = id
	if err := validateElement(e); err != nil {
		return nil, err
	}
	updated, err := s.elementRepo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if err := s.fitCanvas(ctx, current.LayoutID); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteElement removes an element and its pick history
func (s *LayoutService) DeleteElement(ctx context.Context, id int64) error {
	return s.elementRepo.Delete(ctx, id)
}

// SaveCanvas replaces the element set of a layout with the designer's state
func (s *LayoutService) SaveCanvas(ctx context.Context, layoutID int64, inputs []models.ElementInput) ([]models.WarehouseElement, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}

	elements := make([]models.WarehouseElement, 0, len(inputs))
	for i, in := range inputs {
		e := in.ToElement(layoutID)
		if err := validateElement(e); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, e)
	}

	saved, err := s.elementRepo.SaveCanvas(ctx, layoutID, elements)
	if err != nil {
		return nil, err
	}
	if err := s.fitCanvas(ctx, layoutID); err != nil {
		return nil, err
	}
	s.logger.Info("canvas saved", zap.Int64("layout_id", layoutID), zap.Int("elements", len(saved)))
	return saved, nil
}

func validateElement(e models.WarehouseElement) error {
	if !models.IsValidElementType(e.Type) {
		return fmt.Errorf("%w: unknown element type %q", models.ErrInvalidInput, e.Type)
	}
	if e.IsSlot() && e.Label == "" {
		return fmt.Errorf("%w: slot elements need a label", models.ErrInvalidInput)
	}
	if e.Width < 0 || e.Height < 0 {
		return fmt.Errorf("%w: element size must not be negative", models.ErrInvalidInput)
	}
	if e.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", models.ErrInvalidInput)
	}
	return nil
}

// ListMarkers returns the route markers of a layout
func (s *LayoutService) ListMarkers(ctx context.Context, layoutID int64) ([]models.RouteMarker, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	return s.markerRepo.ListByLayout(ctx, layoutID)
}

// CreateMarker adds a route marker to a layout
func (s *LayoutService) CreateMarker(ctx context.Context, layoutID int64, in models.RouteMarkerInput) (*models.RouteMarker, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	if !models.IsValidMarkerType(in.MarkerType) {
		return nil, fmt.Errorf("%w: unknown marker type %q", models.ErrInvalidInput, in.MarkerType)
	}
	created, err := s.markerRepo.Create(ctx, in.ToMarker(layoutID))
	if err != nil {
		return nil, err
	}
	if err := s.fitCanvas(ctx, layoutID); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteMarker removes a route marker
func (s *LayoutService) DeleteMarker(ctx context.Context, id int64) error {
	return s.markerRepo.Delete(ctx, id)
}

// ReplaceMarkers swaps the marker set of a layout
func (s *LayoutService) ReplaceMarkers(ctx context.Context, layoutID int64, inputs []models.RouteMarkerInput) ([]models.RouteMarker, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	markers := make([]models.RouteMarker, 0, len(inputs))
	for i, in := range inputs {
		if !models.IsValidMarkerType(in.MarkerType) {
			return nil, fmt.Errorf("marker %d: %w: unknown marker type %q", i, models.ErrInvalidInput, in.MarkerType)
		}
		markers = append(markers, in.ToMarker(layoutID))
	}
	saved, err := s.markerRepo.Replace(ctx, layoutID, markers)
	if err != nil {
		return nil, err
	}
	if err := s.fitCanvas(ctx, layoutID); err != nil {
		return nil, err
	}
	return saved, nil
}

// fitCanvas grows the layout canvas when its contents reach past the edge.
// The canvas never shrinks.
func (s *LayoutService) fitCanvas(ctx context.Context, layoutID int64) error {
	layout, err := s.layoutRepo.GetByID(ctx, layoutID)
	if err != nil {
		return err
	}
	elements, err := s.elementRepo.ListByLayout(ctx, layoutID, "")
	if err != nil {
		return err
	}
	markers, err := s.markerRepo.ListByLayout(ctx, layoutID)
	if err != nil {
		return err
	}

	bounds, ok := spatial.LayoutBounds(elements, markers)
	if !ok {
		return s.layoutRepo.Touch(ctx, layoutID)
	}
	width := math.Max(layout.CanvasWidth, math.Ceil(bounds.X.Hi+canvasMargin))
	height := math.Max(layout.CanvasHeight, math.Ceil(bounds.Y.Hi+canvasMargin))
	if width == layout.CanvasWidth && height == layout.CanvasHeight {
		return s.layoutRepo.Touch(ctx, layoutID)
	}

	layout.CanvasWidth, layout.CanvasHeight = width, height
	if _, err := s.layoutRepo.Update(ctx, *layout); err != nil {
		return err
	}
	s.logger.Debug("canvas grown",
		zap.Int64("layout_id", layoutID),
		zap.Float64("width", width),
		zap.Float64("height", height))
	return nil
}
