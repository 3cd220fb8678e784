package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/slotting-backend-go/internal/ingest"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"go.uber.org/zap"
)

// UploadService handles pick data ingestion and upload bookkeeping
type UploadService struct {
	layoutRepo  *repository.LayoutRepository
	elementRepo *repository.ElementRepository
	pickRepo    *repository.PickRepository
	metrics     metrics.Recorder
	logger      *zap.Logger
	now         func() time.Time
}

// NewUploadService creates a new upload service
func NewUploadService(
	layoutRepo *repository.LayoutRepository,
	elementRepo *repository.ElementRepository,
	pickRepo *repository.PickRepository,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *UploadService {
	if recorder == nil {
		recorder = metrics.NewNop()
	}
	return &UploadService{
		layoutRepo:  layoutRepo,
		elementRepo: elementRepo,
		pickRepo:    pickRepo,
		metrics:     recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// Upload validates a CSV file of the given kind against the layout's slot
// labels and stores it. Any invalid row rejects the whole file with a
// *models.ValidationError.
func (s *UploadService) Upload(ctx context.Context, layoutID int64, kind, fileName string, r io.Reader) (*models.Upload, error) {
	if kind != models.UploadKindElement && kind != models.UploadKindItem {
		return nil, fmt.Errorf("%w: unknown upload kind %q", models.ErrInvalidInput, kind)
	}
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	elements, err := s.elementRepo.ListByLayout(ctx, layoutID, "")
	if err != nil {
		return nil, err
	}
	idx := ingest.NewElementIndex(elements)

	var result *ingest.Result
	if kind == models.UploadKindElement {
		result, err = ingest.ParseElementPicks(r, layoutID, idx)
	} else {
		result, err = ingest.ParseItemPicks(r, layoutID, idx)
	}
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.metrics.RecordUploadRejected(kind)
			s.logger.Info("upload rejected",
				zap.Int64("layout_id", layoutID),
				zap.String("kind", kind),
				zap.String("file", fileName),
				zap.Int("row_errors", len(verr.Rows)))
		}
		return nil, err
	}

	upload := models.Upload{
		ID:        uuid.NewString(),
		LayoutID:  layoutID,
		Kind:      kind,
		FileName:  fileName,
		RowCount:  result.Rows(),
		StartDate: result.StartDate,
		EndDate:   result.EndDate,
		CreatedAt: s.now().UTC(),
	}
	for i := range result.ElementPicks {
		result.ElementPicks[i].UploadID = upload.ID
	}
	for i := range result.ItemPicks {
		result.ItemPicks[i].UploadID = upload.ID
	}

	if kind == models.UploadKindElement {
		err = s.pickRepo.InsertElementUpload(ctx, upload, result.ElementPicks)
	} else {
		err = s.pickRepo.InsertItemUpload(ctx, upload, result.ItemPicks, result.Items)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.metrics.RecordUpload(kind, upload.RowCount)
	s.logger.Info("upload stored",
		zap.Int64("layout_id", layoutID),
		zap.String("upload_id", upload.ID),
		zap.String("kind", kind),
		zap.Int("rows", upload.RowCount),
		zap.String("start", upload.StartDate),
		zap.String("end", upload.EndDate))
	return &upload, nil
}

// ListUploads returns the uploads of a layout
func (s *UploadService) ListUploads(ctx context.Context, layoutID int64) ([]models.Upload, error) {
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	return s.pickRepo.ListUploads(ctx, layoutID)
}

// DeleteUpload removes an upload and its pick rows
func (s *UploadService) DeleteUpload(ctx context.Context, uploadID string) error {
	if _, err := uuid.Parse(uploadID); err != nil {
		return fmt.Errorf("%w: malformed upload id", models.ErrInvalidInput)
	}
	if err := s.pickRepo.DeleteUpload(ctx, uploadID); err != nil {
		return err
	}
	s.logger.Info("upload deleted", zap.String("upload_id", uploadID))
	return nil
}

// SampleCSV renders a sample upload file for the layout's slot elements
func (s *UploadService) SampleCSV(ctx context.Context, layoutID int64, kind string, days int) ([]byte, error) {
	if kind == "" {
		kind = models.UploadKindElement
	}
	if kind != models.UploadKindElement && kind != models.UploadKindItem {
		return nil, fmt.Errorf("%w: unknown sample kind %q", models.ErrInvalidInput, kind)
	}
	if days < 0 || days > 366 {
		return nil, fmt.Errorf("%w: days must be between 1 and 366", models.ErrInvalidInput)
	}
	if _, err := s.layoutRepo.GetByID(ctx, layoutID); err != nil {
		return nil, err
	}
	elements, err := s.elementRepo.ListByLayout(ctx, layoutID, "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ingest.WriteSampleCSV(&buf, kind, elements, days, s.now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
