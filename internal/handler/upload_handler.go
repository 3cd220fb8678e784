package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/ingest"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/service"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// DefaultMaxUploadBytes bounds the size of an uploaded CSV file
const DefaultMaxUploadBytes = 32 << 20

// UploadHandler handles HTTP requests for pick data uploads
type UploadHandler struct {
	service  *service.UploadService
	maxBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *service.UploadService, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadHandler{service: service, maxBytes: maxBytes}
}

// UploadPicks handles POST /api/v1/layouts/:id/picks/upload
func (h *UploadHandler) UploadPicks(c *gin.Context) {
	h.upload(c, models.UploadKindElement)
}

// UploadItemPicks handles POST /api/v1/layouts/:id/item-picks/upload
func (h *UploadHandler) UploadItemPicks(c *gin.Context) {
	h.upload(c, models.UploadKindItem)
}

func (h *UploadHandler) upload(c *gin.Context, kind string) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "File too large", err)
			return
		}
		response.BadRequest(c, "Missing CSV file in form field \"file\"", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	upload, err := h.service.Upload(c.Request.Context(), id, kind, header.Filename, file)
	if err != nil {
		response.FromError(c, "Upload rejected", err)
		return
	}
	response.Created(c, upload)
}

// GetSample handles GET /api/v1/layouts/:id/picks/sample
func (h *UploadHandler) GetSample(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var query struct {
		Kind string `form:"kind"`
		Days int    `form:"days"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	if query.Days == 0 {
		query.Days = ingest.DefaultSampleDays
	}

	data, err := h.service.SampleCSV(c.Request.Context(), id, query.Kind, query.Days)
	if err != nil {
		response.FromError(c, "Failed to build sample file", err)
		return
	}
	kind := query.Kind
	if kind == "" {
		kind = models.UploadKindElement
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("sample_%s_picks.csv", kind)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GetUploads handles GET /api/v1/layouts/:id/uploads
func (h *UploadHandler) GetUploads(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	uploads, err := h.service.ListUploads(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "Failed to get uploads", err)
		return
	}
	response.Success(c, uploads)
}

// DeleteUpload handles DELETE /api/v1/uploads/:uploadId
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	uploadID := c.Param("uploadId")
	if err := h.service.DeleteUpload(c.Request.Context(), uploadID); err != nil {
		response.FromError(c, "Failed to delete upload", err)
		return
	}
	response.Success(c, gin.H{"id": uploadID})
}
