package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/service"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// LaborHandler handles HTTP requests for labor standards
type LaborHandler struct {
	service *service.LaborService
}

// NewLaborHandler creates a new labor handler
func NewLaborHandler(service *service.LaborService) *LaborHandler {
	return &LaborHandler{service: service}
}

// GetStandards handles GET /api/v1/layouts/:id/labor-standards
func (h *LaborHandler) GetStandards(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	standards, err := h.service.GetStandards(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "Failed to get labor standards", err)
		return
	}
	response.Success(c, standards)
}

// UpdateStandards handles PUT /api/v1/layouts/:id/labor-standards
func (h *LaborHandler) UpdateStandards(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input models.LaborStandards
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid labor standards", err)
		return
	}
	standards, err := h.service.SaveStandards(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to save labor standards", err)
		return
	}
	response.Success(c, standards)
}
