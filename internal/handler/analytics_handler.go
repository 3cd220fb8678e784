package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/service"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for the slotting analytics
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetHeatmap handles GET /api/v1/layouts/:id/heatmap
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	heatmap, err := h.service.Heatmap(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to get heatmap", err)
		return
	}
	response.Success(c, heatmap)
}

// GetDashboard handles GET /api/v1/layouts/:id/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	kpi, err := h.service.Dashboard(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to get dashboard", err)
		return
	}
	response.Success(c, kpi)
}

// GetVelocity handles GET /api/v1/layouts/:id/velocity
func (h *AnalyticsHandler) GetVelocity(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	velocity, err := h.service.Velocity(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to analyze velocity", err)
		return
	}
	response.Success(c, velocity)
}

// GetItemVelocity handles GET /api/v1/layouts/:id/item-velocity
func (h *AnalyticsHandler) GetItemVelocity(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	velocity, err := h.service.ItemVelocity(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to analyze item velocity", err)
		return
	}
	response.Success(c, velocity)
}

// GetReslotting handles GET /api/v1/layouts/:id/reslotting
func (h *AnalyticsHandler) GetReslotting(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.ReslottingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	result, err := h.service.Reslotting(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to find reslotting opportunities", err)
		return
	}
	response.Success(c, result)
}

// GetElementReslotting handles GET /api/v1/layouts/:id/element-reslotting
func (h *AnalyticsHandler) GetElementReslotting(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.ReslottingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	result, err := h.service.ElementReslotting(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to find element reslotting opportunities", err)
		return
	}
	response.Success(c, result)
}

// GetROI handles GET /api/v1/layouts/:id/roi
func (h *AnalyticsHandler) GetROI(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.ROIFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	roi, err := h.service.ROI(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to project ROI", err)
		return
	}
	response.Success(c, roi)
}

// GetLabor handles GET /api/v1/layouts/:id/labor
func (h *AnalyticsHandler) GetLabor(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var filter models.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	estimate, err := h.service.Labor(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, "Failed to estimate labor", err)
		return
	}
	response.Success(c, estimate)
}
