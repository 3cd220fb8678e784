package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/service"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// LayoutHandler handles HTTP requests for layouts, elements and route markers
type LayoutHandler struct {
	service *service.LayoutService
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(service *service.LayoutService) *LayoutHandler {
	return &LayoutHandler{service: service}
}

// GetLayouts handles GET /api/v1/layouts
func (h *LayoutHandler) GetLayouts(c *gin.Context) {
	layouts, err := h.service.ListLayouts(c.Request.Context())
	if err != nil {
		response.FromError(c, "Failed to get layouts", err)
		return
	}
	response.Success(c, layouts)
}

// GetLayout handles GET /api/v1/layouts/:id
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	layout, err := h.service.GetLayout(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "Failed to get layout", err)
		return
	}
	response.Success(c, layout)
}

// CreateLayout handles POST /api/v1/layouts
func (h *LayoutHandler) CreateLayout(c *gin.Context) {
	var input models.LayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid layout", err)
		return
	}
	layout, err := h.service.CreateLayout(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, "Failed to create layout", err)
		return
	}
	response.Created(c, layout)
}

// UpdateLayout handles PUT /api/v1/layouts/:id
func (h *LayoutHandler) UpdateLayout(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input models.LayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid layout", err)
		return
	}
	layout, err := h.service.UpdateLayout(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to update layout", err)
		return
	}
	response.Success(c, layout)
}

// DeleteLayout handles DELETE /api/v1/layouts/:id
func (h *LayoutHandler) DeleteLayout(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	if err := h.service.DeleteLayout(c.Request.Context(), id); err != nil {
		response.FromError(c, "Failed to delete layout", err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// GetElements handles GET /api/v1/layouts/:id/elements
func (h *LayoutHandler) GetElements(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	elements, err := h.service.ListElements(c.Request.Context(), id, c.Query("type"))
	if err != nil {
		response.FromError(c, "Failed to get elements", err)
		return
	}
	response.Success(c, elements)
}

// CreateElement handles POST /api/v1/layouts/:id/elements
func (h *LayoutHandler) CreateElement(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input models.ElementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid element", err)
		return
	}
	element, err := h.service.CreateElement(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to create element", err)
		return
	}
	response.Created(c, element)
}

// SaveCanvas handles PUT /api/v1/layouts/:id/elements
func (h *LayoutHandler) SaveCanvas(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input []models.ElementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid element list", err)
		return
	}
	elements, err := h.service.SaveCanvas(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to save canvas", err)
		return
	}
	response.Success(c, elements)
}

// UpdateElement handles PUT /api/v1/elements/:id
func (h *LayoutHandler) UpdateElement(c *gin.Context) {
	id, ok := pathID(c, "id", "element")
	if !ok {
		return
	}
	var input models.ElementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid element", err)
		return
	}
	element, err := h.service.UpdateElement(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to update element", err)
		return
	}
	response.Success(c, element)
}

// DeleteElement handles DELETE /api/v1/elements/:id
func (h *LayoutHandler) DeleteElement(c *gin.Context) {
	id, ok := pathID(c, "id", "element")
	if !ok {
		return
	}
	if err := h.service.DeleteElement(c.Request.Context(), id); err != nil {
		response.FromError(c, "Failed to delete element", err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// GetRouteMarkers handles GET /api/v1/layouts/:id/route-markers
func (h *LayoutHandler) GetRouteMarkers(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	markers, err := h.service.ListMarkers(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "Failed to get route markers", err)
		return
	}
	response.Success(c, markers)
}

// CreateRouteMarker handles POST /api/v1/layouts/:id/route-markers
func (h *LayoutHandler) CreateRouteMarker(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input models.RouteMarkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid route marker", err)
		return
	}
	marker, err := h.service.CreateMarker(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to create route marker", err)
		return
	}
	response.Created(c, marker)
}

// ReplaceRouteMarkers handles PUT /api/v1/layouts/:id/route-markers
func (h *LayoutHandler) ReplaceRouteMarkers(c *gin.Context) {
	id, ok := pathID(c, "id", "layout")
	if !ok {
		return
	}
	var input []models.RouteMarkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid route marker list", err)
		return
	}
	markers, err := h.service.ReplaceMarkers(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, "Failed to save route markers", err)
		return
	}
	response.Success(c, markers)
}

// DeleteRouteMarker handles DELETE /api/v1/route-markers/:id
func (h *LayoutHandler) DeleteRouteMarker(c *gin.Context) {
	id, ok := pathID(c, "id", "route marker")
	if !ok {
		return
	}
	if err := h.service.DeleteMarker(c.Request.Context(), id); err != nil {
		response.FromError(c, "Failed to delete route marker", err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
