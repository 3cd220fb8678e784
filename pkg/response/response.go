package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/models"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 response for a newly created resource
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response. The optional error is attached to the gin
// context for the request logger and, for client errors, echoed to the caller.
func Error(c *gin.Context, code int, message string, err ...error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if len(err) > 0 && err[0] != nil {
		_ = c.Error(err[0])
		if code < http.StatusInternalServerError {
			resp.Error = err[0].Error()
		}
	}
	c.AbortWithStatusJSON(code, resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusBadRequest, message, err...)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusNotFound, message, err...)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusInternalServerError, message, err...)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusUnauthorized, message, err...)
}

// FromError maps a service error onto the matching status. Upload
// validation failures carry their row errors in data.
func FromError(c *gin.Context, message string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: message,
			Data:    verr,
			Error:   verr.Error(),
		})
	case errors.Is(err, models.ErrNotFound):
		NotFound(c, message, err)
	case errors.Is(err, models.ErrInvalidInput):
		BadRequest(c, message, err)
	default:
		InternalError(c, message, err)
	}
}
