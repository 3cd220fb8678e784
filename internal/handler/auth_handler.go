package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/middleware"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// AuthHandler issues bearer tokens in exchange for the service API key
type AuthHandler struct {
	secret string
	apiKey string
	ttl    time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(secret, apiKey string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{secret: secret, apiKey: apiKey, ttl: ttl}
}

type tokenRequest struct {
	APIKey  string `json:"api_key" binding:"required"`
	Subject string `json:"subject"`
}

// IssueToken handles POST /api/v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid token request", err)
		return
	}
	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		response.Unauthorized(c, "Invalid API key")
		return
	}
	if req.Subject == "" {
		req.Subject = "api"
	}

	token, expires, err := middleware.IssueToken(h.secret, req.Subject, h.ttl)
	if err != nil {
		response.InternalError(c, "Failed to issue token", err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}
