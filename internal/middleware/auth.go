package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// tokenIssuer is the iss claim of every token minted by the service
const tokenIssuer = "slotting-backend"

// subjectKey is the gin context key of the authenticated subject
const subjectKey = "subject"

// Subject returns the authenticated subject of the request, if any
func Subject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

// IssueToken mints an HS256 token for subject valid for ttl
func IssueToken(secret, subject string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	now := time.Now()
	expires := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken validates a token minted by IssueToken and returns its subject
func ParseToken(secret, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// JWTAuth middleware requires a valid bearer token
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "Missing bearer token")
			return
		}
		subject, err := ParseToken(secret, token)
		if err != nil {
			response.Unauthorized(c, "Invalid token", err)
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}
