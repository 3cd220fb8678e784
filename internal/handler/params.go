package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/pkg/response"
)

// pathID parses a positive integer path parameter, writing a 400 on failure
func pathID(c *gin.Context, name, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+what+" ID", err)
		return 0, false
	}
	return id, true
}
