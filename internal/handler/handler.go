package handler

import (
	"net/http"
	"strconv"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP status for its taxonomy
// kind and writes the message body.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
	})
}

// parseIDParam reads a numeric path parameter. A non-numeric value is
// InvalidInput, not NotFound.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return id, true
}
