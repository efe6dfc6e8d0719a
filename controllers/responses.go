package controllers

import (
	"errors"
	"net/http"

	"github.com/dineflow/table-orders-api/services"
	"github.com/gin-gonic/gin"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string, details any) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// respondServiceError maps the service error taxonomy onto HTTP so the dashboard
// can tell bad input, missing orders and storage outages apart
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", gin.H{
			"field":  vErr.Field,
			"reason": vErr.Message,
		})
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	case services.IsStoreError(err):
		c.Header("Retry-After", "1")
		respondError(c, http.StatusServiceUnavailable, "DATABASE_ERROR", "Order storage is unavailable, please retry", nil)
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error", nil)
	}
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
