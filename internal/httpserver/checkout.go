package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soldout-pos/internal/domain"
)

type checkoutRequest struct {
	PaymentChannelID string `json:"paymentChannelId" binding:"required"`
	Override         bool   `json:"override"`
}

type checkoutAttemptRequest struct {
	PaymentChannelID string `json:"paymentChannelId" binding:"required"`
}

// checkoutAttemptHandler runs the stock validation without committing, so
// the UI can surface shortages before the operator confirms.
func checkoutAttemptHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutAttemptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		result, err := svc.Attempt(c.Request.Context(), req.PaymentChannelID)
		if err != nil {
			writeError(c, err)
			return
		}
		shortage := result.Shortage
		if shortage == nil {
			shortage = []domain.Shortage{}
		}
		c.JSON(http.StatusOK, gin.H{"shortage": shortage})
	}
}

// checkoutHandler commits the current cart. A shortage is not an error:
// it comes back as a 409 payload the operator can override.
func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		result, err := svc.Commit(c.Request.Context(), req.PaymentChannelID, req.Override)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(result.Shortage) > 0 {
			c.JSON(http.StatusConflict, gin.H{"shortage": result.Shortage})
			return
		}
		c.JSON(http.StatusOK, result.Order)
	}
}
