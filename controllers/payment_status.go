package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"relocation-api/config"
	"relocation-api/services"
)

// UpdatePaymentStatus translates an admin's target payment status into
// ledger mutations (PATCH /clients/:id/payment-status). The ledger is
// authoritative; the response carries the freshly reconciled projection.
func UpdatePaymentStatus(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Reject bad targets before touching the ledger.
	if !services.ValidPaymentTarget(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment status"})
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	adminID, _ := currentUserID(c)

	err := services.ApplyPaymentStatus(config.DB, client.ClientID, client.SelectedOffer, req.PaymentStatus, adminID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPaymentTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update payment status"})
		return
	}

	if client.UserID != nil {
		uid := uint(*client.UserID)
		cid := uint(client.ClientID)
		services.CreateNotification(uid, "Payment status updated",
			"Your payment status was set to: "+req.PaymentStatus, "info", &cid)
	}

	respondWithClient(c, *client)
}
