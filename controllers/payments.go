package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
)

// GetClientPayments lists the full ledger of one client with the reconciled
// summary.
func GetClientPayments(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	if _, ok := loadClient(c, clientID); !ok {
		return
	}

	var ledger []models.Payment
	if err := config.DB.Where("client_id = ?", clientID).
		Order("create_at ASC, payment_id ASC").
		Find(&ledger).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": ledger,
		"summary":  services.Reconcile(ledger),
	})
}

// CreatePaymentRequest is an admin manual-correction row.
type CreatePaymentRequest struct {
	PaymentType   string  `json:"payment_type" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Amount        string  `json:"amount" binding:"required"`
	Status        string  `json:"status" binding:"required"`
	ReceiptURL    *string `json:"receipt_url"`
}

// CreateClientPayment inserts one ledger row (admin manual correction).
func CreateClientPayment(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.PaymentType != models.PaymentTypeInitial && req.PaymentType != models.PaymentTypeSecond {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment type"})
		return
	}
	if !models.ValidPaymentRowStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment status"})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid amount"})
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	adminID, _ := currentUserID(c)

	payment := models.Payment{
		ClientID:      client.ClientID,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		Amount:        amount,
		Status:        req.Status,
		Reference:     uuid.New().String(),
		ReceiptURL:    req.ReceiptURL,
		CreateAt:      time.Now(),
	}
	if payment.Status == models.PaymentStatusVerified {
		now := time.Now()
		payment.VerifiedBy = &adminID
		payment.VerifiedAt = &now
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

func loadPayment(c *gin.Context) (*models.Payment, bool) {
	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paymentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment id"})
		return nil, false
	}

	var payment models.Payment
	if err := config.DB.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payment"})
		}
		return nil, false
	}
	return &payment, true
}

// VerifyPayment marks one pending row verified (bank-transfer receipts are
// checked by hand against the BaridiMob statement).
func VerifyPayment(c *gin.Context) {
	payment, ok := loadPayment(c)
	if !ok {
		return
	}

	adminID, _ := currentUserID(c)
	now := time.Now()

	payment.Status = models.PaymentStatusVerified
	payment.VerifiedBy = &adminID
	payment.VerifiedAt = &now

	if err := config.DB.Save(payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify payment"})
		return
	}

	notifyPaymentOwner(payment.ClientID, "Payment verified",
		"Your payment of "+payment.Amount.StringFixed(2)+" DA has been verified.", "success")

	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

// RejectPayment marks one row rejected (unreadable or mismatched receipt).
func RejectPayment(c *gin.Context) {
	payment, ok := loadPayment(c)
	if !ok {
		return
	}

	adminID, _ := currentUserID(c)
	now := time.Now()

	payment.Status = models.PaymentStatusRejected
	payment.VerifiedBy = &adminID
	payment.VerifiedAt = &now

	if err := config.DB.Save(payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to reject payment"})
		return
	}

	notifyPaymentOwner(payment.ClientID, "Payment rejected",
		"Your payment could not be verified. Please re-upload a readable receipt.", "error")

	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

func notifyPaymentOwner(clientID int, title, message, notifType string) {
	var client models.Client
	if err := config.DB.Where("client_id = ?", clientID).First(&client).Error; err != nil {
		return
	}
	if client.UserID == nil {
		return
	}
	uid := uint(*client.UserID)
	cid := uint(client.ClientID)
	services.CreateNotification(uid, title, message, notifType, &cid)
	services.SendClientEmail(client.Email, title, message)
}
