package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
)

// GetMyCase returns the read-only projection of the caller's own file:
// client fields, reconciled payment summary, checklist and document map.
func GetMyCase(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	resp, err := newClientResponse(*client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build case view"})
		return
	}

	stages, err := services.EnsureStages(config.DB, client.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stages"})
		return
	}

	// Display-time reminder, never stored: a client who paid half and whose
	// profile stage is done should settle the balance.
	reminder := false
	if resp.PaymentStatus == services.PaymentDerivedPartiallyPaid {
		if stage := services.StageByNumber(stages, 2); stage != nil && stage.Status == models.StageCompleted {
			reminder = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"client":           resp,
		"stages":           newStageResponses(stages),
		"payment_reminder": reminder,
	})
}

// GetMyPayments lists the caller's own ledger with the reconciled summary.
func GetMyPayments(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	var ledger []models.Payment
	if err := config.DB.Where("client_id = ?", client.ClientID).
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

// GetMyStages returns the caller's checklist, read-only.
func GetMyStages(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	stages, err := services.EnsureStages(config.DB, client.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stages": newStageResponses(stages)})
}

// GetMyDocuments returns the caller's document map.
func GetMyDocuments(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	var docs []models.ClientDocument
	if err := config.DB.Where("client_id = ? AND delete_at IS NULL", client.ClientID).
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "documents": models.DocumentMap(docs)})
}

// SubmitReceipt uploads a BaridiMob transfer receipt. The receipt lands as a
// pending ledger row that staff verify by hand.
func SubmitReceipt(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	amountRaw := strings.TrimSpace(c.PostForm("amount"))
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "a positive amount is required"})
		return
	}

	paymentType := c.DefaultPostForm("payment_type", models.PaymentTypeInitial)
	if paymentType != models.PaymentTypeInitial && paymentType != models.PaymentTypeSecond {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payment type"})
		return
	}

	// The reference is minted up front so the receipt document is keyed to
	// this ledger row and never overwritten by a later upload.
	reference := uuid.New().String()

	userID, _ := currentUserID(c)
	doc, err := saveClientDocument(c, client, models.ReceiptDocumentType(reference), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	payment := models.Payment{
		ClientID:      client.ClientID,
		PaymentType:   paymentType,
		PaymentMethod: models.PaymentMethodBaridiMob,
		Amount:        amount,
		Status:        models.PaymentStatusPending,
		Reference:     reference,
		ReceiptURL:    &doc.FileURL,
		CreateAt:      time.Now(),
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Receipt received. Your payment will be verified by our staff.",
		"payment": payment,
	})
}

// RequestSecondPayment opens a pending second-installment row bounded by the
// remaining balance of the selected offer.
func RequestSecondPayment(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.PaymentMethod != models.PaymentMethodCIB && req.PaymentMethod != models.PaymentMethodBaridiMob {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment method must be cib or baridimob"})
		return
	}

	var ledger []models.Payment
	if err := config.DB.Where("client_id = ?", client.ClientID).Find(&ledger).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payments"})
		return
	}

	summary := services.Reconcile(ledger)
	remaining := config.OfferAmount(client.SelectedOffer).Sub(summary.PaidAmount)
	if !remaining.IsPositive() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Nothing left to pay on this offer"})
		return
	}
	if summary.RemainingAmount.IsPositive() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "A payment is already awaiting verification"})
		return
	}

	payment := models.Payment{
		ClientID:      client.ClientID,
		PaymentType:   models.PaymentTypeSecond,
		PaymentMethod: req.PaymentMethod,
		Amount:        remaining,
		Status:        models.PaymentStatusPending,
		Reference:     uuid.New().String(),
		CreateAt:      time.Now(),
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

// UploadMyDocument stores a document on the caller's own file.
func UploadMyDocument(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	docType := strings.TrimSpace(c.PostForm("document_type"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "document_type is required"})
		return
	}

	userID, _ := currentUserID(c)
	doc, err := saveClientDocument(c, client, docType, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "document": doc})
}

// DeleteMyDocument removes a document of the given type from the caller's
// own file.
func DeleteMyDocument(c *gin.Context) {
	client, ok := clientForUser(c)
	if !ok {
		return
	}

	docType := strings.TrimSpace(c.Param("type"))
	result := config.DB.Model(&models.ClientDocument{}).
		Where("client_id = ? AND document_type = ? AND delete_at IS NULL", client.ClientID, docType).
		Updates(map[string]interface{}{"delete_at": time.Now(), "update_at": time.Now()})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete document"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document deleted"})
}
