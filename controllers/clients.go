package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
	"relocation-api/utils"
)

// clientResponse merges the client row with the reconciled payment
// projection and the document map. The payment fields are derived on every
// read; nothing here is a stored status.
type clientResponse struct {
	models.Client
	DestinationCountries []string                       `json:"destination_countries"`
	Documents            map[string]models.DocumentInfo `json:"documents"`
	services.PaymentSummary
}

func newClientResponse(client models.Client) (clientResponse, error) {
	var ledger []models.Payment
	if err := config.DB.Where("client_id = ?", client.ClientID).Find(&ledger).Error; err != nil {
		return clientResponse{}, err
	}

	var docs []models.ClientDocument
	if err := config.DB.Where("client_id = ? AND delete_at IS NULL", client.ClientID).Find(&docs).Error; err != nil {
		return clientResponse{}, err
	}

	client.Payments = nil
	client.Documents = nil
	return clientResponse{
		Client:               client,
		DestinationCountries: client.DestinationCountryList(),
		Documents:            models.DocumentMap(docs),
		PaymentSummary:       services.Reconcile(ledger),
	}, nil
}

func respondWithClient(c *gin.Context, client models.Client) {
	resp, err := newClientResponse(client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build client response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "client": resp})
}

// GetClients lists client files with their reconciled payment summaries.
// Supports ?case_status=, ?offer=, ?page=, ?limit=.
func GetClients(c *gin.Context) {
	query := config.DB.Model(&models.Client{}).Where("delete_at IS NULL")

	if caseStatus := strings.TrimSpace(c.Query("case_status")); caseStatus != "" {
		if !models.ValidCaseStatus(caseStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid case_status"})
			return
		}
		query = query.Where("case_status = ?", caseStatus)
	}
	if offer := strings.TrimSpace(c.Query("offer")); offer != "" {
		if !models.ValidOffer(offer) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid offer"})
			return
		}
		query = query.Where("selected_offer = ?", offer)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count clients"})
		return
	}

	var clients []models.Client
	if err := query.Order("create_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch clients"})
		return
	}

	responses := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		resp, err := newClientResponse(client)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build client list"})
			return
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"clients": responses,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetClient returns one client merged with the payment projection.
func GetClient(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	respondWithClient(c, *client)
}

// ClientUpdateRequest carries the mutable client fields. Nil fields are left
// untouched, so the same body shape serves PATCH and PUT.
type ClientUpdateRequest struct {
	FirstName            *string  `json:"first_name"`
	LastName             *string  `json:"last_name"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	Address              *string  `json:"address"`
	Diploma              *string  `json:"diploma"`
	SelectedOffer        *string  `json:"selected_offer"`
	DestinationCountries []string `json:"destination_countries"`
}

// UpdateClient applies a partial or full field update and returns the
// reconciled projection.
func UpdateClient(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req ClientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	if req.SelectedOffer != nil && !models.ValidOffer(*req.SelectedOffer) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid offer"})
		return
	}
	if req.Email != nil && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid email"})
		return
	}
	if req.Phone != nil && !utils.ValidatePhone(*req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid phone number"})
		return
	}

	if req.FirstName != nil {
		client.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		client.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.Diploma != nil {
		client.Diploma = req.Diploma
	}
	if req.SelectedOffer != nil {
		client.SelectedOffer = *req.SelectedOffer
	}
	if req.DestinationCountries != nil {
		// No cardinality check: tier-based country limits are a UI hint only.
		client.SetDestinationCountries(req.DestinationCountries)
	}

	now := time.Now()
	client.UpdateAt = &now

	if err := config.DB.Save(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update client"})
		return
	}

	respondWithClient(c, *client)
}

// UpdateClientCaseStatus changes the case status of a client file.
func UpdateClientCaseStatus(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req struct {
		CaseStatus string `json:"case_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !models.ValidCaseStatus(req.CaseStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid case status"})
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	now := time.Now()
	client.CaseStatus = req.CaseStatus
	client.UpdateAt = &now

	if err := config.DB.Save(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update case status"})
		return
	}

	if client.UserID != nil {
		uid := uint(*client.UserID)
		cid := uint(client.ClientID)
		services.CreateNotification(uid, "Case status updated",
			"Your case status is now: "+req.CaseStatus, "info", &cid)
	}

	respondWithClient(c, *client)
}

// DeleteClient soft-deletes a client file. Super admin only (enforced at the
// route group).
func DeleteClient(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	now := time.Now()
	client.DeleteAt = &now
	client.UpdateAt = &now

	if err := config.DB.Save(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Client deleted"})
}
