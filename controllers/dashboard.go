package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
)

// GetDashboardStats aggregates headline numbers for the admin dashboard:
// case-status counts, derived payment-status distribution and verified
// revenue. Payment numbers are reconciled per client, never read from a
// stored status.
func GetDashboardStats(c *gin.Context) {
	type statusCount struct {
		CaseStatus string `gorm:"column:case_status"`
		Count      int64  `gorm:"column:count"`
	}

	var caseCounts []statusCount
	if err := config.DB.Model(&models.Client{}).
		Select("case_status, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("case_status").
		Scan(&caseCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to aggregate case statuses"})
		return
	}

	byCaseStatus := make(map[string]int64, len(caseCounts))
	var totalClients int64
	for _, row := range caseCounts {
		byCaseStatus[row.CaseStatus] = row.Count
		totalClients += row.Count
	}

	var clients []models.Client
	if err := config.DB.Where("delete_at IS NULL").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch clients"})
		return
	}

	var payments []models.Payment
	if err := config.DB.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payments"})
		return
	}

	ledgers := make(map[int][]models.Payment, len(clients))
	for _, payment := range payments {
		ledgers[payment.ClientID] = append(ledgers[payment.ClientID], payment)
	}

	byPaymentStatus := map[string]int64{
		services.PaymentDerivedUnpaid:        0,
		services.PaymentDerivedPending:       0,
		services.PaymentDerivedPaid:          0,
		services.PaymentDerivedPartiallyPaid: 0,
	}
	revenue := decimal.Zero
	for _, client := range clients {
		summary := services.Reconcile(ledgers[client.ClientID])
		byPaymentStatus[summary.PaymentStatus]++
		revenue = revenue.Add(summary.PaidAmount)
	}

	var pendingRegistrations int64
	if err := config.DB.Model(&models.PendingRegistration{}).
		Where("status = ?", models.RegistrationPending).
		Count(&pendingRegistrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_clients":         totalClients,
			"by_case_status":        byCaseStatus,
			"by_payment_status":     byPaymentStatus,
			"verified_revenue":      revenue,
			"pending_registrations": pendingRegistrations,
		},
	})
}
