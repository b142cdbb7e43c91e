package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
	"relocation-api/utils"
)

// RegisterRequest is the public signup form.
type RegisterRequest struct {
	FirstName            string   `json:"first_name" binding:"required"`
	LastName             string   `json:"last_name" binding:"required"`
	Email                string   `json:"email" binding:"required,email"`
	Phone                *string  `json:"phone"`
	Diploma              *string  `json:"diploma"`
	SelectedOffer        string   `json:"selected_offer" binding:"required"`
	DestinationCountries []string `json:"destination_countries"`
	PaymentMethod        string   `json:"payment_method" binding:"required"`
	Password             string   `json:"password" binding:"required,min=8"`
}

// Register creates a pending registration awaiting staff review.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.ValidOffer(req.SelectedOffer) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid offer"})
		return
	}
	if req.PaymentMethod != models.PaymentMethodCIB && req.PaymentMethod != models.PaymentMethodBaridiMob {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment method must be cib or baridimob"})
		return
	}
	if req.Phone != nil && !utils.ValidatePhone(*req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid phone number"})
		return
	}

	email := strings.ToLower(utils.SanitizeInput(req.Email))

	// One live account / pending signup per email.
	var count int64
	if err := config.DB.Model(&models.User{}).
		Where("email = ? AND delete_at IS NULL", email).
		Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "An account with this email already exists"})
		return
	}
	if err := config.DB.Model(&models.PendingRegistration{}).
		Where("email = ? AND status = ?", email, models.RegistrationPending).
		Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "A registration for this email is already under review"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process registration"})
		return
	}

	now := time.Now()
	registration := models.PendingRegistration{
		FirstName:     utils.SanitizeInput(req.FirstName),
		LastName:      utils.SanitizeInput(req.LastName),
		Email:         email,
		Phone:         req.Phone,
		Diploma:       req.Diploma,
		SelectedOffer: req.SelectedOffer,
		PaymentMethod: req.PaymentMethod,
		Password:      hashed,
		Status:        models.RegistrationPending,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	registration.SetDestinationCountries(req.DestinationCountries)

	if err := config.DB.Create(&registration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Registration received. You will be contacted once it is reviewed.",
		"registration": registration,
	})
}

// GetRegistrations lists signups, newest first. ?status= filters.
func GetRegistrations(c *gin.Context) {
	query := config.DB.Model(&models.PendingRegistration{})

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var registrations []models.PendingRegistration
	if err := query.Order("create_at DESC").Find(&registrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "registrations": registrations})
}

func loadPendingRegistration(c *gin.Context) (*models.PendingRegistration, bool) {
	regID, err := strconv.Atoi(c.Param("id"))
	if err != nil || regID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid registration id"})
		return nil, false
	}

	var registration models.PendingRegistration
	if err := config.DB.Where("registration_id = ?", regID).First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Registration not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch registration"})
		}
		return nil, false
	}
	if registration.Status != models.RegistrationPending {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Registration already reviewed"})
		return nil, false
	}
	return &registration, true
}

// ApproveRegistration turns a pending signup into a user account, a client
// file and the initial pending payment, all in one transaction.
func ApproveRegistration(c *gin.Context) {
	registration, ok := loadPendingRegistration(c)
	if !ok {
		return
	}

	adminID, _ := currentUserID(c)
	now := time.Now()

	var client models.Client
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FirstName: registration.FirstName,
			LastName:  registration.LastName,
			Email:     registration.Email,
			Phone:     registration.Phone,
			Password:  registration.Password,
			RoleID:    models.RoleClient,
			CreateAt:  &now,
			UpdateAt:  &now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		client = models.Client{
			UserID:               &user.UserID,
			FirstName:            registration.FirstName,
			LastName:             registration.LastName,
			Email:                registration.Email,
			Phone:                registration.Phone,
			Diploma:              registration.Diploma,
			SelectedOffer:        registration.SelectedOffer,
			DestinationCountries: registration.DestinationCountries,
			CaseStatus:           models.CaseStatusPending,
			CreateAt:             &now,
			UpdateAt:             &now,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		payment := models.Payment{
			ClientID:      client.ClientID,
			PaymentType:   models.PaymentTypeInitial,
			PaymentMethod: registration.PaymentMethod,
			Amount:        config.OfferAmount(registration.SelectedOffer),
			Status:        models.PaymentStatusPending,
			Reference:     uuid.New().String(),
			CreateAt:      now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		registration.Status = models.RegistrationApproved
		registration.ReviewedBy = &adminID
		registration.ReviewedAt = &now
		registration.UpdateAt = &now
		return tx.Save(registration).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to approve registration"})
		return
	}

	services.SendClientEmail(client.Email, "Your registration has been approved",
		"Welcome! Your account is active and your case file has been opened. "+
			"Log in to upload your documents and settle the initial payment.")

	respondWithClient(c, client)
}

// RejectRegistration closes a pending signup with an optional note.
func RejectRegistration(c *gin.Context) {
	registration, ok := loadPendingRegistration(c)
	if !ok {
		return
	}

	var req struct {
		Note *string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	adminID, _ := currentUserID(c)
	now := time.Now()

	registration.Status = models.RegistrationRejected
	registration.AdminNote = req.Note
	registration.ReviewedBy = &adminID
	registration.ReviewedAt = &now
	registration.UpdateAt = &now

	if err := config.DB.Save(registration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to reject registration"})
		return
	}

	services.SendClientEmail(registration.Email, "About your registration",
		"We are sorry, your registration could not be accepted at this time.")

	c.JSON(http.StatusOK, gin.H{"success": true, "registration": registration})
}

// GetOffers returns the offer catalog with effective prices.
func GetOffers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "offers": config.OfferCatalog()})
}
