package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"relocation-api/config"
	"relocation-api/models"
)

func currentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// clientIDParam parses the :id path parameter.
func clientIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid client id"})
		return 0, false
	}
	return id, true
}

// loadClient fetches a live client row or writes the 404/500 response.
func loadClient(c *gin.Context, clientID int) (*models.Client, bool) {
	var client models.Client
	err := config.DB.Where("client_id = ? AND delete_at IS NULL", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch client"})
		}
		return nil, false
	}
	return &client, true
}

// clientForUser resolves the client file owned by the authenticated user.
func clientForUser(c *gin.Context) (*models.Client, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return nil, false
	}

	var client models.Client
	err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No client file for this account"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch client file"})
		}
		return nil, false
	}
	return &client, true
}
