package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/services"
)

// stageResponse decodes the JSON document column for API consumers.
type stageResponse struct {
	models.ClientStage
	RequiredDocuments []string `json:"required_documents"`
}

func newStageResponses(stages []models.ClientStage) []stageResponse {
	responses := make([]stageResponse, 0, len(stages))
	for _, stage := range stages {
		responses = append(responses, stageResponse{
			ClientStage:       stage,
			RequiredDocuments: stage.RequiredDocumentList(),
		})
	}
	return responses
}

// GetClientStages ensures the 6-row checklist exists and returns it.
func GetClientStages(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	if _, ok := loadClient(c, clientID); !ok {
		return
	}

	stages, err := services.EnsureStages(config.DB, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stages": newStageResponses(stages)})
}

// StageUpdateRequest patches one checklist row.
type StageUpdateRequest struct {
	StageNumber       int      `json:"stage_number" binding:"required"`
	Status            *string  `json:"status"`
	Notes             *string  `json:"notes"`
	RequiredDocuments []string `json:"required_documents"`
}

// UpdateClientStage updates exactly one stage row; siblings are untouched.
func UpdateClientStage(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req StageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	stage, err := services.UpdateStage(config.DB, clientID, services.StagePatch{
		StageNumber:       req.StageNumber,
		Status:            req.Status,
		Notes:             req.Notes,
		RequiredDocuments: req.RequiredDocuments,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidStageNumber) || errors.Is(err, services.ErrInvalidStageStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update stage"})
		return
	}

	if client.UserID != nil && req.Status != nil {
		uid := uint(*client.UserID)
		cid := uint(client.ClientID)
		services.CreateNotification(uid, "Case progress updated",
			"Stage \""+stage.StageName+"\" is now: "+stage.Status, "info", &cid)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stage": stageResponse{
		ClientStage:       *stage,
		RequiredDocuments: stage.RequiredDocumentList(),
	}})
}
