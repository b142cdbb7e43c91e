package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"relocation-api/models"
)

var (
	// ErrInvalidStageNumber is returned for stage numbers outside 1..6.
	ErrInvalidStageNumber = errors.New("invalid stage number")
	// ErrInvalidStageStatus is returned for statuses outside the stage enum.
	ErrInvalidStageStatus = errors.New("invalid stage status")
)

// NewStageRows builds the fixed 6-row checklist for a client from the
// catalog, every row not_started with the default document labels.
func NewStageRows(clientID int) []models.ClientStage {
	now := time.Now()
	rows := make([]models.ClientStage, 0, models.StageCount)
	for _, def := range models.StageCatalog {
		row := models.ClientStage{
			ClientID:    clientID,
			StageNumber: def.Number,
			StageName:   def.Name,
			Status:      models.StageNotStarted,
			CreateAt:    &now,
			UpdateAt:    &now,
		}
		row.SetRequiredDocuments(def.RequiredDocuments)
		rows = append(rows, row)
	}
	return rows
}

// EnsureStages lazily initializes the checklist on first read and returns
// all rows ordered by stage number. Idempotent: an initialized client is
// read back untouched.
func EnsureStages(db *gorm.DB, clientID int) ([]models.ClientStage, error) {
	var stages []models.ClientStage
	if err := db.Where("client_id = ?", clientID).
		Order("stage_number ASC").
		Find(&stages).Error; err != nil {
		return nil, fmt.Errorf("load client stages: %w", err)
	}

	if len(stages) > 0 {
		return stages, nil
	}

	rows := NewStageRows(clientID)
	if err := db.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("initialize client stages: %w", err)
	}
	return rows, nil
}

// StagePatch is a partial update for one checklist row. Nil fields are left
// untouched.
type StagePatch struct {
	StageNumber       int
	Status            *string
	Notes             *string
	RequiredDocuments []string
}

// UpdateStage patches exactly one row of the client's checklist. There is no
// ordering constraint between stages; staff may complete them in any order.
func UpdateStage(db *gorm.DB, clientID int, patch StagePatch) (*models.ClientStage, error) {
	if patch.StageNumber < 1 || patch.StageNumber > models.StageCount {
		return nil, ErrInvalidStageNumber
	}
	if patch.Status != nil && !models.ValidStageStatus(*patch.Status) {
		return nil, ErrInvalidStageStatus
	}

	if _, err := EnsureStages(db, clientID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.RequiredDocuments != nil {
		row := models.ClientStage{}
		row.SetRequiredDocuments(patch.RequiredDocuments)
		updates["required_documents"] = row.RequiredDocuments
	}

	if err := db.Model(&models.ClientStage{}).
		Where("client_id = ? AND stage_number = ?", clientID, patch.StageNumber).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update client stage: %w", err)
	}

	var stage models.ClientStage
	if err := db.Where("client_id = ? AND stage_number = ?", clientID, patch.StageNumber).
		First(&stage).Error; err != nil {
		return nil, fmt.Errorf("reload client stage: %w", err)
	}
	return &stage, nil
}

// StageByNumber returns the row with the given number, or nil.
func StageByNumber(stages []models.ClientStage, number int) *models.ClientStage {
	for i := range stages {
		if stages[i].StageNumber == number {
			return &stages[i]
		}
	}
	return nil
}
