package models

import "time"

// Stage statuses.
const (
	StageNotStarted    = "not_started"
	StageInProgress    = "in_progress"
	StagePendingReview = "pending_review"
	StageCompleted     = "completed"
)

// StageCount is the fixed number of stages in a client file.
const StageCount = 6

// StageDefinition is one entry of the fixed stage catalog.
type StageDefinition struct {
	Number            int
	Name              string
	RequiredDocuments []string
}

// StageCatalog is the fixed, ordered case-progression checklist. It is not a
// table: stage count and names do not vary per client.
var StageCatalog = [StageCount]StageDefinition{
	{Number: 1, Name: "Registration & account creation"},
	{Number: 2, Name: "Confirmation of information & professional profile creation", RequiredDocuments: []string{"CV", "cover letter"}},
	{Number: 3, Name: "Upload of professional profile", RequiredDocuments: []string{"portfolio", "certificates"}},
	{Number: 4, Name: "Certificate/diploma equivalence", RequiredDocuments: []string{"diplomas", "transcripts"}},
	{Number: 5, Name: "Smart matching against company requirements"},
	{Number: 6, Name: "Submission to companies"},
}

// ClientStage is one checklist row for a client. Exactly one row exists per
// (client_id, stage_number) once the file has been read.
type ClientStage struct {
	StageID           int        `gorm:"primaryKey;column:stage_id" json:"stage_id"`
	ClientID          int        `gorm:"column:client_id" json:"client_id"`
	StageNumber       int        `gorm:"column:stage_number" json:"stage_number"`
	StageName         string     `gorm:"column:stage_name" json:"stage_name"`
	Status            string     `gorm:"column:status" json:"status"`
	RequiredDocuments *string    `gorm:"column:required_documents" json:"-"`
	Notes             *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (ClientStage) TableName() string {
	return "client_stages"
}

// ValidStageStatus reports whether status is an allowed stage status.
func ValidStageStatus(status string) bool {
	switch status {
	case StageNotStarted, StageInProgress, StagePendingReview, StageCompleted:
		return true
	}
	return false
}

// RequiredDocumentList decodes the JSON-encoded document label column.
func (s *ClientStage) RequiredDocumentList() []string {
	return decodeStringList(s.RequiredDocuments)
}

// SetRequiredDocuments encodes labels into the JSON column.
func (s *ClientStage) SetRequiredDocuments(labels []string) {
	s.RequiredDocuments = encodeStringList(labels)
}
