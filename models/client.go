package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Service offers a client can subscribe to.
const (
	OfferBasic   = "basic"
	OfferPremium = "premium"
	OfferGold    = "gold"
)

// Case statuses for a client file.
const (
	CaseStatusPending    = "pending"
	CaseStatusProcessing = "processing"
	CaseStatusApproved   = "approved"
	CaseStatusRejected   = "rejected"
	CaseStatusCompleted  = "completed"
)

type Client struct {
	ClientID             int        `gorm:"primaryKey;column:client_id" json:"client_id"`
	UserID               *int       `gorm:"column:user_id" json:"user_id,omitempty"`
	FirstName            string     `gorm:"column:first_name" json:"first_name"`
	LastName             string     `gorm:"column:last_name" json:"last_name"`
	Email                string     `gorm:"column:email" json:"email"`
	Phone                *string    `gorm:"column:phone" json:"phone,omitempty"`
	Address              *string    `gorm:"column:address" json:"address,omitempty"`
	Diploma              *string    `gorm:"column:diploma" json:"diploma,omitempty"`
	SelectedOffer        string     `gorm:"column:selected_offer" json:"selected_offer"`
	DestinationCountries *string    `gorm:"column:destination_countries" json:"-"`
	CaseStatus           string     `gorm:"column:case_status" json:"case_status"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt             *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User      *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Payments  []Payment        `gorm:"foreignKey:ClientID" json:"payments,omitempty"`
	Stages    []ClientStage    `gorm:"foreignKey:ClientID" json:"stages,omitempty"`
	Documents []ClientDocument `gorm:"foreignKey:ClientID" json:"documents,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

// ValidOffer reports whether offer is one of the catalog offers.
func ValidOffer(offer string) bool {
	switch offer {
	case OfferBasic, OfferPremium, OfferGold:
		return true
	}
	return false
}

// ValidCaseStatus reports whether status is an allowed case status.
func ValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusPending, CaseStatusProcessing, CaseStatusApproved, CaseStatusRejected, CaseStatusCompleted:
		return true
	}
	return false
}

// DestinationCountryList decodes the JSON-encoded country column.
// Malformed or empty values decode to an empty list.
func (c *Client) DestinationCountryList() []string {
	return decodeStringList(c.DestinationCountries)
}

// SetDestinationCountries encodes countries into the JSON column.
func (c *Client) SetDestinationCountries(countries []string) {
	c.DestinationCountries = encodeStringList(countries)
}

func decodeStringList(raw *string) []string {
	if raw == nil {
		return []string{}
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return []string{}
	}

	cleaned := make([]string, 0, len(list))
	for _, item := range list {
		if s := strings.TrimSpace(item); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

func encodeStringList(list []string) *string {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	encoded := string(raw)
	return &encoded
}
