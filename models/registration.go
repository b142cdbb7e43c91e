package models

import "time"

// Registration review statuses.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// PendingRegistration is a signup awaiting staff review. Approval turns it
// into a User (client role) plus a Client file; the row itself is kept for
// audit.
type PendingRegistration struct {
	RegistrationID       int        `gorm:"primaryKey;column:registration_id" json:"registration_id"`
	FirstName            string     `gorm:"column:first_name" json:"first_name"`
	LastName             string     `gorm:"column:last_name" json:"last_name"`
	Email                string     `gorm:"column:email" json:"email"`
	Phone                *string    `gorm:"column:phone" json:"phone,omitempty"`
	Diploma              *string    `gorm:"column:diploma" json:"diploma,omitempty"`
	SelectedOffer        string     `gorm:"column:selected_offer" json:"selected_offer"`
	DestinationCountries *string    `gorm:"column:destination_countries" json:"-"`
	PaymentMethod        string     `gorm:"column:payment_method" json:"payment_method"`
	Password             string     `gorm:"column:password" json:"-"`
	Status               string     `gorm:"column:status" json:"status"`
	AdminNote            *string    `gorm:"column:admin_note" json:"admin_note,omitempty"`
	ReviewedBy           *int       `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt           *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (PendingRegistration) TableName() string {
	return "pending_registrations"
}

// DestinationCountryList decodes the JSON-encoded country column.
func (r *PendingRegistration) DestinationCountryList() []string {
	return decodeStringList(r.DestinationCountries)
}

// SetDestinationCountries encodes countries into the JSON column.
func (r *PendingRegistration) SetDestinationCountries(countries []string) {
	r.DestinationCountries = encodeStringList(countries)
}
