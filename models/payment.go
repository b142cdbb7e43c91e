package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types.
const (
	PaymentTypeInitial = "initial"
	PaymentTypeSecond  = "second"
)

// Payment methods.
const (
	PaymentMethodCIB       = "cib"
	PaymentMethodBaridiMob = "baridimob"
	PaymentMethodManual    = "manual"
	PaymentMethodPending   = "pending"
	PaymentMethodRefund    = "refund"
)

// Payment row statuses. The client-level payment status is never stored;
// it is derived from these rows (see services.Reconcile).
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusVerified  = "verified"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is one row of a client's payment ledger. Rows are append-mostly:
// nothing deletes them except the admin "unpaid" reset, so the table has no
// soft-delete column.
type Payment struct {
	PaymentID     int             `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	ClientID      int             `gorm:"column:client_id" json:"client_id"`
	PaymentType   string          `gorm:"column:payment_type" json:"payment_type"`
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	Status        string          `gorm:"column:status" json:"status"`
	Reference     string          `gorm:"column:reference" json:"reference"`
	ReceiptURL    *string         `gorm:"column:receipt_url" json:"receipt_url,omitempty"`
	// VerifiedBy/VerifiedAt record which staff member reviewed the row and
	// when. They are stamped on rejection too, like
	// PendingRegistration.ReviewedBy, so every reviewed row names its
	// reviewer regardless of outcome.
	VerifiedBy *int       `gorm:"column:verified_by" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`

	// Relations
	Verifier *User `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ValidPaymentRowStatus reports whether status is an allowed ledger row status.
func ValidPaymentRowStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusVerified,
		PaymentStatusRejected, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// CountsAsPaid reports whether the row contributes to the paid total.
func (p *Payment) CountsAsPaid() bool {
	return p.Status == PaymentStatusVerified || p.Status == PaymentStatusCompleted
}
