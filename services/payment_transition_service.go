package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"relocation-api/config"
	"relocation-api/models"
)

// Admin-selectable payment status targets.
const (
	PaymentTargetUnpaid        = "unpaid"
	PaymentTargetPending       = "pending"
	PaymentTargetPaid          = "paid"
	PaymentTargetPartiallyPaid = "partially_paid"
	PaymentTargetFailed        = "failed"
	PaymentTargetRefunded      = "refunded"
)

// ErrInvalidPaymentTarget is returned before any mutation when the requested
// target is outside the enumerated set.
var ErrInvalidPaymentTarget = errors.New("invalid payment status target")

// ValidPaymentTarget reports whether target is an allowed transition target.
func ValidPaymentTarget(target string) bool {
	switch target {
	case PaymentTargetUnpaid, PaymentTargetPending, PaymentTargetPaid,
		PaymentTargetPartiallyPaid, PaymentTargetFailed, PaymentTargetRefunded:
		return true
	}
	return false
}

// statusRewrite sets status on the ledger rows currently holding one of the
// from statuses. An empty from list matches every row.
type statusRewrite struct {
	from          []string
	to            string
	stampVerifier bool
}

// ledgerPlan is the set of mutations a transition performs. Plans are
// computed purely from the current ledger so the branch logic stays
// testable without a database.
type ledgerPlan struct {
	deleteAll bool
	rewrites  []statusRewrite
	inserts   []models.Payment
}

// planPaymentTransition translates a target status into ledger mutations.
// The ledger, not a status column, is authoritative, so every target maps to
// row-level inserts, updates or deletes.
func planPaymentTransition(target string, ledger []models.Payment, offerAmount decimal.Decimal) (ledgerPlan, error) {
	var plan ledgerPlan

	switch target {
	case PaymentTargetPaid:
		if len(ledger) == 0 {
			plan.inserts = append(plan.inserts, newLedgerRow(offerAmount, models.PaymentMethodManual, models.PaymentStatusVerified))
			break
		}
		plan.rewrites = append(plan.rewrites, statusRewrite{
			from:          []string{models.PaymentStatusPending, models.PaymentStatusFailed},
			to:            models.PaymentStatusVerified,
			stampVerifier: true,
		})

	case PaymentTargetPending:
		if len(ledger) == 0 {
			plan.inserts = append(plan.inserts, newLedgerRow(offerAmount, models.PaymentMethodPending, models.PaymentStatusPending))
			break
		}
		plan.rewrites = append(plan.rewrites, statusRewrite{
			from: []string{models.PaymentStatusVerified, models.PaymentStatusFailed},
			to:   models.PaymentStatusPending,
		})

	case PaymentTargetUnpaid:
		plan.deleteAll = true

	case PaymentTargetPartiallyPaid:
		half := offerAmount.Div(decimal.NewFromInt(2)).Round(2)
		if !hasStatus(ledger, models.PaymentStatusVerified) {
			plan.inserts = append(plan.inserts, newLedgerRow(half, models.PaymentMethodManual, models.PaymentStatusVerified))
		}
		if !hasStatus(ledger, models.PaymentStatusPending) {
			plan.inserts = append(plan.inserts, newLedgerRow(offerAmount.Sub(half), models.PaymentMethodManual, models.PaymentStatusPending))
		}

	case PaymentTargetFailed:
		plan.rewrites = append(plan.rewrites, statusRewrite{to: models.PaymentStatusFailed})

	case PaymentTargetRefunded:
		plan.inserts = append(plan.inserts, newLedgerRow(offerAmount.Neg(), models.PaymentMethodRefund, models.PaymentStatusVerified))

	default:
		return plan, ErrInvalidPaymentTarget
	}

	return plan, nil
}

func hasStatus(ledger []models.Payment, status string) bool {
	for i := range ledger {
		if ledger[i].Status == status {
			return true
		}
	}
	return false
}

func newLedgerRow(amount decimal.Decimal, method, status string) models.Payment {
	return models.Payment{
		PaymentType:   models.PaymentTypeInitial,
		PaymentMethod: method,
		Amount:        amount,
		Status:        status,
		Reference:     uuid.New().String(),
	}
}

// ApplyPaymentStatus loads the client's ledger, plans the transition for the
// requested target and applies it inside one transaction. A failure midway
// leaves the ledger unchanged.
func ApplyPaymentStatus(db *gorm.DB, clientID int, offer, target string, adminID int) error {
	if !ValidPaymentTarget(target) {
		return ErrInvalidPaymentTarget
	}

	offerAmount := config.OfferAmount(offer)

	return db.Transaction(func(tx *gorm.DB) error {
		var ledger []models.Payment
		if err := tx.Where("client_id = ?", clientID).Find(&ledger).Error; err != nil {
			return fmt.Errorf("load payment ledger: %w", err)
		}

		plan, err := planPaymentTransition(target, ledger, offerAmount)
		if err != nil {
			return err
		}

		return applyLedgerPlan(tx, clientID, plan, adminID)
	})
}

func applyLedgerPlan(tx *gorm.DB, clientID int, plan ledgerPlan, adminID int) error {
	now := time.Now()

	if plan.deleteAll {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Payment{}).Error; err != nil {
			return fmt.Errorf("reset payment ledger: %w", err)
		}
	}

	for _, rewrite := range plan.rewrites {
		query := tx.Model(&models.Payment{}).Where("client_id = ?", clientID)
		if len(rewrite.from) > 0 {
			query = query.Where("status IN ?", rewrite.from)
		}

		updates := map[string]interface{}{"status": rewrite.to}
		if rewrite.stampVerifier {
			updates["verified_by"] = adminID
			updates["verified_at"] = now
		}

		if err := query.Updates(updates).Error; err != nil {
			return fmt.Errorf("rewrite payment statuses: %w", err)
		}
	}

	for i := range plan.inserts {
		row := plan.inserts[i]
		row.ClientID = clientID
		row.CreateAt = now
		if row.Status == models.PaymentStatusVerified {
			verifiedAt := now
			row.VerifiedBy = &adminID
			row.VerifiedAt = &verifiedAt
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert payment row: %w", err)
		}
	}

	return nil
}
