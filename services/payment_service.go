package services

import (
	"github.com/shopspring/decimal"

	"relocation-api/models"
)

// Derived client-level payment statuses. These never hit a column; they are
// recomputed from the ledger on every read.
const (
	PaymentDerivedUnpaid        = "unpaid"
	PaymentDerivedPending       = "pending"
	PaymentDerivedPaid          = "paid"
	PaymentDerivedPartiallyPaid = "partially_paid"
)

// PaymentSummary is the reconciled projection attached to client responses.
type PaymentSummary struct {
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   *string         `json:"payment_method"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// Reconcile derives the client-level payment status from the full ledger.
// Pure function: same ledger in, same summary out, nothing persisted.
func Reconcile(payments []models.Payment) PaymentSummary {
	totalPaid := decimal.Zero
	totalPending := decimal.Zero

	for i := range payments {
		p := &payments[i]
		switch {
		case p.CountsAsPaid():
			totalPaid = totalPaid.Add(p.Amount)
		case p.Status == models.PaymentStatusPending:
			totalPending = totalPending.Add(p.Amount)
		}
	}

	// Decision order matters: a ledger with both paid and pending amounts is
	// partially paid, not pending.
	status := PaymentDerivedUnpaid
	switch {
	case totalPaid.IsPositive() && totalPending.IsZero():
		status = PaymentDerivedPaid
	case totalPaid.IsPositive() && totalPending.IsPositive():
		status = PaymentDerivedPartiallyPaid
	case totalPending.IsPositive():
		status = PaymentDerivedPending
	}

	return PaymentSummary{
		PaymentStatus:   status,
		PaymentMethod:   latestPaymentMethod(payments),
		TotalAmount:     totalPaid.Add(totalPending),
		PaidAmount:      totalPaid,
		RemainingAmount: totalPending,
	}
}

// latestPaymentMethod returns the method of the most recently created row,
// or nil for an empty ledger. Equal timestamps fall back to the higher id.
func latestPaymentMethod(payments []models.Payment) *string {
	var latest *models.Payment
	for i := range payments {
		p := &payments[i]
		if latest == nil ||
			p.CreateAt.After(latest.CreateAt) ||
			(p.CreateAt.Equal(latest.CreateAt) && p.PaymentID > latest.PaymentID) {
			latest = p
		}
	}
	if latest == nil {
		return nil
	}
	method := latest.PaymentMethod
	return &method
}
