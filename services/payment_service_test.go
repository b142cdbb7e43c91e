package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"relocation-api/models"
)

func payment(status string, amount int64, method string, createdAt time.Time) models.Payment {
	return models.Payment{
		PaymentMethod: method,
		Amount:        decimal.NewFromInt(amount),
		Status:        status,
		CreateAt:      createdAt,
	}
}

func TestReconcileEmptyLedger(t *testing.T) {
	summary := Reconcile(nil)

	if summary.PaymentStatus != PaymentDerivedUnpaid {
		t.Fatalf("expected unpaid, got %s", summary.PaymentStatus)
	}
	if summary.PaymentMethod != nil {
		t.Fatalf("expected nil payment method, got %v", *summary.PaymentMethod)
	}
	if !summary.TotalAmount.IsZero() || !summary.PaidAmount.IsZero() || !summary.RemainingAmount.IsZero() {
		t.Fatalf("expected all-zero totals, got %+v", summary)
	}
}

func TestReconcileDecisionTable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		ledger        []models.Payment
		wantStatus    string
		wantPaid      int64
		wantRemaining int64
		wantTotal     int64
	}{
		{
			name:       "single verified payment is paid",
			ledger:     []models.Payment{payment(models.PaymentStatusVerified, 25000, models.PaymentMethodManual, now)},
			wantStatus: PaymentDerivedPaid,
			wantPaid:   25000, wantRemaining: 0, wantTotal: 25000,
		},
		{
			name:       "completed counts as paid",
			ledger:     []models.Payment{payment(models.PaymentStatusCompleted, 25000, models.PaymentMethodCIB, now)},
			wantStatus: PaymentDerivedPaid,
			wantPaid:   25000, wantRemaining: 0, wantTotal: 25000,
		},
		{
			name:       "single pending payment is pending",
			ledger:     []models.Payment{payment(models.PaymentStatusPending, 25000, models.PaymentMethodBaridiMob, now)},
			wantStatus: PaymentDerivedPending,
			wantPaid:   0, wantRemaining: 25000, wantTotal: 25000,
		},
		{
			name: "verified plus pending is partially paid",
			ledger: []models.Payment{
				payment(models.PaymentStatusVerified, 12500, models.PaymentMethodManual, now),
				payment(models.PaymentStatusPending, 12500, models.PaymentMethodManual, now.Add(time.Minute)),
			},
			wantStatus: PaymentDerivedPartiallyPaid,
			wantPaid:   12500, wantRemaining: 12500, wantTotal: 25000,
		},
		{
			name: "failed and rejected rows count nowhere",
			ledger: []models.Payment{
				payment(models.PaymentStatusFailed, 25000, models.PaymentMethodCIB, now),
				payment(models.PaymentStatusRejected, 25000, models.PaymentMethodBaridiMob, now),
			},
			wantStatus: PaymentDerivedUnpaid,
			wantPaid:   0, wantRemaining: 0, wantTotal: 0,
		},
		{
			name: "refund reduces the paid total",
			ledger: []models.Payment{
				payment(models.PaymentStatusVerified, 25000, models.PaymentMethodManual, now),
				payment(models.PaymentStatusVerified, -25000, models.PaymentMethodRefund, now.Add(time.Minute)),
			},
			wantStatus: PaymentDerivedUnpaid,
			wantPaid:   0, wantRemaining: 0, wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Reconcile(tt.ledger)

			if summary.PaymentStatus != tt.wantStatus {
				t.Fatalf("status: got %s want %s", summary.PaymentStatus, tt.wantStatus)
			}
			if !summary.PaidAmount.Equal(decimal.NewFromInt(tt.wantPaid)) {
				t.Fatalf("paid: got %s want %d", summary.PaidAmount, tt.wantPaid)
			}
			if !summary.RemainingAmount.Equal(decimal.NewFromInt(tt.wantRemaining)) {
				t.Fatalf("remaining: got %s want %d", summary.RemainingAmount, tt.wantRemaining)
			}
			if !summary.TotalAmount.Equal(decimal.NewFromInt(tt.wantTotal)) {
				t.Fatalf("total: got %s want %d", summary.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestReconcileIsPure(t *testing.T) {
	ledger := []models.Payment{
		payment(models.PaymentStatusVerified, 12500, models.PaymentMethodManual, time.Now()),
		payment(models.PaymentStatusPending, 12500, models.PaymentMethodBaridiMob, time.Now().Add(time.Hour)),
	}

	first := Reconcile(ledger)
	second := Reconcile(ledger)

	if first.PaymentStatus != second.PaymentStatus ||
		!first.PaidAmount.Equal(second.PaidAmount) ||
		!first.RemainingAmount.Equal(second.RemainingAmount) ||
		!first.TotalAmount.Equal(second.TotalAmount) {
		t.Fatalf("reconcile not stable: %+v vs %+v", first, second)
	}
	if *first.PaymentMethod != *second.PaymentMethod {
		t.Fatalf("method not stable: %s vs %s", *first.PaymentMethod, *second.PaymentMethod)
	}
}

func TestReconcileUsesLatestPaymentMethod(t *testing.T) {
	now := time.Now()
	ledger := []models.Payment{
		payment(models.PaymentStatusVerified, 12500, models.PaymentMethodManual, now),
		payment(models.PaymentStatusPending, 12500, models.PaymentMethodBaridiMob, now.Add(time.Hour)),
	}

	summary := Reconcile(ledger)
	if summary.PaymentMethod == nil || *summary.PaymentMethod != models.PaymentMethodBaridiMob {
		t.Fatalf("expected latest method baridimob, got %v", summary.PaymentMethod)
	}
}
