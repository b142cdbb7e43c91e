package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"relocation-api/models"
)

var basicAmount = decimal.NewFromInt(25000)

func TestPlanPaidOnEmptyLedgerInsertsFullAmount(t *testing.T) {
	plan, err := planPaymentTransition(PaymentTargetPaid, nil, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.inserts) != 1 || len(plan.rewrites) != 0 || plan.deleteAll {
		t.Fatalf("expected exactly one insert, got %+v", plan)
	}
	row := plan.inserts[0]
	if !row.Amount.Equal(basicAmount) || row.Status != models.PaymentStatusVerified || row.PaymentMethod != models.PaymentMethodManual {
		t.Fatalf("unexpected insert row: %+v", row)
	}
}

func TestPlanPaidTwiceDoesNotDoubleInsert(t *testing.T) {
	first, err := planPaymentTransition(PaymentTargetPaid, nil, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Apply the first plan in memory: the ledger now holds one verified row.
	ledger := first.inserts

	second, err := planPaymentTransition(PaymentTargetPaid, ledger, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(second.inserts) != 0 {
		t.Fatalf("second paid must not insert, got %d inserts", len(second.inserts))
	}
	if len(second.rewrites) != 1 || second.rewrites[0].to != models.PaymentStatusVerified || !second.rewrites[0].stampVerifier {
		t.Fatalf("expected pending/failed rewrite to verified, got %+v", second.rewrites)
	}
}

func TestPlanPendingBranches(t *testing.T) {
	empty, err := planPaymentTransition(PaymentTargetPending, nil, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty.inserts) != 1 || empty.inserts[0].PaymentMethod != models.PaymentMethodPending {
		t.Fatalf("empty ledger should get one pending row, got %+v", empty)
	}

	ledger := []models.Payment{{Status: models.PaymentStatusVerified, Amount: basicAmount}}
	existing, err := planPaymentTransition(PaymentTargetPending, ledger, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(existing.inserts) != 0 || len(existing.rewrites) != 1 || existing.rewrites[0].to != models.PaymentStatusPending {
		t.Fatalf("existing ledger should rewrite to pending, got %+v", existing)
	}
}

func TestPlanUnpaidDeletesEverything(t *testing.T) {
	ledger := []models.Payment{
		{Status: models.PaymentStatusVerified, Amount: basicAmount},
		{Status: models.PaymentStatusPending, Amount: basicAmount},
	}

	plan, err := planPaymentTransition(PaymentTargetUnpaid, ledger, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.deleteAll || len(plan.inserts) != 0 || len(plan.rewrites) != 0 {
		t.Fatalf("unpaid must only delete, got %+v", plan)
	}

	// Idempotent reset: reconciling the post-plan ledger yields unpaid.
	if got := Reconcile(nil).PaymentStatus; got != PaymentDerivedUnpaid {
		t.Fatalf("expected unpaid after reset, got %s", got)
	}
}

func TestPlanPartiallyPaidInsertsMissingHalves(t *testing.T) {
	plan, err := planPaymentTransition(PaymentTargetPartiallyPaid, nil, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.inserts) != 2 {
		t.Fatalf("expected two inserts on empty ledger, got %d", len(plan.inserts))
	}

	half := decimal.NewFromInt(12500)
	if plan.inserts[0].Status != models.PaymentStatusVerified || !plan.inserts[0].Amount.Equal(half) {
		t.Fatalf("unexpected verified half: %+v", plan.inserts[0])
	}
	if plan.inserts[1].Status != models.PaymentStatusPending || !plan.inserts[1].Amount.Equal(half) {
		t.Fatalf("unexpected pending half: %+v", plan.inserts[1])
	}

	// A ledger already satisfying one side only gets the other half.
	ledger := []models.Payment{{Status: models.PaymentStatusVerified, Amount: half}}
	plan, err = planPaymentTransition(PaymentTargetPartiallyPaid, ledger, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.inserts) != 1 || plan.inserts[0].Status != models.PaymentStatusPending {
		t.Fatalf("expected only the pending half, got %+v", plan.inserts)
	}

	// Both sides satisfied: nothing to do.
	ledger = append(ledger, models.Payment{Status: models.PaymentStatusPending, Amount: half})
	plan, err = planPaymentTransition(PaymentTargetPartiallyPaid, ledger, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.inserts) != 0 {
		t.Fatalf("satisfied ledger must be untouched, got %+v", plan.inserts)
	}
}

func TestPlanFailedMarksEveryRow(t *testing.T) {
	plan, err := planPaymentTransition(PaymentTargetFailed, []models.Payment{{Status: models.PaymentStatusVerified}}, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.rewrites) != 1 || plan.rewrites[0].to != models.PaymentStatusFailed || len(plan.rewrites[0].from) != 0 {
		t.Fatalf("failed must rewrite all rows, got %+v", plan.rewrites)
	}
}

func TestPlanRefundedAppendsNegativeRow(t *testing.T) {
	plan, err := planPaymentTransition(PaymentTargetRefunded, []models.Payment{{Status: models.PaymentStatusVerified, Amount: basicAmount}}, basicAmount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.inserts) != 1 {
		t.Fatalf("expected one insert, got %d", len(plan.inserts))
	}
	row := plan.inserts[0]
	if !row.Amount.Equal(basicAmount.Neg()) || row.Status != models.PaymentStatusVerified || row.PaymentMethod != models.PaymentMethodRefund {
		t.Fatalf("unexpected refund row: %+v", row)
	}
}

func TestPlanRejectsUnknownTarget(t *testing.T) {
	_, err := planPaymentTransition("definitely-not-a-status", nil, basicAmount)
	if !errors.Is(err, ErrInvalidPaymentTarget) {
		t.Fatalf("expected ErrInvalidPaymentTarget, got %v", err)
	}
}

func TestApplyPaymentStatusRejectsTargetBeforeTouchingDB(t *testing.T) {
	db, mock := newMockGormDB(t)

	err := ApplyPaymentStatus(db, 1, models.OfferBasic, "bogus", 42)
	require.ErrorIs(t, err, ErrInvalidPaymentTarget)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentStatusPartiallyPaidRunsInOneTransaction(t *testing.T) {
	db, mock := newMockGormDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE client_id = \\?").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "client_id", "status", "amount"}))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := ApplyPaymentStatus(db, 7, models.OfferBasic, PaymentTargetPartiallyPaid, 42)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentStatusUnpaidDeletesLedger(t *testing.T) {
	db, mock := newMockGormDB(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE client_id = \\?").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "client_id", "status", "amount", "create_at"}).
			AddRow(1, 7, models.PaymentStatusVerified, "25000", now))
	mock.ExpectExec("DELETE FROM `payments` WHERE client_id = \\?").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ApplyPaymentStatus(db, 7, models.OfferBasic, PaymentTargetUnpaid, 42)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentStatusRollsBackOnFailure(t *testing.T) {
	db, mock := newMockGormDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE client_id = \\?").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "client_id", "status", "amount"}))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := ApplyPaymentStatus(db, 7, models.OfferBasic, PaymentTargetPartiallyPaid, 42)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
