package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "cupo-backend/internal/domain/loan"
	"cupo-backend/internal/testutil/testdb"
	"cupo-backend/pkg/id"

	"gorm.io/gorm"
)

func makeLoan(loanID, userID string) *domain.Loan {
	return &domain.Loan{
		LoanID:               loanID,
		UserID:               userID,
		PrincipalCOP:         100_000.00,
		TermMonths:           2,
		InterestEAUsed:       0.22,
		MonthlyRateEM:        0.0167090,
		InstallmentAmountCOP: 51_256.63,
		TotalPayableCOP:      102_513.26,
		Status:               domain.StatusPending,
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	userID := id.NewID32()

	l := makeLoan(loanID, userID)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.UserID != userID {
		t.Fatalf("GetByLoanID mismatch: %+v", got)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("status: got %s", got.Status)
	}
	if got.InstallmentAmountCOP != 51_256.63 {
		t.Fatalf("installment amount: got %v", got.InstallmentAmountCOP)
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), id.NewID32())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLoanGetByIDForUpdate(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByIDForUpdate(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if got.LoanID != l.LoanID {
		t.Fatalf("GetByIDForUpdate mismatch: %+v", got)
	}
}

func TestLoanSave_UpdatesStatus(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	l.Status = domain.StatusApproved
	l.ApprovedBy = id.NewID32()
	l.ApprovedAt = &now
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status after save: got %s", got.Status)
	}
	if got.ApprovedAt == nil {
		t.Fatalf("approved_at not persisted")
	}
}

func TestGetActiveLoanByUserID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	userID := id.NewID32()

	// terminal states never count as active
	closed := makeLoan(id.NewID32(), userID)
	closed.Status = domain.StatusClosed
	if err := repo.Create(ctx, closed); err != nil {
		t.Fatalf("Create closed: %v", err)
	}
	rejected := makeLoan(id.NewID32(), userID)
	rejected.Status = domain.StatusRejected
	if err := repo.Create(ctx, rejected); err != nil {
		t.Fatalf("Create rejected: %v", err)
	}

	if _, err := repo.GetActiveLoanByUserID(ctx, userID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("only terminal loans: want ErrRecordNotFound, got %v", err)
	}

	active := makeLoan(id.NewID32(), userID)
	active.Status = domain.StatusDisbursed
	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("Create active: %v", err)
	}

	got, err := repo.GetActiveLoanByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetActiveLoanByUserID: %v", err)
	}
	if got.LoanID != active.LoanID {
		t.Fatalf("active loan mismatch: got %s want %s", got.LoanID, active.LoanID)
	}

	// another user's active loan is invisible
	if _, err := repo.GetActiveLoanByUserID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("other user: want ErrRecordNotFound, got %v", err)
	}
}
