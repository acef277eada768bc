package mysql

import (
	"context"
	"testing"

	accountDomain "cupo-backend/internal/domain/account"
	"cupo-backend/internal/testutil/testdb"
	"cupo-backend/pkg/id"
)

func makeAccount(loanID uint64, userID string) *accountDomain.DisbursementAccount {
	return &accountDomain.DisbursementAccount{
		AccountID:             id.NewID32(),
		LoanID:                loanID,
		UserID:                userID,
		BankName:              "Bancolombia",
		AccountType:           accountDomain.TypeSavings,
		AccountNumber:         "0123456789",
		AccountHolderName:     "Ana Maria Perez",
		AccountHolderDocument: "CC-1020304050",
	}
}

func TestAccountCreateAndGetByLoanID(t *testing.T) {
	db := testdb.Open(t)
	loanRepo := NewLoanRepository(db)
	repo := NewDisbursementAccountRepository(db)
	ctx := context.Background()

	l := seedLoan(t, loanRepo)
	a := makeAccount(l.ID, l.UserID)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BankName != "Bancolombia" || got.IsVerified {
		t.Fatalf("account mismatch: %+v", got)
	}

	gotLock, err := repo.GetByLoanIDForUpdate(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	if gotLock.AccountID != a.AccountID {
		t.Fatalf("lock variant mismatch: %+v", gotLock)
	}
}

func TestAccountHasVerified(t *testing.T) {
	db := testdb.Open(t)
	loanRepo := NewLoanRepository(db)
	repo := NewDisbursementAccountRepository(db)
	ctx := context.Background()

	l := seedLoan(t, loanRepo)

	// no account at all
	ok, err := repo.HasVerified(ctx, l.ID)
	if err != nil {
		t.Fatalf("HasVerified (none): %v", err)
	}
	if ok {
		t.Fatalf("HasVerified should be false with no account")
	}

	a := makeAccount(l.ID, l.UserID)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// unverified account
	ok, err = repo.HasVerified(ctx, l.ID)
	if err != nil {
		t.Fatalf("HasVerified (unverified): %v", err)
	}
	if ok {
		t.Fatalf("HasVerified should be false before verification")
	}

	a.IsVerified = true
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ok, err = repo.HasVerified(ctx, l.ID)
	if err != nil {
		t.Fatalf("HasVerified (verified): %v", err)
	}
	if !ok {
		t.Fatalf("HasVerified should be true after verification")
	}
}
