package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate takes an exclusive row lock for the duration of
	// the surrounding transaction. Every mutating flow goes through this.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetByIDForUpdate is the numeric-FK variant used by settlement, which
	// reaches the loan through the payment row.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// GetActiveLoanByUserID returns the user's loan in PENDING/APPROVED/
	// DISBURSED, if any (one-active-loan rule).
	GetActiveLoanByUserID(ctx context.Context, userID string) (*Loan, error)
}

// EligibilitySnapshot is what the loan application consumes from the credit
// collaborator. The engine does not compute identity policy itself.
type EligibilitySnapshot struct {
	KYCApproved      bool
	RiskTier         string
	Suspended        bool
	SuspensionReason string
	CurrentLimitCOP  float64
	MaxLimitCOP      float64
}

// EligibilitySource resolves the snapshot for a user.
type EligibilitySource interface {
	EligibilityFor(ctx context.Context, userID string) (*EligibilitySnapshot, error)
}
