package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *DisbursementAccount) error
	Save(ctx context.Context, a *DisbursementAccount) error
	GetByLoanID(ctx context.Context, loanID uint64) (*DisbursementAccount, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*DisbursementAccount, error)
	// HasVerified answers the disburse precondition without loading the row.
	HasVerified(ctx context.Context, loanID uint64) (bool, error)
}
