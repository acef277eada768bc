package installment

import "context"

type Repository interface {
	// CreateBatch inserts the full schedule in one shot at disbursement.
	CreateBatch(ctx context.Context, rows []*Installment) error
	Save(ctx context.Context, i *Installment) error
	GetByInstallmentID(ctx context.Context, installmentID string) (*Installment, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Installment, error)
	// ListByLoanIDForUpdate locks all of the loan's installment rows in
	// ascending number order before allocation touches them.
	ListByLoanIDForUpdate(ctx context.Context, loanID uint64) ([]*Installment, error)
	CountByLoanID(ctx context.Context, loanID uint64) (int64, error)
}
