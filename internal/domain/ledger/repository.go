package ledger

import "context"

// Repository is append-only: no update or delete exists anywhere.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Entry, error)
}
