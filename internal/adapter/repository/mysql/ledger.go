package mysql

import (
	"context"

	ledgerDomain "cupo-backend/internal/domain/ledger"

	"gorm.io/gorm"
)

// LedgerRepository only ever inserts; the transactions table has no
// update/delete path anywhere in the codebase.
type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Create(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LedgerRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*ledgerDomain.Entry, error) {
	var out []*ledgerDomain.Entry
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
