package mysql

import (
	"context"

	accountDomain "cupo-backend/internal/domain/account"

	"gorm.io/gorm"
)

type DisbursementAccountRepository struct{ db *gorm.DB }

func NewDisbursementAccountRepository(db *gorm.DB) *DisbursementAccountRepository {
	return &DisbursementAccountRepository{db: db}
}

func (r *DisbursementAccountRepository) Create(ctx context.Context, a *accountDomain.DisbursementAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *DisbursementAccountRepository) Save(ctx context.Context, a *accountDomain.DisbursementAccount) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *DisbursementAccountRepository) GetByLoanID(ctx context.Context, loanID uint64) (*accountDomain.DisbursementAccount, error) {
	var out accountDomain.DisbursementAccount
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *DisbursementAccountRepository) GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*accountDomain.DisbursementAccount, error) {
	var out accountDomain.DisbursementAccount
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *DisbursementAccountRepository) HasVerified(ctx context.Context, loanID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&accountDomain.DisbursementAccount{}).
		Where("loan_id = ? AND is_verified = ?", loanID, true).
		Count(&n)
	return n > 0, res.Error
}
