package mysql

import (
	"context"

	instDomain "cupo-backend/internal/domain/installment"

	"gorm.io/gorm"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, rows []*instDomain.Installment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *InstallmentRepository) Save(ctx context.Context, i *instDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InstallmentRepository) GetByInstallmentID(ctx context.Context, installmentID string) (*instDomain.Installment, error) {
	var out instDomain.Installment
	res := r.db.WithContext(ctx).Where("installment_id = ?", installmentID).First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*instDomain.Installment, error) {
	var out []*instDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&out)
	return out, res.Error
}

// ListByLoanIDForUpdate locks the whole set in ascending number order, the
// defense-in-depth requirement behind the loan-level lock.
func (r *InstallmentRepository) ListByLoanIDForUpdate(ctx context.Context, loanID uint64) ([]*instDomain.Installment, error) {
	var out []*instDomain.Installment
	res := forUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&instDomain.Installment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}
