package mysql

import (
	"context"

	creditDomain "cupo-backend/internal/domain/credit"

	"gorm.io/gorm"
)

type CreditProfileRepository struct{ db *gorm.DB }

func NewCreditProfileRepository(db *gorm.DB) *CreditProfileRepository {
	return &CreditProfileRepository{db: db}
}

func (r *CreditProfileRepository) Create(ctx context.Context, p *creditDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CreditProfileRepository) Save(ctx context.Context, p *creditDomain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *CreditProfileRepository) GetByUserID(ctx context.Context, userID string) (*creditDomain.Profile, error) {
	var out creditDomain.Profile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *CreditProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*creditDomain.Profile, error) {
	var out creditDomain.Profile
	res := forUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}
