package mysql

import (
	"context"

	auditDomain "cupo-backend/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditRepository writes audit rows through the same *gorm.DB handle it was
// built with, so rows recorded inside a transaction roll back with it.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Record(ctx context.Context, l *auditDomain.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}
