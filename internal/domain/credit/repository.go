package credit

import (
	"context"

	"cupo-backend/pkg/apperr"
)

var ErrNotFound = apperr.New(apperr.KindNotFound, "NOT_FOUND", "credit profile not found")

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Save(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetByUserIDForUpdate locks the profile row so two concurrent loan
	// closures cannot both re-score the same user.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Profile, error)
}
