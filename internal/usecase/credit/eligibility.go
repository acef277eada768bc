package credit

import (
	"context"
	"errors"

	domainCredit "cupo-backend/internal/domain/credit"
	domainLoan "cupo-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// EligibilityAdapter exposes the credit profile as the eligibility source
// the loan application consumes. The loan engine never reads the profile
// table directly.
type EligibilityAdapter struct {
	profiles domainCredit.Repository
}

func NewEligibilityAdapter(profiles domainCredit.Repository) *EligibilityAdapter {
	return &EligibilityAdapter{profiles: profiles}
}

func (a *EligibilityAdapter) EligibilityFor(ctx context.Context, userID string) (*domainLoan.EligibilitySnapshot, error) {
	p, err := a.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCredit.ErrNotFound
		}
		return nil, err
	}
	return &domainLoan.EligibilitySnapshot{
		KYCApproved:      p.KYCStatus == domainCredit.KYCApproved,
		RiskTier:         string(p.RiskTier),
		Suspended:        p.IsSuspended,
		SuspensionReason: p.SuspensionReason,
		CurrentLimitCOP:  p.CurrentLimitCOP,
		MaxLimitCOP:      p.MaxLimitCOP,
	}, nil
}
