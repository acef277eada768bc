package credit

import (
	"context"
	"errors"
	"time"

	"cupo-backend/internal/domain/audit"
	domainCredit "cupo-backend/internal/domain/credit"
	"cupo-backend/internal/domain/uow"
	"cupo-backend/pkg/apperr"

	"gorm.io/gorm"
)

type Usecase struct {
	profiles domainCredit.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(profiles domainCredit.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{profiles: profiles, uow: tx}
}

type ProfileDTO struct {
	UserID           string     `json:"user_id"`
	KYCStatus        string     `json:"kyc_status"`
	RiskTier         string     `json:"risk_tier"`
	Score            int        `json:"score"`
	CurrentLimitCOP  float64    `json:"current_limit_cop"`
	MaxLimitCOP      float64    `json:"max_limit_cop"`
	IsSuspended      bool       `json:"is_suspended"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
	LoansRepaid      int        `json:"loans_repaid"`
	OnTimeLoans      int        `json:"on_time_loans"`
	LateLoans        int        `json:"late_loans"`
	LastRepaidAt     *time.Time `json:"last_repaid_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AdminUpdateInput is a partial update; nil fields keep their value.
type AdminUpdateInput struct {
	UserID           string
	ActorID          string
	CurrentLimitCOP  *float64
	MaxLimitCOP      *float64
	RiskTier         *string
	IsSuspended      *bool
	SuspensionReason *string
}

func (u *Usecase) Get(ctx context.Context, userID string) (*ProfileDTO, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCredit.ErrNotFound
		}
		return nil, err
	}
	return toProfileDTO(p), nil
}

// AdminUpdate is the administrative override path: audited separately from
// the closure-time adjuster and subject to the same current ≤ max invariant.
func (u *Usecase) AdminUpdate(ctx context.Context, in AdminUpdateInput) (*ProfileDTO, error) {
	if in.RiskTier != nil {
		switch domainCredit.RiskTier(*in.RiskTier) {
		case domainCredit.TierLow, domainCredit.TierMedium, domainCredit.TierHigh:
		default:
			return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "risk_tier must be LOW, MEDIUM or HIGH")
		}
	}

	var dto *ProfileDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Credit.GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCredit.ErrNotFound
			}
			return err
		}
		before := audit.Snapshot(p)

		if in.CurrentLimitCOP != nil {
			p.CurrentLimitCOP = *in.CurrentLimitCOP
		}
		if in.MaxLimitCOP != nil {
			p.MaxLimitCOP = *in.MaxLimitCOP
		}
		if p.CurrentLimitCOP > p.MaxLimitCOP {
			return apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "current_limit_cop cannot exceed max_limit_cop")
		}
		if in.RiskTier != nil {
			p.RiskTier = domainCredit.RiskTier(*in.RiskTier)
		}
		if in.IsSuspended != nil {
			p.IsSuspended = *in.IsSuspended
			if *in.IsSuspended {
				if in.SuspensionReason != nil {
					p.SuspensionReason = *in.SuspensionReason
				}
			} else {
				p.SuspensionReason = ""
			}
		}

		if err := r.Credit.Save(ctx, p); err != nil {
			return err
		}
		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    in.ActorID,
			Action:     "CREDIT_PROFILE_UPDATED",
			EntityType: "credit_profile",
			EntityID:   p.UserID,
			Before:     before,
			After:      audit.Snapshot(p),
		}); err != nil {
			return err
		}
		dto = toProfileDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toProfileDTO(p *domainCredit.Profile) *ProfileDTO {
	return &ProfileDTO{
		UserID:           p.UserID,
		KYCStatus:        string(p.KYCStatus),
		RiskTier:         string(p.RiskTier),
		Score:            p.Score,
		CurrentLimitCOP:  p.CurrentLimitCOP,
		MaxLimitCOP:      p.MaxLimitCOP,
		IsSuspended:      p.IsSuspended,
		SuspensionReason: p.SuspensionReason,
		LoansRepaid:      p.LoansRepaid,
		OnTimeLoans:      p.OnTimeLoans,
		LateLoans:        p.LateLoans,
		LastRepaidAt:     p.LastRepaidAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
