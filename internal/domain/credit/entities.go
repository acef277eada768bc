package credit

import (
	"time"
)

type RiskTier string

const (
	TierLow    RiskTier = "LOW"
	TierMedium RiskTier = "MEDIUM"
	TierHigh   RiskTier = "HIGH"
)

type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCApproved KYCStatus = "APPROVED"
	KYCRejected KYCStatus = "REJECTED"
)

// Score bounds and the credit limit ladder for the product.
const (
	ScoreMin = 20
	ScoreMax = 100

	LimitTier1 = 100_000
	LimitTier2 = 200_000
	LimitTier3 = 500_000
	LimitTier4 = 1_000_000
)

// Profile is the per-user financial state, independent of any single loan.
// Mutated only by the closure-time adjuster and by admin override, both
// under a row lock.
type Profile struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_credit_profiles_user" json:"user_id"`

	KYCStatus KYCStatus `gorm:"column:kyc_status;type:enum('PENDING','APPROVED','REJECTED');default:'PENDING'" json:"kyc_status"`
	RiskTier  RiskTier  `gorm:"column:risk_tier;type:enum('LOW','MEDIUM','HIGH');default:'MEDIUM'" json:"risk_tier"`

	Score           int     `gorm:"column:score;not null;default:50" json:"score"`
	CurrentLimitCOP float64 `gorm:"column:current_limit_cop;type:decimal(18,2);not null" json:"current_limit_cop"`
	MaxLimitCOP     float64 `gorm:"column:max_limit_cop;type:decimal(18,2);not null" json:"max_limit_cop"`

	IsSuspended      bool   `gorm:"column:is_suspended;not null;default:false" json:"is_suspended"`
	SuspensionReason string `gorm:"column:suspension_reason;type:text" json:"suspension_reason,omitempty"`

	LoansRepaid  int        `gorm:"column:loans_repaid;not null;default:0" json:"loans_repaid"`
	OnTimeLoans  int        `gorm:"column:on_time_loans;not null;default:0" json:"on_time_loans"`
	LateLoans    int        `gorm:"column:late_loans;not null;default:0" json:"late_loans"`
	LastRepaidAt *time.Time `gorm:"column:last_repaid_at" json:"last_repaid_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "credit_profiles" }
