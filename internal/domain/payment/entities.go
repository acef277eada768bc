package payment

import (
	"time"
)

type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// Payment is a borrower-submitted claim of money sent. It transitions
// SUBMITTED → APPROVED/REJECTED exactly once, through the review usecase.
type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID    uint64 `gorm:"column:loan_id;not null;index:idx_payments_loan" json:"-"`
	// InstallmentID optionally targets one installment; allocation moves it
	// to the front of the waterfall.
	InstallmentID *uint64 `gorm:"column:installment_id" json:"-"`

	AmountCOP float64 `gorm:"column:amount_cop;type:decimal(18,2);not null" json:"amount_cop"`
	// ProofRef is opaque to the engine; the file itself lives elsewhere.
	ProofRef string `gorm:"column:proof_ref;type:text;not null" json:"proof_ref"`

	Status          Status     `gorm:"column:status;type:enum('SUBMITTED','APPROVED','REJECTED');default:'SUBMITTED'" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	ReviewedBy      string     `gorm:"column:reviewed_by;type:char(32)" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	CreatedBy string    `gorm:"column:created_by;type:char(32);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "loan_payments" }
