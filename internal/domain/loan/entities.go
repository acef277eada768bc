package loan

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
	StatusClosed    Status = "CLOSED"
)

// ActiveStatuses are the states that count against the one-active-loan rule.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusDisbursed}
}

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID string `gorm:"column:user_id;type:char(32);not null;index:idx_loans_user_status" json:"user_id"`

	// Origination numbers are immutable once the row is created.
	PrincipalCOP         float64 `gorm:"column:principal_cop;type:decimal(18,2);not null" json:"principal_cop"`
	TermMonths           int     `gorm:"column:term_months;not null" json:"term_months"`
	InterestEAUsed       float64 `gorm:"column:interest_ea_used;type:decimal(6,4);not null" json:"interest_ea_used"`
	MonthlyRateEM        float64 `gorm:"column:monthly_rate_em;type:decimal(12,10);not null" json:"monthly_rate_em"`
	InstallmentAmountCOP float64 `gorm:"column:installment_amount_cop;type:decimal(18,2);not null" json:"installment_amount_cop"`
	TotalPayableCOP      float64 `gorm:"column:total_payable_cop;type:decimal(18,2);not null" json:"total_payable_cop"`

	Status          Status `gorm:"column:status;type:enum('PENDING','APPROVED','REJECTED','DISBURSED','CLOSED');default:'PENDING';index:idx_loans_user_status" json:"status"`
	RejectionReason string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	// Lifecycle timestamps, each set at most once.
	ApprovedBy  string     `gorm:"column:approved_by;type:char(32)" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DisbursedAt *time.Time `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	ClosedAt    *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
