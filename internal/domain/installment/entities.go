package installment

import (
	"time"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Installment is one scheduled repayment unit of a loan. Rows are created in
// bulk exactly once, at disbursement, and mutated only by the settlement
// engine. amount_paid_cop never exceeds amount_due_cop and never decreases.
type Installment struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	InstallmentID string `gorm:"column:installment_id;type:char(32);not null;uniqueIndex:ux_installments_installment_id" json:"installment_id"`
	LoanID        uint64 `gorm:"column:loan_id;not null;uniqueIndex:ux_installments_loan_number,priority:1" json:"-"`
	Number        int    `gorm:"column:installment_number;not null;uniqueIndex:ux_installments_loan_number,priority:2" json:"installment_number"`

	DueDate      time.Time `gorm:"column:due_date;type:date;not null" json:"due_date"`
	AmountDueCOP float64   `gorm:"column:amount_due_cop;type:decimal(18,2);not null" json:"amount_due_cop"`
	AmountPaidCOP float64  `gorm:"column:amount_paid_cop;type:decimal(18,2);not null;default:0" json:"amount_paid_cop"`

	Status   Status     `gorm:"column:status;type:enum('PENDING','PAID');default:'PENDING'" json:"status"`
	PaidAt   *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	DaysLate int        `gorm:"column:days_late;not null;default:0" json:"days_late"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Installment) TableName() string { return "loan_installments" }

// Outstanding is the amount still owed on this installment.
func (i *Installment) Outstanding() float64 {
	if p := i.AmountDueCOP - i.AmountPaidCOP; p > 0 {
		return p
	}
	return 0
}
