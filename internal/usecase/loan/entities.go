package loan

import (
	"time"
)

// ProductEA is the product's annual effective rate. MVP: single product,
// single rate; a rate table replaces this later.
const ProductEA = 0.22

const (
	MinPrincipalCOP = 100_000
	MaxPrincipalCOP = 1_000_000
)

type ApplyInput struct {
	UserID       string
	PrincipalCOP float64
	TermMonths   int
}

type LoanDTO struct {
	LoanID               string     `json:"loan_id"`
	UserID               string     `json:"user_id"`
	PrincipalCOP         float64    `json:"principal_cop"`
	TermMonths           int        `json:"term_months"`
	InterestEAUsed       float64    `json:"interest_ea_used"`
	MonthlyRateEM        float64    `json:"monthly_rate_em"`
	InstallmentAmountCOP float64    `json:"installment_amount_cop"`
	TotalPayableCOP      float64    `json:"total_payable_cop"`
	Status               string     `json:"status"`
	ApprovedAt           *time.Time `json:"approved_at,omitempty"`
	DisbursedAt          *time.Time `json:"disbursed_at,omitempty"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type InstallmentDTO struct {
	InstallmentID string     `json:"installment_id"`
	Number        int        `json:"installment_number"`
	DueDate       time.Time  `json:"due_date"`
	AmountDueCOP  float64    `json:"amount_due_cop"`
	AmountPaidCOP float64    `json:"amount_paid_cop"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	DaysLate      int        `json:"days_late"`
}

type LoanDetailDTO struct {
	Loan         LoanDTO          `json:"loan"`
	Installments []InstallmentDTO `json:"installments"`
}

type UpsertAccountInput struct {
	LoanID                string
	UserID                string
	BankName              string
	AccountType           string
	AccountNumber         string
	AccountHolderName     string
	AccountHolderDocument string
}

type AccountDTO struct {
	AccountID             string    `json:"account_id"`
	BankName              string    `json:"bank_name"`
	AccountType           string    `json:"account_type"`
	AccountNumber         string    `json:"account_number"`
	AccountHolderName     string    `json:"account_holder_name"`
	AccountHolderDocument string    `json:"account_holder_document"`
	IsVerified            bool      `json:"is_verified"`
	CreatedAt             time.Time `json:"created_at"`
}
