package payment

import (
	"time"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVED"
	DecisionReject  Decision = "REJECTED"
)

type SubmitInput struct {
	LoanID        string
	UserID        string
	AmountCOP     float64
	ProofRef      string
	InstallmentID string // optional; targets one installment in the waterfall
}

type ReviewInput struct {
	PaymentID       string
	ActorID         string
	Decision        Decision
	RejectionReason string
}

type PaymentDTO struct {
	PaymentID       string     `json:"payment_id"`
	LoanID          string     `json:"loan_id"`
	InstallmentID   string     `json:"installment_id,omitempty"`
	AmountCOP       float64    `json:"amount_cop"`
	ProofRef        string     `json:"proof_ref"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	// LoanClosed reports whether this approval settled the loan in full.
	LoanClosed bool `json:"loan_closed,omitempty"`
}
