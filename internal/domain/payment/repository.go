package payment

import (
	"context"

	"cupo-backend/pkg/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.KindNotFound, "NOT_FOUND", "payment not found")
	ErrNotReviewable = apperr.New(apperr.KindState, "INVALID_STATE", "only SUBMITTED payments can be reviewed")
	ErrOverpayment   = apperr.New(apperr.KindOverpayment, "OVERPAYMENT", "payment exceeds the loan's remaining balance")
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Save(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	// GetByPaymentIDForUpdate locks the payment row; the double-review guard
	// depends on this.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Payment, error)
}
