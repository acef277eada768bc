package uow

import (
	"context"

	"cupo-backend/internal/domain/account"
	"cupo-backend/internal/domain/audit"
	"cupo-backend/internal/domain/credit"
	"cupo-backend/internal/domain/installment"
	"cupo-backend/internal/domain/ledger"
	"cupo-backend/internal/domain/loan"
	"cupo-backend/internal/domain/payment"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Loans        loan.Repository
	Installments installment.Repository
	Payments     payment.Repository
	Ledger       ledger.Repository
	Credit       credit.Repository
	Accounts     account.Repository
	Audit        audit.Recorder
}

type UnitOfWork interface {
	// WithinTx runs fn in a single transaction; any error rolls the whole
	// thing back, including audit rows.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up-front, then runs fn. This is the
	// entry point for every per-loan mutating operation.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
