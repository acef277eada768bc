package loanmock

import (
	"context"

	domain "cupo-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Loan) error
	SaveFn                  func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn           func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn  func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetActiveLoanByUserIDFn func(ctx context.Context, userID string) (*domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled // or errors.New("not implemented")
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveLoanByUserID(ctx context.Context, userID string) (*domain.Loan, error) {
	if m.GetActiveLoanByUserIDFn != nil {
		return m.GetActiveLoanByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}
