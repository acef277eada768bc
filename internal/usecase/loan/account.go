package loan

import (
	"context"
	"errors"

	domainAccount "cupo-backend/internal/domain/account"
	"cupo-backend/internal/domain/audit"
	domainLoan "cupo-backend/internal/domain/loan"
	"cupo-backend/internal/domain/uow"
	"cupo-backend/pkg/id"

	"gorm.io/gorm"
)

// UpsertDisbursementAccount registers or replaces the payout destination for
// an APPROVED loan. Any change drops verification back to false.
func (u *Usecase) UpsertDisbursementAccount(ctx context.Context, in UpsertAccountInput) (*AccountDTO, error) {
	var dto *AccountDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.UserID != in.UserID {
			return domainLoan.ErrForbidden
		}
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidState
		}
		if l.DisbursedAt != nil {
			return domainLoan.ErrAccountAfterPayout
		}

		acc, err := r.Accounts.GetByLoanIDForUpdate(ctx, l.ID)
		switch {
		case err == nil:
			// replace in place, verification resets
		case errors.Is(err, gorm.ErrRecordNotFound):
			acc = &domainAccount.DisbursementAccount{
				AccountID: id.NewID32(),
				LoanID:    l.ID,
				UserID:    in.UserID,
			}
		default:
			return err
		}

		acc.BankName = in.BankName
		acc.AccountType = domainAccount.AccountType(in.AccountType)
		acc.AccountNumber = in.AccountNumber
		acc.AccountHolderName = in.AccountHolderName
		acc.AccountHolderDocument = in.AccountHolderDocument
		acc.IsVerified = false

		if acc.ID == 0 {
			if err := r.Accounts.Create(ctx, acc); err != nil {
				return err
			}
		} else if err := r.Accounts.Save(ctx, acc); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    in.UserID,
			Action:     "DISBURSEMENT_ACCOUNT_UPSERTED",
			EntityType: "loan_disbursement_account",
			EntityID:   acc.AccountID,
			After:      audit.Snapshot(acc),
		}); err != nil {
			return err
		}

		dto = toAccountDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// VerifyDisbursementAccount marks the payout account verified. Re-verifying
// an already-verified account succeeds without mutation.
func (u *Usecase) VerifyDisbursementAccount(ctx context.Context, loanID, actorID string) (*AccountDTO, error) {
	var dto *AccountDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidState
		}
		if l.DisbursedAt != nil {
			return domainLoan.ErrAccountAfterPayout
		}

		acc, err := r.Accounts.GetByLoanIDForUpdate(ctx, l.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNoAccount
			}
			return err
		}
		if acc.IsVerified {
			dto = toAccountDTO(acc) // idempotent
			return nil
		}

		before := audit.Snapshot(acc)
		acc.IsVerified = true
		if err := r.Accounts.Save(ctx, acc); err != nil {
			return err
		}
		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    actorID,
			Action:     "DISBURSEMENT_ACCOUNT_VERIFIED",
			EntityType: "loan_disbursement_account",
			EntityID:   acc.AccountID,
			Before:     before,
			After:      audit.Snapshot(acc),
		}); err != nil {
			return err
		}
		dto = toAccountDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toAccountDTO(a *domainAccount.DisbursementAccount) *AccountDTO {
	return &AccountDTO{
		AccountID:             a.AccountID,
		BankName:              a.BankName,
		AccountType:           string(a.AccountType),
		AccountNumber:         a.AccountNumber,
		AccountHolderName:     a.AccountHolderName,
		AccountHolderDocument: a.AccountHolderDocument,
		IsVerified:            a.IsVerified,
		CreatedAt:             a.CreatedAt,
	}
}
