package payment

import (
	"context"
	"errors"
	"time"

	"cupo-backend/internal/domain/audit"
	domainInst "cupo-backend/internal/domain/installment"
	domainLedger "cupo-backend/internal/domain/ledger"
	domainLoan "cupo-backend/internal/domain/loan"
	domainPayment "cupo-backend/internal/domain/payment"
	"cupo-backend/internal/domain/uow"
	creditUC "cupo-backend/internal/usecase/credit"
	"cupo-backend/pkg/apperr"
	"cupo-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans        domainLoan.Repository
	installments domainInst.Repository
	payments     domainPayment.Repository
	uow          uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, installments domainInst.Repository, payments domainPayment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, installments: installments, payments: payments, uow: tx}
}

// Submit files a borrower's claim of money sent. The claim stays SUBMITTED
// and touches no installment until an admin reviews it.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*PaymentDTO, error) {
	if in.AmountCOP <= 0 {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "amount_cop must be positive")
	}
	if in.ProofRef == "" {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "proof reference is required")
	}

	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	if l.UserID != in.UserID {
		return nil, domainLoan.ErrForbidden
	}
	if l.Status != domainLoan.StatusDisbursed {
		return nil, domainLoan.ErrInvalidState
	}

	var instNumericID *uint64
	var instPublicID string
	if in.InstallmentID != "" {
		inst, err := u.installments.GetByInstallmentID(ctx, in.InstallmentID)
		if err != nil || inst.LoanID != l.ID {
			return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "installment_id does not belong to this loan")
		}
		instNumericID = &inst.ID
		instPublicID = inst.InstallmentID
	}

	p := &domainPayment.Payment{
		PaymentID:     id.NewID32(),
		LoanID:        l.ID,
		InstallmentID: instNumericID,
		AmountCOP:     in.AmountCOP,
		ProofRef:      in.ProofRef,
		Status:        domainPayment.StatusSubmitted,
		CreatedBy:     in.UserID,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		return r.Audit.Record(ctx, &audit.Log{
			ActorID:    in.UserID,
			Action:     "PAYMENT_SUBMITTED",
			EntityType: "loan_payment",
			EntityID:   p.PaymentID,
			After:      audit.Snapshot(p),
		})
	})
	if err != nil {
		return nil, err
	}
	return toPaymentDTO(p, l.LoanID, instPublicID, false), nil
}

// Review settles a SUBMITTED payment. Rejection only flips the payment row.
// Approval runs the full settlement: ledger entry, waterfall allocation over
// the locked installments, overpayment check, and — when the last
// installment closes — loan closure plus the credit profile adjustment, all
// in one transaction that rolls back wholesale on any failure.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*PaymentDTO, error) {
	if in.Decision != DecisionApprove && in.Decision != DecisionReject {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "decision must be APPROVED or REJECTED")
	}
	if in.Decision == DecisionReject && len(in.RejectionReason) < 3 {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "rejection_reason is required when rejecting")
	}

	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainPayment.ErrNotFound
			}
			return err
		}
		// Double-review guard: the row lock serializes racers, the status
		// check fails the loser.
		if p.Status != domainPayment.StatusSubmitted {
			return domainPayment.ErrNotReviewable
		}

		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanID)
		if err != nil {
			return err
		}

		before := audit.Snapshot(p)
		now := time.Now().UTC()
		p.ReviewedBy = in.ActorID
		p.ReviewedAt = &now

		if in.Decision == DecisionReject {
			p.Status = domainPayment.StatusRejected
			p.RejectionReason = in.RejectionReason
			if err := r.Payments.Save(ctx, p); err != nil {
				return err
			}
			if err := r.Audit.Record(ctx, &audit.Log{
				ActorID:    in.ActorID,
				Action:     "PAYMENT_REJECTED",
				EntityType: "loan_payment",
				EntityID:   p.PaymentID,
				Before:     before,
				After:      audit.Snapshot(p),
			}); err != nil {
				return err
			}
			dto = toPaymentDTO(p, l.LoanID, "", false)
			return nil
		}

		p.Status = domainPayment.StatusApproved
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		if err := r.Ledger.Create(ctx, &domainLedger.Entry{
			EntryID:   id.NewID32(),
			LoanID:    l.ID,
			Type:      domainLedger.TypePayment,
			AmountCOP: p.AmountCOP,
			Reference: "PAY-" + p.PaymentID,
			CreatedBy: in.ActorID,
		}); err != nil {
			return err
		}

		insts, err := r.Installments.ListByLoanIDForUpdate(ctx, l.ID)
		if err != nil {
			return err
		}

		applied, remaining := allocate(p.AmountCOP, orderForAllocation(insts, p.InstallmentID), now)
		if remaining > overpayTolerance {
			// Refusing unattributed credit: the whole approval rolls back.
			return domainPayment.ErrOverpayment
		}
		for _, inst := range applied {
			if err := r.Installments.Save(ctx, inst); err != nil {
				return err
			}
		}

		closed := false
		if allPaid(insts) {
			closed, err = u.closeLoan(ctx, r, l, insts, in.ActorID, now)
			if err != nil {
				return err
			}
		}

		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    in.ActorID,
			Action:     "PAYMENT_APPROVED",
			EntityType: "loan_payment",
			EntityID:   p.PaymentID,
			Before:     before,
			After:      audit.Snapshot(p),
		}); err != nil {
			return err
		}

		dto = toPaymentDTO(p, l.LoanID, "", closed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// closeLoan flips the loan to CLOSED and re-scores the borrower's credit
// profile exactly once. A loan already CLOSED is left untouched so a racing
// retry cannot double-count the closure.
func (u *Usecase) closeLoan(ctx context.Context, r uow.Repos, l *domainLoan.Loan, insts []*domainInst.Installment, actorID string, now time.Time) (bool, error) {
	if l.Status == domainLoan.StatusClosed {
		return false, nil
	}
	beforeLoan := audit.Snapshot(l)

	l.Status = domainLoan.StatusClosed
	l.ClosedAt = &now
	if err := r.Loans.Save(ctx, l); err != nil {
		return false, err
	}

	stats := creditUC.ClosureStats{}
	for _, inst := range insts {
		stats.TotalDaysLate += inst.DaysLate
		if inst.DaysLate > 0 {
			stats.LateInstallments++
		}
	}

	profile, err := r.Credit.GetByUserIDForUpdate(ctx, l.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No profile on file: close the loan without re-scoring.
			return true, r.Audit.Record(ctx, &audit.Log{
				ActorID:    actorID,
				Action:     "LOAN_CLOSED",
				EntityType: "loan",
				EntityID:   l.LoanID,
				Before:     beforeLoan,
				After:      audit.Snapshot(l),
			})
		}
		return false, err
	}

	beforeProfile := audit.Snapshot(profile)
	creditUC.Adjust(profile, stats, now)
	if err := r.Credit.Save(ctx, profile); err != nil {
		return false, err
	}

	if err := r.Audit.Record(ctx, &audit.Log{
		ActorID:    actorID,
		Action:     "LOAN_CLOSED",
		EntityType: "loan",
		EntityID:   l.LoanID,
		Before:     beforeLoan,
		After:      audit.Snapshot(l),
	}); err != nil {
		return false, err
	}
	return true, r.Audit.Record(ctx, &audit.Log{
		ActorID:    actorID,
		Action:     "CREDIT_PROFILE_ADJUSTED",
		EntityType: "credit_profile",
		EntityID:   profile.UserID,
		Before:     beforeProfile,
		After:      audit.Snapshot(profile),
	})
}

func allPaid(insts []*domainInst.Installment) bool {
	if len(insts) == 0 {
		return false
	}
	for _, i := range insts {
		if i.Status != domainInst.StatusPaid {
			return false
		}
	}
	return true
}

func toPaymentDTO(p *domainPayment.Payment, loanPublicID, installmentPublicID string, closed bool) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:       p.PaymentID,
		LoanID:          loanPublicID,
		InstallmentID:   installmentPublicID,
		AmountCOP:       p.AmountCOP,
		ProofRef:        p.ProofRef,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ReviewedAt:      p.ReviewedAt,
		CreatedAt:       p.CreatedAt,
		LoanClosed:      closed,
	}
}
