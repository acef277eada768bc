package loan

import (
	"context"
	"errors"
	"math"
	"time"

	"cupo-backend/internal/domain/audit"
	domainCredit "cupo-backend/internal/domain/credit"
	domainInst "cupo-backend/internal/domain/installment"
	domainLedger "cupo-backend/internal/domain/ledger"
	domainLoan "cupo-backend/internal/domain/loan"
	"cupo-backend/internal/domain/uow"
	"cupo-backend/pkg/apperr"
	"cupo-backend/pkg/id"
	"cupo-backend/pkg/loanmath"

	"gorm.io/gorm"
)

type Usecase struct {
	loans        domainLoan.Repository
	installments domainInst.Repository
	eligibility  domainLoan.EligibilitySource
	uow          uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, installments domainInst.Repository, elig domainLoan.EligibilitySource, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, installments: installments, eligibility: elig, uow: tx}
}

// Apply runs the eligibility gate, prices the loan and creates it PENDING.
// No installment rows exist until disbursement.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if in.UserID == "" || len(in.UserID) != 32 {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "invalid user id")
	}
	if in.PrincipalCOP < MinPrincipalCOP || in.PrincipalCOP > MaxPrincipalCOP ||
		math.Abs(in.PrincipalCOP-math.Round(in.PrincipalCOP)) > 1e-9 {
		return nil, apperr.Newf(apperr.KindValidation, "VALIDATION_ERROR",
			"principal_cop must be an integer between %d and %d", MinPrincipalCOP, MaxPrincipalCOP)
	}
	if in.TermMonths != 2 && in.TermMonths != 3 {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "term_months must be 2 or 3")
	}

	snap, err := u.eligibility.EligibilityFor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkEligibility(snap, in); err != nil {
		return nil, err
	}

	// One active loan per user.
	if _, err := u.loans.GetActiveLoanByUserID(ctx, in.UserID); err == nil {
		return nil, domainLoan.ErrActiveLoanExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	em := loanmath.MonthlyRate(ProductEA)
	installmentAmount, err := loanmath.FixedInstallment(in.PrincipalCOP, em, in.TermMonths)
	if err != nil {
		return nil, err
	}
	total := loanmath.TotalPayable(installmentAmount, in.TermMonths)

	l := &domainLoan.Loan{
		LoanID:               id.NewID32(),
		UserID:               in.UserID,
		PrincipalCOP:         in.PrincipalCOP,
		TermMonths:           in.TermMonths,
		InterestEAUsed:       ProductEA,
		MonthlyRateEM:        em,
		InstallmentAmountCOP: installmentAmount,
		TotalPayableCOP:      total,
		Status:               domainLoan.StatusPending,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Audit.Record(ctx, &audit.Log{
			ActorID:    in.UserID,
			Action:     "LOAN_APPLIED",
			EntityType: "loan",
			EntityID:   l.LoanID,
			After:      audit.Snapshot(l),
		})
	})
	if err != nil {
		return nil, err
	}
	return toLoanDTO(l), nil
}

func checkEligibility(snap *domainLoan.EligibilitySnapshot, in ApplyInput) error {
	if snap.Suspended {
		if snap.SuspensionReason != "" {
			return apperr.New(apperr.KindPolicy, "SUSPENDED", snap.SuspensionReason)
		}
		return domainLoan.ErrSuspended
	}
	if !snap.KYCApproved {
		return domainLoan.ErrKYCNotApproved
	}
	if snap.RiskTier == string(domainCredit.TierMedium) && in.TermMonths == 3 {
		return domainLoan.ErrTermNotAllowed
	}
	if snap.RiskTier == string(domainCredit.TierHigh) {
		return domainLoan.ErrRiskReviewRequired
	}
	if in.PrincipalCOP > snap.CurrentLimitCOP {
		return domainLoan.ErrLimitExceeded
	}
	return nil
}

// Approve moves PENDING → APPROVED, stamping approver and approval time once.
func (u *Usecase) Approve(ctx context.Context, loanID, actorID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidState
		}
		before := audit.Snapshot(l)

		now := time.Now().UTC()
		l.Status = domainLoan.StatusApproved
		l.ApprovedBy = actorID
		l.ApprovedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    actorID,
			Action:     "LOAN_APPROVED",
			EntityType: "loan",
			EntityID:   l.LoanID,
			Before:     before,
			After:      audit.Snapshot(l),
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject moves PENDING → REJECTED. Terminal.
func (u *Usecase) Reject(ctx context.Context, loanID, actorID, reason string) (*LoanDTO, error) {
	if len(reason) < 3 {
		return nil, apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "rejection reason is required")
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidState
		}
		before := audit.Snapshot(l)

		l.Status = domainLoan.StatusRejected
		l.RejectionReason = reason
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    actorID,
			Action:     "LOAN_REJECTED",
			EntityType: "loan",
			EntityID:   l.LoanID,
			Before:     before,
			After:      audit.Snapshot(l),
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Disburse is the one atomic unit that flips the loan to DISBURSED, writes
// the full installment schedule and the DISBURSEMENT ledger entry. Either
// all of it commits or none of it does.
func (u *Usecase) Disburse(ctx context.Context, loanID, actorID string) (*LoanDetailDTO, error) {
	var dto *LoanDetailDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidState
		}
		if l.DisbursedAt != nil {
			return domainLoan.ErrAlreadyDisbursed
		}
		verified, err := r.Accounts.HasVerified(ctx, l.ID)
		if err != nil {
			return err
		}
		if !verified {
			return domainLoan.ErrNoVerifiedAccount
		}
		// Double-execution guard on top of the status check.
		n, err := r.Installments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domainLoan.ErrInstallmentsExist
		}
		before := audit.Snapshot(l)

		now := time.Now().UTC()
		l.Status = domainLoan.StatusDisbursed
		l.DisbursedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		rows := BuildSchedule(l, now)
		if err := r.Installments.CreateBatch(ctx, rows); err != nil {
			return err
		}

		if err := r.Ledger.Create(ctx, &domainLedger.Entry{
			EntryID:   id.NewID32(),
			LoanID:    l.ID,
			Type:      domainLedger.TypeDisbursement,
			AmountCOP: l.PrincipalCOP,
			Reference: "DISB-" + l.LoanID,
			CreatedBy: actorID,
		}); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, &audit.Log{
			ActorID:    actorID,
			Action:     "LOAN_DISBURSED",
			EntityType: "loan",
			EntityID:   l.LoanID,
			Before:     before,
			After:      audit.Snapshot(l),
		}); err != nil {
			return err
		}

		dto = &LoanDetailDTO{Loan: *toLoanDTO(l), Installments: toInstallmentDTOs(rows)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns a loan with its schedule; when ownerID is non-empty the loan
// must belong to that user.
func (u *Usecase) Get(ctx context.Context, loanID, ownerID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	if ownerID != "" && l.UserID != ownerID {
		return nil, domainLoan.ErrForbidden
	}
	rows, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LoanDetailDTO{Loan: *toLoanDTO(l), Installments: toInstallmentDTOs(rows)}, nil
}

// GetActive returns the user's in-flight loan, or nil when none exists.
func (u *Usecase) GetActive(ctx context.Context, userID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetActiveLoanByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LoanDetailDTO{Loan: *toLoanDTO(l), Installments: toInstallmentDTOs(rows)}, nil
}

func toLoanDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:               l.LoanID,
		UserID:               l.UserID,
		PrincipalCOP:         l.PrincipalCOP,
		TermMonths:           l.TermMonths,
		InterestEAUsed:       l.InterestEAUsed,
		MonthlyRateEM:        l.MonthlyRateEM,
		InstallmentAmountCOP: l.InstallmentAmountCOP,
		TotalPayableCOP:      l.TotalPayableCOP,
		Status:               string(l.Status),
		ApprovedAt:           l.ApprovedAt,
		DisbursedAt:          l.DisbursedAt,
		ClosedAt:             l.ClosedAt,
		CreatedAt:            l.CreatedAt,
	}
}

func toInstallmentDTOs(rows []*domainInst.Installment) []InstallmentDTO {
	out := make([]InstallmentDTO, 0, len(rows))
	for _, i := range rows {
		out = append(out, InstallmentDTO{
			InstallmentID: i.InstallmentID,
			Number:        i.Number,
			DueDate:       i.DueDate,
			AmountDueCOP:  i.AmountDueCOP,
			AmountPaidCOP: i.AmountPaidCOP,
			Status:        string(i.Status),
			PaidAt:        i.PaidAt,
			DaysLate:      i.DaysLate,
		})
	}
	return out
}
