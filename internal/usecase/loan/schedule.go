package loan

import (
	"time"

	domainInst "cupo-backend/internal/domain/installment"
	domainLoan "cupo-backend/internal/domain/loan"
	"cupo-backend/pkg/id"
)

// BuildSchedule produces the loan's n installments, numbered 1..n, each due
// 30*k calendar days after disbursement. Fixed-offset days, not calendar
// months: changing this would silently shift every due-date and days-late
// calculation downstream.
func BuildSchedule(l *domainLoan.Loan, disbursedAt time.Time) []*domainInst.Installment {
	base := dateOnly(disbursedAt)
	rows := make([]*domainInst.Installment, 0, l.TermMonths)
	for k := 1; k <= l.TermMonths; k++ {
		rows = append(rows, &domainInst.Installment{
			InstallmentID: id.NewID32(),
			LoanID:        l.ID,
			Number:        k,
			DueDate:       base.AddDate(0, 0, 30*k),
			AmountDueCOP:  l.InstallmentAmountCOP,
			AmountPaidCOP: 0,
			Status:        domainInst.StatusPending,
		})
	}
	return rows
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
