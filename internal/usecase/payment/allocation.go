package payment

import (
	"time"

	domainInst "cupo-backend/internal/domain/installment"
	"cupo-backend/pkg/loanmath"
)

// overpayTolerance absorbs 2-decimal rounding residue. Anything above it
// left unallocated means the payment exceeds the loan's remaining balance.
const overpayTolerance = 0.009

// orderForAllocation returns the waterfall order: oldest installment first,
// except that a payment targeting a specific installment puts that one at
// the front. Input must already be sorted by installment number.
func orderForAllocation(rows []*domainInst.Installment, targetID *uint64) []*domainInst.Installment {
	if targetID == nil {
		return rows
	}
	ordered := make([]*domainInst.Installment, 0, len(rows))
	for _, r := range rows {
		if r.ID == *targetID {
			ordered = append(ordered, r)
		}
	}
	for _, r := range rows {
		if r.ID != *targetID {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// allocate walks the ordered installments applying the payment amount to
// each outstanding balance. Installments reaching their full due amount flip
// to PAID with paid_at and days_late computed at that moment. Returns the
// rows it mutated and whatever amount could not be placed.
func allocate(amount float64, ordered []*domainInst.Installment, now time.Time) (applied []*domainInst.Installment, remaining float64) {
	remaining = amount
	today := dateOnly(now)

	for _, inst := range ordered {
		if remaining <= 0 {
			break
		}
		if inst.Status == domainInst.StatusPaid {
			continue
		}
		pending := inst.Outstanding()
		toApply := pending
		if remaining < toApply {
			toApply = remaining
		}
		if toApply <= 0 {
			continue
		}

		inst.AmountPaidCOP = loanmath.Round2(inst.AmountPaidCOP + toApply)
		remaining = loanmath.Round2(remaining - toApply)

		if inst.AmountPaidCOP >= inst.AmountDueCOP {
			inst.Status = domainInst.StatusPaid
			paidAt := now
			inst.PaidAt = &paidAt
			inst.DaysLate = daysLate(today, dateOnly(inst.DueDate))
		}
		applied = append(applied, inst)
	}
	return applied, remaining
}

// daysLate counts whole days between due date and payment date, floored at 0.
func daysLate(today, due time.Time) int {
	d := int(today.Sub(due).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
