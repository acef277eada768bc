// Package loanmath holds the amortization arithmetic for the loan product.
// Everything here is pure and deterministic so audit trails and regression
// tests can replay origination numbers exactly.
package loanmath

import (
	"math"

	"github.com/shopspring/decimal"

	"cupo-backend/pkg/apperr"
)

// ErrInvalidTerm is returned when the requested term has no periods.
var ErrInvalidTerm = apperr.New(apperr.KindValidation, "INVALID_TERM", "term months must be positive")

// MonthlyRate converts an annual effective rate to the equivalent monthly
// compounding rate: (1+ea)^(1/12) - 1.
func MonthlyRate(annualEffective float64) float64 {
	return math.Pow(1+annualEffective, 1.0/12.0) - 1
}

// Round2 rounds to 2 decimals, half up. Monetary amounts in this product are
// COP stored with 2-decimal precision.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FixedInstallment computes the constant payment of a fully amortizing loan
// (French system): A = P * i(1+i)^n / ((1+i)^n - 1). A zero rate degenerates
// to an even split P/n.
func FixedInstallment(principal, monthlyRate float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, ErrInvalidTerm
	}
	if monthlyRate == 0 {
		return Round2(principal / float64(termMonths)), nil
	}
	pow := math.Pow(1+monthlyRate, float64(termMonths))
	a := principal * (monthlyRate * pow) / (pow - 1)
	return Round2(a), nil
}

// TotalPayable is the sum of all fixed installments.
func TotalPayable(installment float64, termMonths int) float64 {
	return Round2(installment * float64(termMonths))
}
