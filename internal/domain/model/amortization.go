package model

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// CurrencyPlaces is the number of decimal places money is stored with.
const CurrencyPlaces = 2

// MonthlyRate converts a monthly percentage (e.g. 1.5 for 1.5 %) into the
// per-period fraction used by ComputeInstallment.
func MonthlyRate(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// ComputeInstallment returns the fixed (French) installment for a loan.
//
// Parameters:
//   - principal:   the loan amount, positive
//   - monthlyRate: per-period rate as a fraction (0.015 = 1.5 %), >= 0
//   - termCount:   number of monthly installments, >= 1
//
// The calculation uses:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// and degrades to P / n when r is zero. Inputs are validated upstream; the
// function never fails. The result is rounded to currency precision, so
// terms that round below one cent yield zero; ContractTerms.Validate rejects
// those.
func ComputeInstallment(principal, monthlyRate decimal.Decimal, termCount int) decimal.Decimal {
	if termCount <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termCount))

	if monthlyRate.IsZero() {
		return principal.Div(n).Round(CurrencyPlaces)
	}

	factor := one.Add(monthlyRate).Pow(n)
	payment := principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))
	return payment.Round(CurrencyPlaces)
}

// TotalPayable is what the borrower pays over the whole term.
func TotalPayable(installment decimal.Decimal, termCount int) decimal.Decimal {
	return installment.Mul(decimal.NewFromInt(int64(termCount)))
}

// TotalInterest is the total payable minus the principal.
func TotalInterest(principal, installment decimal.Decimal, termCount int) decimal.Decimal {
	return TotalPayable(installment, termCount).Sub(principal)
}
