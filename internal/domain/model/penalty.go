package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyRate is the flat surcharge applied to late installments.
var PenaltyRate = decimal.RequireFromString("0.10")

// ComputePenalty returns the late-payment penalty for an installment.
//
// A payment is late when its calendar date, read in the payment instant's
// own location, is strictly after the due date's calendar date. Paying at
// any time on the due date itself carries no penalty.
func ComputePenalty(amount decimal.Decimal, dueDate, paymentInstant time.Time) decimal.Decimal {
	if !IsLate(dueDate, paymentInstant) {
		return decimal.Zero
	}
	return amount.Mul(PenaltyRate).Round(CurrencyPlaces)
}

// IsLate reports whether paymentInstant falls on a day after dueDate.
func IsLate(dueDate, paymentInstant time.Time) bool {
	loc := paymentInstant.Location()
	return DateOnly(paymentInstant, loc).After(CalendarDate(dueDate, loc))
}
