package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read models joined across aggregates for listings. They carry no
// behaviour and are never written back.

// ContractView is a contract joined with its beneficiary's display fields.
type ContractView struct {
	Contract        Contract
	BeneficiaryName string
	BeneficiaryDNI  string
}

// ContractSummary aggregates the installments of one contract.
type ContractSummary struct {
	ContractView
	TotalInstallments   int
	PaidInstallments    int
	PendingInstallments int
	TotalPaid           decimal.Decimal
	TotalPending        decimal.Decimal
	TotalPenalties      decimal.Decimal
}

// PaymentView is a paid installment joined with its contract and beneficiary.
type PaymentView struct {
	Installment     Installment
	Contract        Contract
	BeneficiaryName string
	BeneficiaryDNI  string
}

// DueDate of the paid installment.
func (p PaymentView) DueDate() time.Time {
	return p.Contract.DueDate(p.Installment.Sequence())
}

// UpcomingInstallment is a pending installment of an ACTIVE contract.
type UpcomingInstallment struct {
	Installment     Installment
	Contract        Contract
	BeneficiaryName string
	BeneficiaryDNI  string
}

// DueDate of the pending installment.
func (u UpcomingInstallment) DueDate() time.Time {
	return u.Contract.DueDate(u.Installment.Sequence())
}

// ScheduleLine is an installment with its computed due date.
type ScheduleLine struct {
	Installment Installment
	DueDate     time.Time
}

// BuildScheduleLines attaches due dates to a contract's installments.
func BuildScheduleLines(c Contract, installments []Installment) []ScheduleLine {
	lines := make([]ScheduleLine, 0, len(installments))
	for _, inst := range installments {
		lines = append(lines, ScheduleLine{Installment: inst, DueDate: c.DueDate(inst.Sequence())})
	}
	return lines
}
