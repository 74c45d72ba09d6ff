package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

const (
	MinPayDay    = 1
	MaxPayDay    = 31
	MinTermCount = 1
	MaxTermCount = 255
)

var maxRatePercent = decimal.NewFromInt(100)

// maxPrincipal is the largest amount a NUMERIC(12,2) column holds.
var maxPrincipal = decimal.RequireFromString("9999999999.99")

var minInstallment = decimal.New(1, -CurrencyPlaces)

// ContractTerms are the financial conditions of a contract. They are
// validated identically on create and on update.
type ContractTerms struct {
	BeneficiaryID      string
	Principal          decimal.Decimal
	MonthlyRatePercent decimal.Decimal
	StartDate          time.Time
	PayDay             int
	TermCount          int
}

// Validate checks every field range. today is the current business date;
// the start date may not precede it. Amounts and rates must fit the stored
// precision, and the terms must yield an installment of at least 0.01.
func (t ContractTerms) Validate(today time.Time) error {
	var v violations
	v.check(t.BeneficiaryID != "", "beneficiary is required")
	principalOK := v.check(t.Principal.IsPositive(), "amount must be greater than 0")
	if principalOK {
		principalOK = v.check(t.Principal.LessThanOrEqual(maxPrincipal), "amount must not exceed 9999999999.99") &&
			v.check(hasCents(t.Principal), "amount must have at most 2 decimal places")
	}
	rateOK := v.check(!t.MonthlyRatePercent.IsNegative() && t.MonthlyRatePercent.LessThanOrEqual(maxRatePercent),
		"interest rate must be between 0 and 100")
	if rateOK {
		rateOK = v.check(hasCents(t.MonthlyRatePercent), "interest rate must have at most 2 decimal places")
	}
	if t.StartDate.IsZero() {
		v.check(false, "start date is not valid")
	} else {
		start := CalendarDate(t.StartDate, today.Location())
		v.check(!start.Before(DateOnly(today, today.Location())), "start date cannot be in the past")
	}
	v.check(t.PayDay >= MinPayDay && t.PayDay <= MaxPayDay, "pay day must be between 1 and 31")
	termOK := v.check(t.TermCount >= MinTermCount && t.TermCount <= MaxTermCount, "number of installments must be between 1 and 255")
	if principalOK && rateOK && termOK {
		v.check(!t.Installment().LessThan(minInstallment), "amount is too small for the number of installments")
	}
	return v.err()
}

// hasCents reports whether d fits currency precision without rounding.
func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(CurrencyPlaces))
}

// Installment returns the fixed installment these terms produce.
func (t ContractTerms) Installment() decimal.Decimal {
	return ComputeInstallment(t.Principal, MonthlyRate(t.MonthlyRatePercent), t.TermCount)
}

// ---------------------------------------------------------------------------
// Contract aggregate root
// ---------------------------------------------------------------------------

// Contract is a loan agreement. It is immutable; mutations return a new copy.
type Contract struct {
	id                 string
	beneficiaryID      string
	principal          decimal.Decimal
	monthlyRatePercent decimal.Decimal
	startDate          time.Time
	payDay             int
	termCount          int
	status             valueobject.ContractStatus
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// NewContract validates the terms and opens an ACTIVE contract. The start
// date is normalised to midnight in now's location.
func NewContract(terms ContractTerms, now time.Time) (Contract, error) {
	if err := terms.Validate(now); err != nil {
		return Contract{}, err
	}

	c := Contract{
		id:                 uuid.New().String(),
		beneficiaryID:      terms.BeneficiaryID,
		principal:          terms.Principal,
		monthlyRatePercent: terms.MonthlyRatePercent,
		startDate:          CalendarDate(terms.StartDate, now.Location()),
		payDay:             terms.PayDay,
		termCount:          terms.TermCount,
		status:             valueobject.ContractStatusActive,
		createdAt:          now,
		updatedAt:          now,
	}
	c.domainEvents = append(c.domainEvents, event.NewContractCreated(
		c.id, c.beneficiaryID, c.principal, c.monthlyRatePercent, c.InstallmentAmount(),
		c.termCount, c.payDay, c.startDate, now,
	))
	return c, nil
}

// ReconstructContract rebuilds a Contract from persistence.
func ReconstructContract(
	id, beneficiaryID string,
	principal, monthlyRatePercent decimal.Decimal,
	startDate time.Time,
	payDay, termCount int,
	status valueobject.ContractStatus,
	createdAt, updatedAt time.Time,
) Contract {
	return Contract{
		id:                 id,
		beneficiaryID:      beneficiaryID,
		principal:          principal,
		monthlyRatePercent: monthlyRatePercent,
		startDate:          startDate,
		payDay:             payDay,
		termCount:          termCount,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Update replaces the terms of an ACTIVE contract. The installment schedule
// is left untouched: amounts fixed at creation are never recomputed.
func (c Contract) Update(terms ContractTerms, now time.Time) (Contract, error) {
	if !c.status.IsActive() {
		return c, ErrContractFinished
	}
	if err := terms.Validate(now); err != nil {
		return c, err
	}
	next := c
	next.beneficiaryID = terms.BeneficiaryID
	next.principal = terms.Principal
	next.monthlyRatePercent = terms.MonthlyRatePercent
	next.startDate = CalendarDate(terms.StartDate, now.Location())
	next.payDay = terms.PayDay
	next.termCount = terms.TermCount
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// Finalize transitions ACTIVE -> FINISHED.
func (c Contract) Finalize(now time.Time) (Contract, error) {
	if !c.status.IsActive() {
		return c, ErrContractAlreadyFinalized
	}
	next := c
	next.status = valueobject.ContractStatusFinished
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewContractFinalized(c.id, c.beneficiaryID, now))
	return next, nil
}

// GenerateSchedule produces the contract's installments.
func (c Contract) GenerateSchedule(now time.Time) []Installment {
	return GenerateSchedule(c.id, c.principal, MonthlyRate(c.monthlyRatePercent), c.termCount, now)
}

// DueDate returns when installment n of this contract falls due.
func (c Contract) DueDate(n int) time.Time {
	return ComputeDueDate(c.startDate, c.payDay, n)
}

// InstallmentAmount is the fixed installment for the current terms.
func (c Contract) InstallmentAmount() decimal.Decimal {
	return ComputeInstallment(c.principal, MonthlyRate(c.monthlyRatePercent), c.termCount)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Contract) ID() string                          { return c.id }
func (c Contract) BeneficiaryID() string               { return c.beneficiaryID }
func (c Contract) Principal() decimal.Decimal          { return c.principal }
func (c Contract) MonthlyRatePercent() decimal.Decimal { return c.monthlyRatePercent }
func (c Contract) StartDate() time.Time                { return c.startDate }
func (c Contract) PayDay() int                         { return c.payDay }
func (c Contract) TermCount() int                      { return c.termCount }
func (c Contract) Status() valueobject.ContractStatus  { return c.status }
func (c Contract) CreatedAt() time.Time                { return c.createdAt }
func (c Contract) UpdatedAt() time.Time                { return c.updatedAt }
func (c Contract) DomainEvents() []event.DomainEvent   { return c.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (c Contract) ClearEvents() Contract {
	next := c
	next.domainEvents = nil
	return next
}

// WithDeletion appends the deletion event. The contract itself is about to
// disappear from storage, so no state changes.
func (c Contract) WithDeletion(now time.Time) Contract {
	next := c
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewContractDeleted(c.id, c.beneficiaryID, now))
	return next
}
