package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

// Installment is one scheduled payment slot of a contract. A nil paidAt
// means pending.
type Installment struct {
	id           string
	contractID   string
	sequence     int
	amount       decimal.Decimal
	paidAt       *time.Time
	penalty      decimal.Decimal
	medium       valueobject.PaymentMedium
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// GenerateSchedule builds termCount pending installments numbered 1..termCount,
// all carrying the same fixed amount.
func GenerateSchedule(
	contractID string,
	principal, monthlyRate decimal.Decimal,
	termCount int,
	now time.Time,
) []Installment {
	if termCount <= 0 {
		return nil
	}
	amount := ComputeInstallment(principal, monthlyRate, termCount)

	schedule := make([]Installment, 0, termCount)
	for seq := 1; seq <= termCount; seq++ {
		schedule = append(schedule, Installment{
			id:         uuid.New().String(),
			contractID: contractID,
			sequence:   seq,
			amount:     amount,
			penalty:    decimal.Zero,
			createdAt:  now,
		})
	}
	return schedule
}

// ReconstructInstallment rebuilds an Installment from persistence.
func ReconstructInstallment(
	id, contractID string,
	sequence int,
	amount decimal.Decimal,
	paidAt *time.Time,
	penalty decimal.Decimal,
	medium valueobject.PaymentMedium,
	createdAt time.Time,
) Installment {
	return Installment{
		id:         id,
		contractID: contractID,
		sequence:   sequence,
		amount:     amount,
		paidAt:     paidAt,
		penalty:    penalty,
		medium:     medium,
		createdAt:  createdAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Pay marks the installment PAID at now. The penalty is computed against
// dueDate.
func (i Installment) Pay(medium valueobject.PaymentMedium, dueDate, now time.Time) (Installment, error) {
	if i.IsPaid() {
		return i, ErrInstallmentAlreadyPaid
	}
	if medium.IsZero() {
		return i, ErrInvalidPaymentMedium
	}
	paidAt := now
	next := i
	next.paidAt = &paidAt
	next.penalty = ComputePenalty(i.amount, dueDate, now)
	next.medium = medium
	next.domainEvents = copyEvents(i.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentRegistered(
		i.id, i.contractID, i.sequence, i.amount, next.penalty, medium.String(), dueDate, now,
	))
	return next, nil
}

// Reverse clears a registered payment back to PENDING. Reversing a pending
// installment leaves it unchanged.
func (i Installment) Reverse(now time.Time) Installment {
	next := i
	next.paidAt = nil
	next.penalty = decimal.Zero
	next.medium = valueobject.PaymentMedium{}
	next.domainEvents = copyEvents(i.domainEvents)
	if i.IsPaid() {
		next.domainEvents = append(next.domainEvents, event.NewPaymentReversed(i.id, i.contractID, i.sequence, now))
	}
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (i Installment) ID() string                        { return i.id }
func (i Installment) ContractID() string                { return i.contractID }
func (i Installment) Sequence() int                     { return i.sequence }
func (i Installment) Amount() decimal.Decimal           { return i.amount }
func (i Installment) PaidAt() *time.Time                { return i.paidAt }
func (i Installment) Penalty() decimal.Decimal          { return i.penalty }
func (i Installment) Medium() valueobject.PaymentMedium { return i.medium }
func (i Installment) CreatedAt() time.Time              { return i.createdAt }
func (i Installment) DomainEvents() []event.DomainEvent { return i.domainEvents }

// IsPaid reports whether a payment timestamp is recorded.
func (i Installment) IsPaid() bool { return i.paidAt != nil }

// Total is the amount plus any penalty.
func (i Installment) Total() decimal.Decimal { return i.amount.Add(i.penalty) }
