package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeBeneficiaryRegistered = "loans.beneficiary.registered"
	TypeContractCreated       = "loans.contract.created"
	TypeContractFinalized     = "loans.contract.finalized"
	TypeContractDeleted       = "loans.contract.deleted"
	TypePaymentRegistered     = "loans.payment.registered"
	TypePaymentReversed       = "loans.payment.reversed"
)

// ---------------------------------------------------------------------------
// Beneficiary Events
// ---------------------------------------------------------------------------

// BeneficiaryRegistered is raised when a new borrower is recorded.
type BeneficiaryRegistered struct {
	events.BaseEvent
	NationalID string `json:"dni"`
	FullName   string `json:"full_name"`
}

func NewBeneficiaryRegistered(beneficiaryID, nationalID, fullName string, at time.Time) BeneficiaryRegistered {
	return BeneficiaryRegistered{
		BaseEvent:  events.NewBaseEvent(TypeBeneficiaryRegistered, beneficiaryID, "Beneficiary", at),
		NationalID: nationalID,
		FullName:   fullName,
	}
}

// ---------------------------------------------------------------------------
// Contract Events
// ---------------------------------------------------------------------------

// ContractCreated is raised when a contract and its schedule are created.
type ContractCreated struct {
	events.BaseEvent
	BeneficiaryID      string          `json:"beneficiary_id"`
	Principal          decimal.Decimal `json:"principal"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent"`
	Installment        decimal.Decimal `json:"installment"`
	TermCount          int             `json:"term_count"`
	PayDay             int             `json:"pay_day"`
	StartDate          string          `json:"start_date"`
}

func NewContractCreated(
	contractID, beneficiaryID string,
	principal, ratePercent, installment decimal.Decimal,
	termCount, payDay int, startDate time.Time, at time.Time,
) ContractCreated {
	return ContractCreated{
		BaseEvent:          events.NewBaseEvent(TypeContractCreated, contractID, "Contract", at),
		BeneficiaryID:      beneficiaryID,
		Principal:          principal,
		MonthlyRatePercent: ratePercent,
		Installment:        installment,
		TermCount:          termCount,
		PayDay:             payDay,
		StartDate:          startDate.Format(time.DateOnly),
	}
}

// ContractFinalized is raised when a contract moves to FINISHED.
type ContractFinalized struct {
	events.BaseEvent
	BeneficiaryID string `json:"beneficiary_id"`
}

func NewContractFinalized(contractID, beneficiaryID string, at time.Time) ContractFinalized {
	return ContractFinalized{
		BaseEvent:     events.NewBaseEvent(TypeContractFinalized, contractID, "Contract", at),
		BeneficiaryID: beneficiaryID,
	}
}

// ContractDeleted is raised after an unpaid contract and its schedule are removed.
type ContractDeleted struct {
	events.BaseEvent
	BeneficiaryID string `json:"beneficiary_id"`
}

func NewContractDeleted(contractID, beneficiaryID string, at time.Time) ContractDeleted {
	return ContractDeleted{
		BaseEvent:     events.NewBaseEvent(TypeContractDeleted, contractID, "Contract", at),
		BeneficiaryID: beneficiaryID,
	}
}

// ---------------------------------------------------------------------------
// Payment Events
// ---------------------------------------------------------------------------

// PaymentRegistered is raised when an installment is paid.
type PaymentRegistered struct {
	events.BaseEvent
	ContractID string          `json:"contract_id"`
	Sequence   int             `json:"sequence"`
	Amount     decimal.Decimal `json:"amount"`
	Penalty    decimal.Decimal `json:"penalty"`
	Medium     string          `json:"medium"`
	DueDate    string          `json:"due_date"`
}

func NewPaymentRegistered(
	installmentID, contractID string, sequence int,
	amount, penalty decimal.Decimal, medium string,
	dueDate, at time.Time,
) PaymentRegistered {
	return PaymentRegistered{
		BaseEvent:  events.NewBaseEvent(TypePaymentRegistered, installmentID, "Installment", at),
		ContractID: contractID,
		Sequence:   sequence,
		Amount:     amount,
		Penalty:    penalty,
		Medium:     medium,
		DueDate:    dueDate.Format(time.DateOnly),
	}
}

// PaymentReversed is raised when a registered payment is annulled.
type PaymentReversed struct {
	events.BaseEvent
	ContractID string `json:"contract_id"`
	Sequence   int    `json:"sequence"`
}

func NewPaymentReversed(installmentID, contractID string, sequence int, at time.Time) PaymentReversed {
	return PaymentReversed{
		BaseEvent:  events.NewBaseEvent(TypePaymentReversed, installmentID, "Installment", at),
		ContractID: contractID,
		Sequence:   sequence,
	}
}
