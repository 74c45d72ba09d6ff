package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// BeneficiaryRequest carries the editable fields of a beneficiary. ID is
// ignored on registration.
type BeneficiaryRequest struct {
	ID         string `json:"id" form:"id"`
	Surnames   string `json:"surnames" form:"surnames"`
	GivenNames string `json:"given_names" form:"given_names"`
	NationalID string `json:"dni" form:"dni"`
	Phone      string `json:"phone" form:"phone"`
	Address    string `json:"address" form:"address"`
}

// SearchBeneficiariesRequest filters beneficiaries by surname, given names or
// DNI. An empty term lists everyone.
type SearchBeneficiariesRequest struct {
	Term string `json:"q" form:"q"`
}

// ContractRequest carries contract terms as received from a transport.
// Amounts and dates stay textual until the use case parses them so that
// malformed input surfaces as a validation error.
type ContractRequest struct {
	ID                 string `json:"id" form:"id"`
	BeneficiaryID      string `json:"beneficiary_id" form:"beneficiary_id"`
	Principal          string `json:"principal" form:"principal"`
	MonthlyRatePercent string `json:"monthly_rate" form:"monthly_rate"`
	StartDate          string `json:"start_date" form:"start_date"`
	PayDay             int    `json:"pay_day" form:"pay_day"`
	TermCount          int    `json:"term_count" form:"term_count"`
}

// SchedulePreviewRequest asks for an installment table without persisting
// anything. StartDate is optional.
type SchedulePreviewRequest struct {
	Principal          string `json:"principal" form:"principal"`
	MonthlyRatePercent string `json:"monthly_rate" form:"monthly_rate"`
	StartDate          string `json:"start_date" form:"start_date"`
	PayDay             int    `json:"pay_day" form:"pay_day"`
	TermCount          int    `json:"term_count" form:"term_count"`
}

// RegisterPaymentRequest marks an installment as paid.
type RegisterPaymentRequest struct {
	InstallmentID string `json:"installment_id" form:"installment_id"`
	Medium        string `json:"medium" form:"medium"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// BeneficiaryResponse is the external representation of a beneficiary.
type BeneficiaryResponse struct {
	ID         string    `json:"id"`
	Surnames   string    `json:"surnames"`
	GivenNames string    `json:"given_names"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"dni"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeneficiaryLookupResponse is a beneficiary found by DNI.
type BeneficiaryLookupResponse struct {
	Beneficiary       BeneficiaryResponse `json:"beneficiary"`
	HasActiveContract bool                `json:"has_active_contract"`
}

// ContractResponse is the external representation of a contract.
type ContractResponse struct {
	ID                 string          `json:"id"`
	BeneficiaryID      string          `json:"beneficiary_id"`
	BeneficiaryName    string          `json:"beneficiary_name,omitempty"`
	BeneficiaryDNI     string          `json:"beneficiary_dni,omitempty"`
	Principal          decimal.Decimal `json:"principal"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate"`
	Installment        decimal.Decimal `json:"installment"`
	StartDate          string          `json:"start_date"`
	PayDay             int             `json:"pay_day"`
	TermCount          int             `json:"term_count"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ContractSummaryResponse aggregates a contract's installments.
type ContractSummaryResponse struct {
	Contract            ContractResponse `json:"contract"`
	TotalInstallments   int              `json:"total_installments"`
	PaidInstallments    int              `json:"paid_installments"`
	PendingInstallments int              `json:"pending_installments"`
	TotalPaid           decimal.Decimal  `json:"total_paid"`
	TotalPending        decimal.Decimal  `json:"total_pending"`
	TotalPenalties      decimal.Decimal  `json:"total_penalties"`
}

// InstallmentResponse is the external representation of an installment.
type InstallmentResponse struct {
	ID         string          `json:"id"`
	ContractID string          `json:"contract_id"`
	Sequence   int             `json:"sequence"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    string          `json:"due_date"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	Penalty    decimal.Decimal `json:"penalty"`
	Medium     string          `json:"medium,omitempty"`
	Total      decimal.Decimal `json:"total"`
}

// PaymentResponse is a paid or pending installment joined with its
// contract and beneficiary.
type PaymentResponse struct {
	InstallmentResponse
	BeneficiaryName   string          `json:"beneficiary_name"`
	BeneficiaryDNI    string          `json:"beneficiary_dni"`
	ContractPrincipal decimal.Decimal `json:"contract_principal"`
	ContractTermCount int             `json:"contract_term_count"`
	ContractPayDay    int             `json:"contract_pay_day"`
}

// ContractScheduleResponse is a contract with its dated installments.
type ContractScheduleResponse struct {
	Contract     ContractResponse      `json:"contract"`
	Installments []InstallmentResponse `json:"installments"`
}

// ActiveContractLookupResponse is the active contract of a DNI together with
// its pending installments.
type ActiveContractLookupResponse struct {
	Contract ContractResponse      `json:"contract"`
	Pending  []InstallmentResponse `json:"pending"`
}

// SchedulePreviewLine is one row of a schedule preview.
type SchedulePreviewLine struct {
	Sequence int             `json:"sequence"`
	DueDate  string          `json:"due_date,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// SchedulePreviewResponse is the computed schedule for prospective terms.
type SchedulePreviewResponse struct {
	Installment   decimal.Decimal       `json:"installment"`
	TotalPayable  decimal.Decimal       `json:"total_payable"`
	TotalInterest decimal.Decimal       `json:"total_interest"`
	Lines         []SchedulePreviewLine `json:"lines"`
}
