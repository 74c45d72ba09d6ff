package postgres

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

// contractSelect lists contract columns prefixed with the c alias, followed
// by the beneficiary display columns from the b alias.
const contractSelect = `
	c.id, c.beneficiary_id, c.principal, c.monthly_rate, c.start_date,
	c.pay_day, c.term_count, c.status, c.created_at, c.updated_at,
	b.surnames, b.given_names, b.dni`

const contractFrom = `
	FROM contracts c
	JOIN beneficiaries b ON b.id = c.beneficiary_id`

// contractRow is the scan target for contractSelect.
type contractRow struct {
	id, beneficiaryID    string
	principal, rate      decimal.Decimal
	startDate            time.Time
	payDay, termCount    int
	status               string
	createdAt, updatedAt time.Time
	surnames, givenNames string
	dni                  string
}

func (cr *contractRow) dest() []any {
	return []any{
		&cr.id, &cr.beneficiaryID, &cr.principal, &cr.rate, &cr.startDate,
		&cr.payDay, &cr.termCount, &cr.status, &cr.createdAt, &cr.updatedAt,
		&cr.surnames, &cr.givenNames, &cr.dni,
	}
}

func (cr *contractRow) contract(loc *time.Location) (model.Contract, error) {
	status, err := valueobject.NewContractStatus(cr.status)
	if err != nil {
		return model.Contract{}, fmt.Errorf("parse contract status: %w", err)
	}
	return model.ReconstructContract(
		cr.id, cr.beneficiaryID, cr.principal, cr.rate,
		dateIn(cr.startDate, loc), cr.payDay, cr.termCount, status,
		cr.createdAt.In(loc), cr.updatedAt.In(loc),
	), nil
}

func (cr *contractRow) view(loc *time.Location) (model.ContractView, error) {
	c, err := cr.contract(loc)
	if err != nil {
		return model.ContractView{}, err
	}
	return model.ContractView{
		Contract:        c,
		BeneficiaryName: model.DisplayName(cr.surnames, cr.givenNames),
		BeneficiaryDNI:  cr.dni,
	}, nil
}

// installmentColumns lists installment columns prefixed with the i alias.
const installmentColumns = `
	i.id, i.contract_id, i.sequence, i.amount, i.paid_at, i.penalty, i.medium, i.created_at`

// installmentRow is the scan target for installmentColumns.
type installmentRow struct {
	id, contractID string
	sequence       int
	amount         decimal.Decimal
	paidAt         *time.Time
	penalty        decimal.Decimal
	medium         *string
	createdAt      time.Time
}

func (ir *installmentRow) dest() []any {
	return []any{
		&ir.id, &ir.contractID, &ir.sequence, &ir.amount,
		&ir.paidAt, &ir.penalty, &ir.medium, &ir.createdAt,
	}
}

func (ir *installmentRow) installment(loc *time.Location) (model.Installment, error) {
	var medium valueobject.PaymentMedium
	if ir.medium != nil {
		m, err := valueobject.NewPaymentMedium(*ir.medium)
		if err != nil {
			return model.Installment{}, fmt.Errorf("parse payment medium: %w", err)
		}
		medium = m
	}
	var paidAt *time.Time
	if ir.paidAt != nil {
		t := ir.paidAt.In(loc)
		paidAt = &t
	}
	return model.ReconstructInstallment(
		ir.id, ir.contractID, ir.sequence, ir.amount,
		paidAt, ir.penalty, medium, ir.createdAt.In(loc),
	), nil
}
