package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// CreateContractUseCase opens a contract and generates its schedule.
type CreateContractUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
	contractRepo    port.ContractRepository
	publisher       port.EventPublisher
	clock           port.Clock
}

// NewCreateContractUseCase wires dependencies.
func NewCreateContractUseCase(
	beneficiaryRepo port.BeneficiaryRepository,
	contractRepo port.ContractRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *CreateContractUseCase {
	return &CreateContractUseCase{
		beneficiaryRepo: beneficiaryRepo,
		contractRepo:    contractRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

// Execute validates the terms, enforces the one-active-contract rule and
// stores the contract together with its installments.
func (uc *CreateContractUseCase) Execute(
	ctx context.Context,
	req dto.ContractRequest,
) (dto.ContractResponse, error) {
	now := uc.clock.Now()

	// 1. Parse and validate the terms.
	terms := parseTerms(req, now.Location())
	contract, err := model.NewContract(terms, now)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("validate contract: %w", err)
	}

	// 2. The beneficiary must exist and hold no ACTIVE contract.
	if _, err := uc.beneficiaryRepo.FindByID(ctx, terms.BeneficiaryID); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find beneficiary: %w", err)
	}
	active, err := uc.contractRepo.HasActiveContract(ctx, terms.BeneficiaryID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("check active contract: %w", err)
	}
	if active {
		return dto.ContractResponse{}, model.ErrActiveContractExists
	}

	// 3. Persist contract and schedule atomically. The repository re-checks
	// the active-contract rule inside the transaction.
	schedule := contract.GenerateSchedule(now)
	if err := uc.contractRepo.CreateWithSchedule(ctx, contract, schedule); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("save contract: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, contract.DomainEvents()...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 5. Re-read with the beneficiary display fields.
	view, err := uc.contractRepo.FindView(ctx, contract.ID())
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}
	return toContractViewResponse(view), nil
}
