package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// UpdateContractUseCase edits the terms of an ACTIVE contract.
//
// Existing installments keep the amount computed at creation even when
// principal, rate or term change.
type UpdateContractUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
	contractRepo    port.ContractRepository
	clock           port.Clock
}

// NewUpdateContractUseCase wires dependencies.
func NewUpdateContractUseCase(
	beneficiaryRepo port.BeneficiaryRepository,
	contractRepo port.ContractRepository,
	clock port.Clock,
) *UpdateContractUseCase {
	return &UpdateContractUseCase{
		beneficiaryRepo: beneficiaryRepo,
		contractRepo:    contractRepo,
		clock:           clock,
	}
}

// Execute re-validates the terms and stores them.
func (uc *UpdateContractUseCase) Execute(
	ctx context.Context,
	req dto.ContractRequest,
) (dto.ContractResponse, error) {
	now := uc.clock.Now()

	// 1. Retrieve the contract.
	contract, err := uc.contractRepo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	// 2. Apply the new terms (rejects FINISHED contracts).
	terms := parseTerms(req, now.Location())
	updated, err := contract.Update(terms, now)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("update contract: %w", err)
	}

	// 3. Moving the contract to another beneficiary must not give them a
	// second ACTIVE contract.
	if updated.BeneficiaryID() != contract.BeneficiaryID() {
		if _, err := uc.beneficiaryRepo.FindByID(ctx, updated.BeneficiaryID()); err != nil {
			return dto.ContractResponse{}, fmt.Errorf("find beneficiary: %w", err)
		}
		active, err := uc.contractRepo.HasActiveContract(ctx, updated.BeneficiaryID())
		if err != nil {
			return dto.ContractResponse{}, fmt.Errorf("check active contract: %w", err)
		}
		if active {
			return dto.ContractResponse{}, model.ErrActiveContractExists
		}
	}

	// 4. Persist.
	if err := uc.contractRepo.Update(ctx, updated); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("save contract: %w", err)
	}

	view, err := uc.contractRepo.FindView(ctx, updated.ID())
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}
	return toContractViewResponse(view), nil
}
