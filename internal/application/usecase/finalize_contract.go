package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// FinalizeContractUseCase moves an ACTIVE contract to FINISHED.
type FinalizeContractUseCase struct {
	contractRepo port.ContractRepository
	publisher    port.EventPublisher
	clock        port.Clock
}

// NewFinalizeContractUseCase wires dependencies.
func NewFinalizeContractUseCase(
	contractRepo port.ContractRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *FinalizeContractUseCase {
	return &FinalizeContractUseCase{
		contractRepo: contractRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

// Execute finalizes the contract. Finalizing twice is an error.
func (uc *FinalizeContractUseCase) Execute(ctx context.Context, id string) (dto.ContractResponse, error) {
	// 1. Retrieve the contract.
	contract, err := uc.contractRepo.FindByID(ctx, id)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	// 2. Transition.
	contract, err = contract.Finalize(uc.clock.Now())
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("finalize contract: %w", err)
	}

	// 3. Persist.
	if err := uc.contractRepo.Update(ctx, contract); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("save contract: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, contract.DomainEvents()...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toContractResponse(contract), nil
}
