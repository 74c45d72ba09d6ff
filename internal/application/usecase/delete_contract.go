package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// DeleteContractUseCase removes a contract that has no paid installments.
type DeleteContractUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
	clock           port.Clock
}

// NewDeleteContractUseCase wires dependencies.
func NewDeleteContractUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *DeleteContractUseCase {
	return &DeleteContractUseCase{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

// Execute deletes the contract and its installments.
func (uc *DeleteContractUseCase) Execute(ctx context.Context, id string) error {
	// 1. Retrieve the contract.
	contract, err := uc.contractRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find contract: %w", err)
	}

	// 2. Refuse when any installment has been paid.
	paid, err := uc.installmentRepo.CountPaid(ctx, id)
	if err != nil {
		return fmt.Errorf("count paid installments: %w", err)
	}
	if paid > 0 {
		return model.ErrContractHasPayments
	}

	// 3. Delete installments and contract in one transaction.
	if err := uc.contractRepo.DeleteUnpaid(ctx, id); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}

	// 4. Publish events.
	contract = contract.WithDeletion(uc.clock.Now())
	if err := uc.publisher.Publish(ctx, contract.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
