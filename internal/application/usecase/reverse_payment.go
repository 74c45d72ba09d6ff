package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// ReversePaymentUseCase returns a paid installment to PENDING.
type ReversePaymentUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
	clock           port.Clock
}

// NewReversePaymentUseCase wires dependencies.
func NewReversePaymentUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *ReversePaymentUseCase {
	return &ReversePaymentUseCase{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

// Execute clears the payment timestamp, penalty and medium. Reversing a
// pending installment succeeds without changes.
func (uc *ReversePaymentUseCase) Execute(ctx context.Context, installmentID string) (dto.InstallmentResponse, error) {
	// 1. Retrieve the installment and its contract.
	inst, err := uc.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("find installment: %w", err)
	}
	contract, err := uc.contractRepo.FindByID(ctx, inst.ContractID())
	if err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("find contract: %w", err)
	}

	// 2. Reverse and persist.
	reversed := inst.Reverse(uc.clock.Now())
	if err := uc.installmentRepo.ClearPayment(ctx, reversed); err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("clear payment: %w", err)
	}

	// 3. Publish events.
	if err := uc.publisher.Publish(ctx, reversed.DomainEvents()...); err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toInstallmentResponse(reversed, contract.DueDate(reversed.Sequence())), nil
}
