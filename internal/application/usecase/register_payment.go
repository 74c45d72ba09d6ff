package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

// RegisterPaymentUseCase marks a pending installment as paid and computes
// its late penalty.
type RegisterPaymentUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
	clock           port.Clock
}

// NewRegisterPaymentUseCase wires dependencies.
func NewRegisterPaymentUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *RegisterPaymentUseCase {
	return &RegisterPaymentUseCase{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

// Execute records the payment. A second payment of the same installment
// fails with model.ErrInstallmentAlreadyPaid.
func (uc *RegisterPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RegisterPaymentRequest,
) (dto.PaymentResponse, error) {
	// 1. Parse the medium.
	medium, err := valueobject.NewPaymentMedium(req.Medium)
	if err != nil {
		return dto.PaymentResponse{}, model.ErrInvalidPaymentMedium
	}

	// 2. Retrieve the installment and its contract.
	inst, err := uc.installmentRepo.FindByID(ctx, req.InstallmentID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find installment: %w", err)
	}
	view, err := uc.contractRepo.FindView(ctx, inst.ContractID())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find contract: %w", err)
	}

	// 3. Pay against the computed due date.
	dueDate := view.Contract.DueDate(inst.Sequence())
	paid, err := inst.Pay(medium, dueDate, uc.clock.Now())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("pay installment: %w", err)
	}

	// 4. Persist. The repository only updates rows that are still pending.
	if err := uc.installmentRepo.MarkPaid(ctx, paid); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	// 5. Publish events.
	if err := uc.publisher.Publish(ctx, paid.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPaymentResponse(paid, view.Contract, dueDate, view.BeneficiaryName, view.BeneficiaryDNI), nil
}
