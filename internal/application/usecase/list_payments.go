package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// DefaultUpcomingLimit bounds the upcoming-installments listing when the
// caller does not ask for a size.
const DefaultUpcomingLimit = 10

const maxUpcomingLimit = 500

// ListPaymentsUseCase serves the payment listings.
type ListPaymentsUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
}

// NewListPaymentsUseCase wires dependencies.
func NewListPaymentsUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{contractRepo: contractRepo, installmentRepo: installmentRepo}
}

// Paid returns every paid installment, most recent payment first.
func (uc *ListPaymentsUseCase) Paid(ctx context.Context) ([]dto.PaymentResponse, error) {
	list, err := uc.installmentRepo.ListPaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("list paid installments: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p.Installment, p.Contract, p.DueDate(), p.BeneficiaryName, p.BeneficiaryDNI))
	}
	return out, nil
}

// Pending returns the unpaid installments of one contract by sequence.
func (uc *ListPaymentsUseCase) Pending(ctx context.Context, contractID string) ([]dto.InstallmentResponse, error) {
	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("find contract: %w", err)
	}
	list, err := uc.installmentRepo.ListPending(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("list pending installments: %w", err)
	}
	return toInstallmentResponses(contract, list), nil
}

// Upcoming returns pending installments of ACTIVE contracts ordered by
// contract pay-day, then sequence. A non-positive limit uses DefaultUpcomingLimit.
func (uc *ListPaymentsUseCase) Upcoming(ctx context.Context, limit int) ([]dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}
	list, err := uc.installmentRepo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming installments: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toPaymentResponse(u.Installment, u.Contract, u.DueDate(), u.BeneficiaryName, u.BeneficiaryDNI))
	}
	return out, nil
}

// ExportPaymentsUseCase writes the paid-installments report.
type ExportPaymentsUseCase struct {
	installmentRepo port.InstallmentRepository
	writer          port.PaymentReportWriter
}

// NewExportPaymentsUseCase wires dependencies.
func NewExportPaymentsUseCase(
	installmentRepo port.InstallmentRepository,
	writer port.PaymentReportWriter,
) *ExportPaymentsUseCase {
	return &ExportPaymentsUseCase{installmentRepo: installmentRepo, writer: writer}
}

// Execute renders every paid installment into w.
func (uc *ExportPaymentsUseCase) Execute(ctx context.Context, w io.Writer) error {
	list, err := uc.installmentRepo.ListPaid(ctx)
	if err != nil {
		return fmt.Errorf("list paid installments: %w", err)
	}
	if err := uc.writer.WritePayments(w, list); err != nil {
		return fmt.Errorf("write payments report: %w", err)
	}
	return nil
}
