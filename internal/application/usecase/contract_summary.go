package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// ContractSummaryUseCase aggregates the installments of a contract.
type ContractSummaryUseCase struct {
	contractRepo port.ContractRepository
}

// NewContractSummaryUseCase wires dependencies.
func NewContractSummaryUseCase(contractRepo port.ContractRepository) *ContractSummaryUseCase {
	return &ContractSummaryUseCase{contractRepo: contractRepo}
}

// Execute returns counts and totals; a contract without installments
// reports zeros.
func (uc *ContractSummaryUseCase) Execute(ctx context.Context, id string) (dto.ContractSummaryResponse, error) {
	summary, err := uc.contractRepo.Summary(ctx, id)
	if err != nil {
		return dto.ContractSummaryResponse{}, fmt.Errorf("contract summary: %w", err)
	}
	return toSummaryResponse(summary), nil
}
