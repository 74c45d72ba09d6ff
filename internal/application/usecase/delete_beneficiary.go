package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// DeleteBeneficiaryUseCase removes a beneficiary that owns no contracts.
type DeleteBeneficiaryUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
}

// NewDeleteBeneficiaryUseCase wires dependencies.
func NewDeleteBeneficiaryUseCase(beneficiaryRepo port.BeneficiaryRepository) *DeleteBeneficiaryUseCase {
	return &DeleteBeneficiaryUseCase{beneficiaryRepo: beneficiaryRepo}
}

// Execute deletes the beneficiary identified by id.
func (uc *DeleteBeneficiaryUseCase) Execute(ctx context.Context, id string) error {
	if _, err := uc.beneficiaryRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find beneficiary: %w", err)
	}

	n, err := uc.beneficiaryRepo.CountContracts(ctx, id)
	if err != nil {
		return fmt.Errorf("count contracts: %w", err)
	}
	if n > 0 {
		return model.ErrBeneficiaryHasContracts
	}

	if err := uc.beneficiaryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete beneficiary: %w", err)
	}
	return nil
}
