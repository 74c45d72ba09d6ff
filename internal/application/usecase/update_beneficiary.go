package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// UpdateBeneficiaryUseCase edits an existing beneficiary.
type UpdateBeneficiaryUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
	clock           port.Clock
}

// NewUpdateBeneficiaryUseCase wires dependencies.
func NewUpdateBeneficiaryUseCase(beneficiaryRepo port.BeneficiaryRepository, clock port.Clock) *UpdateBeneficiaryUseCase {
	return &UpdateBeneficiaryUseCase{beneficiaryRepo: beneficiaryRepo, clock: clock}
}

// Execute re-validates every field and stores the new values.
func (uc *UpdateBeneficiaryUseCase) Execute(
	ctx context.Context,
	req dto.BeneficiaryRequest,
) (dto.BeneficiaryResponse, error) {
	// 1. Retrieve the beneficiary.
	b, err := uc.beneficiaryRepo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("find beneficiary: %w", err)
	}

	// 2. Apply changes.
	b, err = b.Update(toDetails(req), uc.clock.Now())
	if err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("validate beneficiary: %w", err)
	}

	// 3. The DNI may have changed to one already in use.
	if err := ensureDNIAvailable(ctx, uc.beneficiaryRepo, b.NationalID().String(), b.ID()); err != nil {
		return dto.BeneficiaryResponse{}, err
	}

	// 4. Persist.
	if err := uc.beneficiaryRepo.Update(ctx, b); err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("save beneficiary: %w", err)
	}

	return toBeneficiaryResponse(b), nil
}
