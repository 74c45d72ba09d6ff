package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/port"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

// GetBeneficiaryUseCase retrieves a beneficiary by ID.
type GetBeneficiaryUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
}

// NewGetBeneficiaryUseCase wires dependencies.
func NewGetBeneficiaryUseCase(beneficiaryRepo port.BeneficiaryRepository) *GetBeneficiaryUseCase {
	return &GetBeneficiaryUseCase{beneficiaryRepo: beneficiaryRepo}
}

// Execute returns the beneficiary with the given ID.
func (uc *GetBeneficiaryUseCase) Execute(ctx context.Context, id string) (dto.BeneficiaryResponse, error) {
	b, err := uc.beneficiaryRepo.FindByID(ctx, id)
	if err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("find beneficiary: %w", err)
	}
	return toBeneficiaryResponse(b), nil
}

// ListBeneficiariesUseCase lists or searches beneficiaries.
type ListBeneficiariesUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
}

// NewListBeneficiariesUseCase wires dependencies.
func NewListBeneficiariesUseCase(beneficiaryRepo port.BeneficiaryRepository) *ListBeneficiariesUseCase {
	return &ListBeneficiariesUseCase{beneficiaryRepo: beneficiaryRepo}
}

// Execute returns every beneficiary ordered by name, or only those whose
// surnames, given names or DNI contain the search term.
func (uc *ListBeneficiariesUseCase) Execute(
	ctx context.Context,
	req dto.SearchBeneficiariesRequest,
) ([]dto.BeneficiaryResponse, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		list, err := uc.beneficiaryRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list beneficiaries: %w", err)
		}
		return toBeneficiaryResponses(list), nil
	}

	list, err := uc.beneficiaryRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search beneficiaries: %w", err)
	}
	return toBeneficiaryResponses(list), nil
}

// FindBeneficiaryByDNIUseCase looks a beneficiary up by DNI and reports
// whether it currently holds an ACTIVE contract.
type FindBeneficiaryByDNIUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
	contractRepo    port.ContractRepository
}

// NewFindBeneficiaryByDNIUseCase wires dependencies.
func NewFindBeneficiaryByDNIUseCase(
	beneficiaryRepo port.BeneficiaryRepository,
	contractRepo port.ContractRepository,
) *FindBeneficiaryByDNIUseCase {
	return &FindBeneficiaryByDNIUseCase{beneficiaryRepo: beneficiaryRepo, contractRepo: contractRepo}
}

// Execute returns the beneficiary holding dni.
func (uc *FindBeneficiaryByDNIUseCase) Execute(ctx context.Context, dni string) (dto.BeneficiaryLookupResponse, error) {
	id, err := valueobject.NewNationalID(dni)
	if err != nil {
		return dto.BeneficiaryLookupResponse{}, apperror.Validation("DNI must have exactly 8 digits")
	}

	b, err := uc.beneficiaryRepo.FindByNationalID(ctx, id.String())
	if err != nil {
		return dto.BeneficiaryLookupResponse{}, fmt.Errorf("find beneficiary by DNI: %w", err)
	}

	active, err := uc.contractRepo.HasActiveContract(ctx, b.ID())
	if err != nil {
		return dto.BeneficiaryLookupResponse{}, fmt.Errorf("check active contract: %w", err)
	}

	return dto.BeneficiaryLookupResponse{
		Beneficiary:       toBeneficiaryResponse(b),
		HasActiveContract: active,
	}, nil
}
