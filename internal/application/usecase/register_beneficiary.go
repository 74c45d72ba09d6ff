package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// RegisterBeneficiaryUseCase records a new borrower.
type RegisterBeneficiaryUseCase struct {
	beneficiaryRepo port.BeneficiaryRepository
	publisher       port.EventPublisher
	clock           port.Clock
}

// NewRegisterBeneficiaryUseCase wires dependencies.
func NewRegisterBeneficiaryUseCase(
	beneficiaryRepo port.BeneficiaryRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *RegisterBeneficiaryUseCase {
	return &RegisterBeneficiaryUseCase{
		beneficiaryRepo: beneficiaryRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

// Execute validates and stores the beneficiary.
func (uc *RegisterBeneficiaryUseCase) Execute(
	ctx context.Context,
	req dto.BeneficiaryRequest,
) (dto.BeneficiaryResponse, error) {
	// 1. Validate input and build the aggregate.
	b, err := model.NewBeneficiary(toDetails(req), uc.clock.Now())
	if err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("validate beneficiary: %w", err)
	}

	// 2. Reject duplicate DNIs before touching the unique index.
	if err := ensureDNIAvailable(ctx, uc.beneficiaryRepo, b.NationalID().String(), ""); err != nil {
		return dto.BeneficiaryResponse{}, err
	}

	// 3. Persist.
	if err := uc.beneficiaryRepo.Create(ctx, b); err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("save beneficiary: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, b.DomainEvents()...); err != nil {
		return dto.BeneficiaryResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toBeneficiaryResponse(b), nil
}

func toDetails(req dto.BeneficiaryRequest) model.BeneficiaryDetails {
	return model.BeneficiaryDetails{
		Surnames:   req.Surnames,
		GivenNames: req.GivenNames,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Address:    req.Address,
	}
}

// ensureDNIAvailable fails when dni belongs to a beneficiary other than
// exceptID.
func ensureDNIAvailable(ctx context.Context, repo port.BeneficiaryRepository, dni, exceptID string) error {
	existing, err := repo.FindByNationalID(ctx, dni)
	switch {
	case errors.Is(err, model.ErrBeneficiaryNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find beneficiary by DNI: %w", err)
	case existing.ID() != exceptID:
		return model.ErrDNIAlreadyRegistered
	default:
		return nil
	}
}
