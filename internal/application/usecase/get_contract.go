package usecase

import (
	"context"
	"fmt"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/port"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

// GetContractUseCase retrieves a contract joined with its beneficiary.
type GetContractUseCase struct {
	contractRepo port.ContractRepository
}

// NewGetContractUseCase wires dependencies.
func NewGetContractUseCase(contractRepo port.ContractRepository) *GetContractUseCase {
	return &GetContractUseCase{contractRepo: contractRepo}
}

// Execute returns the contract with the given ID.
func (uc *GetContractUseCase) Execute(ctx context.Context, id string) (dto.ContractResponse, error) {
	view, err := uc.contractRepo.FindView(ctx, id)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}
	return toContractViewResponse(view), nil
}

// ListContractsUseCase lists contracts.
type ListContractsUseCase struct {
	contractRepo    port.ContractRepository
	beneficiaryRepo port.BeneficiaryRepository
}

// NewListContractsUseCase wires dependencies.
func NewListContractsUseCase(
	contractRepo port.ContractRepository,
	beneficiaryRepo port.BeneficiaryRepository,
) *ListContractsUseCase {
	return &ListContractsUseCase{contractRepo: contractRepo, beneficiaryRepo: beneficiaryRepo}
}

// All returns every contract, newest start date first.
func (uc *ListContractsUseCase) All(ctx context.Context) ([]dto.ContractResponse, error) {
	list, err := uc.contractRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return toContractViewResponses(list), nil
}

// Active returns ACTIVE contracts only.
func (uc *ListContractsUseCase) Active(ctx context.Context) ([]dto.ContractResponse, error) {
	list, err := uc.contractRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active contracts: %w", err)
	}
	return toContractViewResponses(list), nil
}

// ByBeneficiary returns the contracts of one beneficiary.
func (uc *ListContractsUseCase) ByBeneficiary(ctx context.Context, beneficiaryID string) ([]dto.ContractResponse, error) {
	b, err := uc.beneficiaryRepo.FindByID(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("find beneficiary: %w", err)
	}

	list, err := uc.contractRepo.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("list contracts by beneficiary: %w", err)
	}

	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		resp := toContractResponse(c)
		resp.BeneficiaryName = b.FullName()
		resp.BeneficiaryDNI = b.NationalID().String()
		out = append(out, resp)
	}
	return out, nil
}

// ContractScheduleUseCase returns a contract's installments with their due
// dates.
type ContractScheduleUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
}

// NewContractScheduleUseCase wires dependencies.
func NewContractScheduleUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
) *ContractScheduleUseCase {
	return &ContractScheduleUseCase{contractRepo: contractRepo, installmentRepo: installmentRepo}
}

// Execute returns every installment of the contract ordered by sequence.
func (uc *ContractScheduleUseCase) Execute(ctx context.Context, contractID string) (dto.ContractScheduleResponse, error) {
	view, err := uc.contractRepo.FindView(ctx, contractID)
	if err != nil {
		return dto.ContractScheduleResponse{}, fmt.Errorf("find contract: %w", err)
	}

	installments, err := uc.installmentRepo.ListByContract(ctx, contractID)
	if err != nil {
		return dto.ContractScheduleResponse{}, fmt.Errorf("list installments: %w", err)
	}

	return dto.ContractScheduleResponse{
		Contract:     toContractViewResponse(view),
		Installments: toInstallmentResponses(view.Contract, installments),
	}, nil
}

// FindActiveContractByDNIUseCase returns the ACTIVE contract of a DNI with
// its pending installments, as the payment screen needs.
type FindActiveContractByDNIUseCase struct {
	contractRepo    port.ContractRepository
	installmentRepo port.InstallmentRepository
}

// NewFindActiveContractByDNIUseCase wires dependencies.
func NewFindActiveContractByDNIUseCase(
	contractRepo port.ContractRepository,
	installmentRepo port.InstallmentRepository,
) *FindActiveContractByDNIUseCase {
	return &FindActiveContractByDNIUseCase{contractRepo: contractRepo, installmentRepo: installmentRepo}
}

// Execute looks up the contract and its pending installments.
func (uc *FindActiveContractByDNIUseCase) Execute(ctx context.Context, dni string) (dto.ActiveContractLookupResponse, error) {
	id, err := valueobject.NewNationalID(dni)
	if err != nil {
		return dto.ActiveContractLookupResponse{}, apperror.Validation("DNI must have exactly 8 digits")
	}

	views, err := uc.contractRepo.FindActiveByNationalID(ctx, id.String())
	if err != nil {
		return dto.ActiveContractLookupResponse{}, fmt.Errorf("find active contracts: %w", err)
	}
	if len(views) == 0 {
		return dto.ActiveContractLookupResponse{}, apperror.NotFound("no active contract for DNI %s", id)
	}
	view := views[0]

	pending, err := uc.installmentRepo.ListPending(ctx, view.Contract.ID())
	if err != nil {
		return dto.ActiveContractLookupResponse{}, fmt.Errorf("list pending installments: %w", err)
	}
	if len(pending) == 0 {
		return dto.ActiveContractLookupResponse{}, apperror.NotFound("no pending installments for the active contract")
	}

	return dto.ActiveContractLookupResponse{
		Contract: toContractViewResponse(view),
		Pending:  toInstallmentResponses(view.Contract, pending),
	}, nil
}
