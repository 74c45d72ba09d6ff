// Package presentationtest provides func-field fakes of the application
// services for transport tests. A nil func returns zero values.
package presentationtest

import (
	"context"
	"io"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/presentation"
)

type Beneficiaries struct {
	RegisterFunc  func(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error)
	UpdateFunc    func(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error)
	DeleteFunc    func(ctx context.Context, id string) error
	GetFunc       func(ctx context.Context, id string) (dto.BeneficiaryResponse, error)
	ListFunc      func(ctx context.Context, req dto.SearchBeneficiariesRequest) ([]dto.BeneficiaryResponse, error)
	FindByDNIFunc func(ctx context.Context, dni string) (dto.BeneficiaryLookupResponse, error)

	Registered []dto.BeneficiaryRequest
	Updated    []dto.BeneficiaryRequest
	Deleted    []string
}

var _ presentation.Beneficiaries = (*Beneficiaries)(nil)

func (f *Beneficiaries) Register(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error) {
	f.Registered = append(f.Registered, req)
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}
	return dto.BeneficiaryResponse{}, nil
}

func (f *Beneficiaries) Update(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error) {
	f.Updated = append(f.Updated, req)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, req)
	}
	return dto.BeneficiaryResponse{}, nil
}

func (f *Beneficiaries) Delete(ctx context.Context, id string) error {
	f.Deleted = append(f.Deleted, id)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *Beneficiaries) Get(ctx context.Context, id string) (dto.BeneficiaryResponse, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return dto.BeneficiaryResponse{}, nil
}

func (f *Beneficiaries) List(ctx context.Context, req dto.SearchBeneficiariesRequest) ([]dto.BeneficiaryResponse, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, req)
	}
	return nil, nil
}

func (f *Beneficiaries) FindByDNI(ctx context.Context, dni string) (dto.BeneficiaryLookupResponse, error) {
	if f.FindByDNIFunc != nil {
		return f.FindByDNIFunc(ctx, dni)
	}
	return dto.BeneficiaryLookupResponse{}, nil
}

type Contracts struct {
	CreateFunc            func(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error)
	UpdateFunc            func(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error)
	FinalizeFunc          func(ctx context.Context, id string) (dto.ContractResponse, error)
	DeleteFunc            func(ctx context.Context, id string) error
	GetFunc               func(ctx context.Context, id string) (dto.ContractResponse, error)
	ListFunc              func(ctx context.Context) ([]dto.ContractResponse, error)
	ListActiveFunc        func(ctx context.Context) ([]dto.ContractResponse, error)
	ListByBeneficiaryFunc func(ctx context.Context, beneficiaryID string) ([]dto.ContractResponse, error)
	SummaryFunc           func(ctx context.Context, id string) (dto.ContractSummaryResponse, error)
	ScheduleFunc          func(ctx context.Context, id string) (dto.ContractScheduleResponse, error)
	PreviewFunc           func(req dto.SchedulePreviewRequest) (dto.SchedulePreviewResponse, error)

	Created   []dto.ContractRequest
	Updated   []dto.ContractRequest
	Finalized []string
	Deleted   []string
}

var _ presentation.Contracts = (*Contracts)(nil)

func (f *Contracts) Create(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error) {
	f.Created = append(f.Created, req)
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, req)
	}
	return dto.ContractResponse{}, nil
}

func (f *Contracts) Update(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error) {
	f.Updated = append(f.Updated, req)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, req)
	}
	return dto.ContractResponse{}, nil
}

func (f *Contracts) Finalize(ctx context.Context, id string) (dto.ContractResponse, error) {
	f.Finalized = append(f.Finalized, id)
	if f.FinalizeFunc != nil {
		return f.FinalizeFunc(ctx, id)
	}
	return dto.ContractResponse{}, nil
}

func (f *Contracts) Delete(ctx context.Context, id string) error {
	f.Deleted = append(f.Deleted, id)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *Contracts) Get(ctx context.Context, id string) (dto.ContractResponse, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return dto.ContractResponse{}, nil
}

func (f *Contracts) List(ctx context.Context) ([]dto.ContractResponse, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return nil, nil
}

func (f *Contracts) ListActive(ctx context.Context) ([]dto.ContractResponse, error) {
	if f.ListActiveFunc != nil {
		return f.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (f *Contracts) ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]dto.ContractResponse, error) {
	if f.ListByBeneficiaryFunc != nil {
		return f.ListByBeneficiaryFunc(ctx, beneficiaryID)
	}
	return nil, nil
}

func (f *Contracts) Summary(ctx context.Context, id string) (dto.ContractSummaryResponse, error) {
	if f.SummaryFunc != nil {
		return f.SummaryFunc(ctx, id)
	}
	return dto.ContractSummaryResponse{}, nil
}

func (f *Contracts) Schedule(ctx context.Context, id string) (dto.ContractScheduleResponse, error) {
	if f.ScheduleFunc != nil {
		return f.ScheduleFunc(ctx, id)
	}
	return dto.ContractScheduleResponse{}, nil
}

func (f *Contracts) Preview(req dto.SchedulePreviewRequest) (dto.SchedulePreviewResponse, error) {
	if f.PreviewFunc != nil {
		return f.PreviewFunc(req)
	}
	return dto.SchedulePreviewResponse{}, nil
}

type Payments struct {
	RegisterFunc            func(ctx context.Context, req dto.RegisterPaymentRequest) (dto.PaymentResponse, error)
	ReverseFunc             func(ctx context.Context, installmentID string) (dto.InstallmentResponse, error)
	PaidFunc                func(ctx context.Context) ([]dto.PaymentResponse, error)
	PendingFunc             func(ctx context.Context, contractID string) ([]dto.InstallmentResponse, error)
	UpcomingFunc            func(ctx context.Context, limit int) ([]dto.PaymentResponse, error)
	ActiveContractByDNIFunc func(ctx context.Context, dni string) (dto.ActiveContractLookupResponse, error)
	ExportFunc              func(ctx context.Context, w io.Writer) error

	Registered []dto.RegisterPaymentRequest
	Reversed   []string
}

var _ presentation.Payments = (*Payments)(nil)

func (f *Payments) Register(ctx context.Context, req dto.RegisterPaymentRequest) (dto.PaymentResponse, error) {
	f.Registered = append(f.Registered, req)
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}
	return dto.PaymentResponse{}, nil
}

func (f *Payments) Reverse(ctx context.Context, installmentID string) (dto.InstallmentResponse, error) {
	f.Reversed = append(f.Reversed, installmentID)
	if f.ReverseFunc != nil {
		return f.ReverseFunc(ctx, installmentID)
	}
	return dto.InstallmentResponse{}, nil
}

func (f *Payments) Paid(ctx context.Context) ([]dto.PaymentResponse, error) {
	if f.PaidFunc != nil {
		return f.PaidFunc(ctx)
	}
	return nil, nil
}

func (f *Payments) Pending(ctx context.Context, contractID string) ([]dto.InstallmentResponse, error) {
	if f.PendingFunc != nil {
		return f.PendingFunc(ctx, contractID)
	}
	return nil, nil
}

func (f *Payments) Upcoming(ctx context.Context, limit int) ([]dto.PaymentResponse, error) {
	if f.UpcomingFunc != nil {
		return f.UpcomingFunc(ctx, limit)
	}
	return nil, nil
}

func (f *Payments) ActiveContractByDNI(ctx context.Context, dni string) (dto.ActiveContractLookupResponse, error) {
	if f.ActiveContractByDNIFunc != nil {
		return f.ActiveContractByDNIFunc(ctx, dni)
	}
	return dto.ActiveContractLookupResponse{}, nil
}

func (f *Payments) Export(ctx context.Context, w io.Writer) error {
	if f.ExportFunc != nil {
		return f.ExportFunc(ctx, w)
	}
	return nil
}

// Services bundles fresh fakes.
func Services() (presentation.Services, *Beneficiaries, *Contracts, *Payments) {
	b, c, p := &Beneficiaries{}, &Contracts{}, &Payments{}
	return presentation.Services{Beneficiaries: b, Contracts: c, Payments: p}, b, c, p
}
