package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/presentation"
)

// LoanHandler is the gRPC handler for contract and payment operations.
type LoanHandler struct {
	UnimplementedLoanServiceServer

	contracts presentation.Contracts
	payments  presentation.Payments
}

// NewLoanHandler creates a new handler with its service dependencies.
func NewLoanHandler(contracts presentation.Contracts, payments presentation.Payments) *LoanHandler {
	return &LoanHandler{contracts: contracts, payments: payments}
}

// CreateContract opens a contract and generates its schedule.
func (h *LoanHandler) CreateContract(ctx context.Context, req *CreateContractRequest) (*ContractReply, error) {
	c, err := h.contracts.Create(ctx, dto.ContractRequest{
		BeneficiaryID:      req.BeneficiaryID,
		Principal:          req.Principal,
		MonthlyRatePercent: req.MonthlyRate,
		StartDate:          req.StartDate,
		PayDay:             int(req.PayDay),
		TermCount:          int(req.TermCount),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ContractReply{Contract: c}, nil
}

// FinalizeContract closes an active contract.
func (h *LoanHandler) FinalizeContract(ctx context.Context, req *ContractIDRequest) (*ContractReply, error) {
	if req.ContractID == "" {
		return nil, status.Error(codes.InvalidArgument, "contract_id is required")
	}
	c, err := h.contracts.Finalize(ctx, req.ContractID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ContractReply{Contract: c}, nil
}

// GetContractSummary aggregates the installments of a contract.
func (h *LoanHandler) GetContractSummary(ctx context.Context, req *ContractIDRequest) (*ContractSummaryReply, error) {
	if req.ContractID == "" {
		return nil, status.Error(codes.InvalidArgument, "contract_id is required")
	}
	s, err := h.contracts.Summary(ctx, req.ContractID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ContractSummaryReply{Summary: s}, nil
}

// RegisterPayment marks an installment paid, applying the late penalty.
func (h *LoanHandler) RegisterPayment(ctx context.Context, req *RegisterPaymentRequest) (*RegisterPaymentReply, error) {
	if req.InstallmentID == "" {
		return nil, status.Error(codes.InvalidArgument, "installment_id is required")
	}
	p, err := h.payments.Register(ctx, dto.RegisterPaymentRequest{
		InstallmentID: req.InstallmentID,
		Medium:        req.Medium,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &RegisterPaymentReply{Payment: p, Late: p.Penalty.IsPositive()}, nil
}

// ReversePayment returns a paid installment to pending.
func (h *LoanHandler) ReversePayment(ctx context.Context, req *ReversePaymentRequest) (*InstallmentReply, error) {
	if req.InstallmentID == "" {
		return nil, status.Error(codes.InvalidArgument, "installment_id is required")
	}
	inst, err := h.payments.Reverse(ctx, req.InstallmentID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &InstallmentReply{Installment: inst}, nil
}

// PreviewSchedule computes a schedule without storing anything.
func (h *LoanHandler) PreviewSchedule(_ context.Context, req *PreviewScheduleRequest) (*PreviewScheduleReply, error) {
	p, err := h.contracts.Preview(dto.SchedulePreviewRequest{
		Principal:          req.Principal,
		MonthlyRatePercent: req.MonthlyRate,
		StartDate:          req.StartDate,
		PayDay:             int(req.PayDay),
		TermCount:          int(req.TermCount),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &PreviewScheduleReply{
		Installment:   p.Installment,
		TotalPayable:  p.TotalPayable,
		TotalInterest: p.TotalInterest,
		Lines:         p.Lines,
	}, nil
}

// toStatus maps a failure onto a gRPC status. Context errors keep their own
// codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	var code codes.Code
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		code = codes.InvalidArgument
	case apperror.KindNotFound:
		code = codes.NotFound
	case apperror.KindBusinessRule:
		code = codes.FailedPrecondition
	default:
		code = codes.Internal
	}
	return status.Error(code, presentation.PublicMessage(err))
}
