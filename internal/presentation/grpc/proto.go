package grpc

// proto.go defines the loans.v1.LoanService server interface and messages by
// hand. Messages travel with the JSON codec registered in json_codec.go, so
// plain structs with json tags stand in for generated types.

import (
	"context"

	"github.com/shopspring/decimal"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/prestamos/loan-service/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "loans.v1.LoanService"

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type CreateContractRequest struct {
	BeneficiaryID string `json:"beneficiary_id"`
	Principal     string `json:"principal"`
	MonthlyRate   string `json:"monthly_rate"`
	StartDate     string `json:"start_date"`
	PayDay        int32  `json:"pay_day"`
	TermCount     int32  `json:"term_count"`
}

type ContractIDRequest struct {
	ContractID string `json:"contract_id"`
}

type ContractReply struct {
	Contract dto.ContractResponse `json:"contract"`
}

type ContractSummaryReply struct {
	Summary dto.ContractSummaryResponse `json:"summary"`
}

type RegisterPaymentRequest struct {
	InstallmentID string `json:"installment_id"`
	Medium        string `json:"medium"`
}

type RegisterPaymentReply struct {
	Payment dto.PaymentResponse `json:"payment"`
	Late    bool                `json:"late"`
}

type ReversePaymentRequest struct {
	InstallmentID string `json:"installment_id"`
}

type InstallmentReply struct {
	Installment dto.InstallmentResponse `json:"installment"`
}

type PreviewScheduleRequest struct {
	Principal   string `json:"principal"`
	MonthlyRate string `json:"monthly_rate"`
	StartDate   string `json:"start_date"`
	PayDay      int32  `json:"pay_day"`
	TermCount   int32  `json:"term_count"`
}

type PreviewScheduleReply struct {
	Installment   decimal.Decimal           `json:"installment"`
	TotalPayable  decimal.Decimal           `json:"total_payable"`
	TotalInterest decimal.Decimal           `json:"total_interest"`
	Lines         []dto.SchedulePreviewLine `json:"lines"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// LoanServiceServer is the server API for loans.v1.LoanService.
type LoanServiceServer interface {
	CreateContract(context.Context, *CreateContractRequest) (*ContractReply, error)
	FinalizeContract(context.Context, *ContractIDRequest) (*ContractReply, error)
	GetContractSummary(context.Context, *ContractIDRequest) (*ContractSummaryReply, error)
	RegisterPayment(context.Context, *RegisterPaymentRequest) (*RegisterPaymentReply, error)
	ReversePayment(context.Context, *ReversePaymentRequest) (*InstallmentReply, error)
	PreviewSchedule(context.Context, *PreviewScheduleRequest) (*PreviewScheduleReply, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) CreateContract(context.Context, *CreateContractRequest) (*ContractReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateContract not implemented")
}
func (UnimplementedLoanServiceServer) FinalizeContract(context.Context, *ContractIDRequest) (*ContractReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FinalizeContract not implemented")
}
func (UnimplementedLoanServiceServer) GetContractSummary(context.Context, *ContractIDRequest) (*ContractSummaryReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetContractSummary not implemented")
}
func (UnimplementedLoanServiceServer) RegisterPayment(context.Context, *RegisterPaymentRequest) (*RegisterPaymentReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterPayment not implemented")
}
func (UnimplementedLoanServiceServer) ReversePayment(context.Context, *ReversePaymentRequest) (*InstallmentReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReversePayment not implemented")
}
func (UnimplementedLoanServiceServer) PreviewSchedule(context.Context, *PreviewScheduleRequest) (*PreviewScheduleReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PreviewSchedule not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers srv with the gRPC server.
func RegisterLoanServiceServer(s grpclib.ServiceRegistrar, srv LoanServiceServer) {
	s.RegisterService(&loanServiceDesc, srv)
}

var loanServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateContract", Handler: unaryHandler("CreateContract", LoanServiceServer.CreateContract)},
		{MethodName: "FinalizeContract", Handler: unaryHandler("FinalizeContract", LoanServiceServer.FinalizeContract)},
		{MethodName: "GetContractSummary", Handler: unaryHandler("GetContractSummary", LoanServiceServer.GetContractSummary)},
		{MethodName: "RegisterPayment", Handler: unaryHandler("RegisterPayment", LoanServiceServer.RegisterPayment)},
		{MethodName: "ReversePayment", Handler: unaryHandler("ReversePayment", LoanServiceServer.ReversePayment)},
		{MethodName: "PreviewSchedule", Handler: unaryHandler("PreviewSchedule", LoanServiceServer.PreviewSchedule)},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler builds the method handler a generated _Handler function
// would provide: decode the request, then call through the interceptor.
func unaryHandler[Req, Resp any](
	method string,
	call func(LoanServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LoanServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LoanServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
