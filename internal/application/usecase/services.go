package usecase

import (
	"context"
	"io"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// Dependencies are the ports every use case is built from.
type Dependencies struct {
	Beneficiaries port.BeneficiaryRepository
	Contracts     port.ContractRepository
	Installments  port.InstallmentRepository
	Publisher     port.EventPublisher
	Reports       port.PaymentReportWriter
	Clock         port.Clock
	// UpcomingLimit caps the upcoming-installments listing when a caller
	// passes no limit.
	UpcomingLimit int
}

// BeneficiaryService groups the beneficiary use cases behind one value
// that transports depend on.
type BeneficiaryService struct {
	register  *RegisterBeneficiaryUseCase
	update    *UpdateBeneficiaryUseCase
	remove    *DeleteBeneficiaryUseCase
	get       *GetBeneficiaryUseCase
	list      *ListBeneficiariesUseCase
	findByDNI *FindBeneficiaryByDNIUseCase
}

// NewBeneficiaryService wires every beneficiary use case.
func NewBeneficiaryService(d Dependencies) *BeneficiaryService {
	return &BeneficiaryService{
		register:  NewRegisterBeneficiaryUseCase(d.Beneficiaries, d.Publisher, d.Clock),
		update:    NewUpdateBeneficiaryUseCase(d.Beneficiaries, d.Clock),
		remove:    NewDeleteBeneficiaryUseCase(d.Beneficiaries),
		get:       NewGetBeneficiaryUseCase(d.Beneficiaries),
		list:      NewListBeneficiariesUseCase(d.Beneficiaries),
		findByDNI: NewFindBeneficiaryByDNIUseCase(d.Beneficiaries, d.Contracts),
	}
}

func (s *BeneficiaryService) Register(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error) {
	return s.register.Execute(ctx, req)
}

func (s *BeneficiaryService) Update(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error) {
	return s.update.Execute(ctx, req)
}

func (s *BeneficiaryService) Delete(ctx context.Context, id string) error {
	return s.remove.Execute(ctx, id)
}

func (s *BeneficiaryService) Get(ctx context.Context, id string) (dto.BeneficiaryResponse, error) {
	return s.get.Execute(ctx, id)
}

func (s *BeneficiaryService) List(ctx context.Context, req dto.SearchBeneficiariesRequest) ([]dto.BeneficiaryResponse, error) {
	return s.list.Execute(ctx, req)
}

func (s *BeneficiaryService) FindByDNI(ctx context.Context, dni string) (dto.BeneficiaryLookupResponse, error) {
	return s.findByDNI.Execute(ctx, dni)
}

// ContractService groups the contract use cases.
type ContractService struct {
	create   *CreateContractUseCase
	update   *UpdateContractUseCase
	finalize *FinalizeContractUseCase
	remove   *DeleteContractUseCase
	get      *GetContractUseCase
	list     *ListContractsUseCase
	summary  *ContractSummaryUseCase
	schedule *ContractScheduleUseCase
	preview  *PreviewScheduleUseCase
}

// NewContractService wires every contract use case.
func NewContractService(d Dependencies) *ContractService {
	return &ContractService{
		create:   NewCreateContractUseCase(d.Beneficiaries, d.Contracts, d.Publisher, d.Clock),
		update:   NewUpdateContractUseCase(d.Beneficiaries, d.Contracts, d.Clock),
		finalize: NewFinalizeContractUseCase(d.Contracts, d.Publisher, d.Clock),
		remove:   NewDeleteContractUseCase(d.Contracts, d.Installments, d.Publisher, d.Clock),
		get:      NewGetContractUseCase(d.Contracts),
		list:     NewListContractsUseCase(d.Contracts, d.Beneficiaries),
		summary:  NewContractSummaryUseCase(d.Contracts),
		schedule: NewContractScheduleUseCase(d.Contracts, d.Installments),
		preview:  NewPreviewScheduleUseCase(d.Clock),
	}
}

func (s *ContractService) Create(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error) {
	return s.create.Execute(ctx, req)
}

func (s *ContractService) Update(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error) {
	return s.update.Execute(ctx, req)
}

func (s *ContractService) Finalize(ctx context.Context, id string) (dto.ContractResponse, error) {
	return s.finalize.Execute(ctx, id)
}

func (s *ContractService) Delete(ctx context.Context, id string) error {
	return s.remove.Execute(ctx, id)
}

func (s *ContractService) Get(ctx context.Context, id string) (dto.ContractResponse, error) {
	return s.get.Execute(ctx, id)
}

func (s *ContractService) List(ctx context.Context) ([]dto.ContractResponse, error) {
	return s.list.All(ctx)
}

func (s *ContractService) ListActive(ctx context.Context) ([]dto.ContractResponse, error) {
	return s.list.Active(ctx)
}

func (s *ContractService) ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]dto.ContractResponse, error) {
	return s.list.ByBeneficiary(ctx, beneficiaryID)
}

func (s *ContractService) Summary(ctx context.Context, id string) (dto.ContractSummaryResponse, error) {
	return s.summary.Execute(ctx, id)
}

func (s *ContractService) Schedule(ctx context.Context, id string) (dto.ContractScheduleResponse, error) {
	return s.schedule.Execute(ctx, id)
}

// Preview computes a schedule without storing anything.
func (s *ContractService) Preview(req dto.SchedulePreviewRequest) (dto.SchedulePreviewResponse, error) {
	return s.preview.Execute(req)
}

// PaymentService groups the payment use cases.
type PaymentService struct {
	register      *RegisterPaymentUseCase
	reverse       *ReversePaymentUseCase
	list          *ListPaymentsUseCase
	active        *FindActiveContractByDNIUseCase
	export        *ExportPaymentsUseCase
	upcomingLimit int
}

// NewPaymentService wires every payment use case.
func NewPaymentService(d Dependencies) *PaymentService {
	return &PaymentService{
		register:      NewRegisterPaymentUseCase(d.Contracts, d.Installments, d.Publisher, d.Clock),
		reverse:       NewReversePaymentUseCase(d.Contracts, d.Installments, d.Publisher, d.Clock),
		list:          NewListPaymentsUseCase(d.Contracts, d.Installments),
		active:        NewFindActiveContractByDNIUseCase(d.Contracts, d.Installments),
		export:        NewExportPaymentsUseCase(d.Installments, d.Reports),
		upcomingLimit: d.UpcomingLimit,
	}
}

func (s *PaymentService) Register(ctx context.Context, req dto.RegisterPaymentRequest) (dto.PaymentResponse, error) {
	return s.register.Execute(ctx, req)
}

func (s *PaymentService) Reverse(ctx context.Context, installmentID string) (dto.InstallmentResponse, error) {
	return s.reverse.Execute(ctx, installmentID)
}

func (s *PaymentService) Paid(ctx context.Context) ([]dto.PaymentResponse, error) {
	return s.list.Paid(ctx)
}

func (s *PaymentService) Pending(ctx context.Context, contractID string) ([]dto.InstallmentResponse, error) {
	return s.list.Pending(ctx, contractID)
}

// Upcoming lists pending installments of active contracts. A non-positive
// limit falls back to the configured one.
func (s *PaymentService) Upcoming(ctx context.Context, limit int) ([]dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = s.upcomingLimit
	}
	return s.list.Upcoming(ctx, limit)
}

func (s *PaymentService) ActiveContractByDNI(ctx context.Context, dni string) (dto.ActiveContractLookupResponse, error) {
	return s.active.Execute(ctx, dni)
}

func (s *PaymentService) Export(ctx context.Context, w io.Writer) error {
	return s.export.Execute(ctx, w)
}
