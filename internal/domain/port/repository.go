package port

import (
	"context"
	"io"
	"time"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// BeneficiaryRepository persists and retrieves beneficiaries.
type BeneficiaryRepository interface {
	Create(ctx context.Context, b model.Beneficiary) error
	Update(ctx context.Context, b model.Beneficiary) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (model.Beneficiary, error)
	FindByNationalID(ctx context.Context, dni string) (model.Beneficiary, error)
	List(ctx context.Context) ([]model.Beneficiary, error)
	Search(ctx context.Context, term string) ([]model.Beneficiary, error)
	CountContracts(ctx context.Context, id string) (int, error)
}

// ContractRepository persists and retrieves contracts.
type ContractRepository interface {
	// CreateWithSchedule stores the contract and all of its installments in
	// one transaction. It fails with model.ErrActiveContractExists when the
	// beneficiary already holds an ACTIVE contract.
	CreateWithSchedule(ctx context.Context, c model.Contract, schedule []model.Installment) error
	Update(ctx context.Context, c model.Contract) error
	// DeleteUnpaid removes the contract and its installments in one
	// transaction. It fails with model.ErrContractHasPayments when any
	// installment is paid.
	DeleteUnpaid(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (model.Contract, error)
	FindView(ctx context.Context, id string) (model.ContractView, error)
	List(ctx context.Context) ([]model.ContractView, error)
	ListActive(ctx context.Context) ([]model.ContractView, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]model.Contract, error)
	FindActiveByNationalID(ctx context.Context, dni string) ([]model.ContractView, error)
	HasActiveContract(ctx context.Context, beneficiaryID string) (bool, error)
	Summary(ctx context.Context, id string) (model.ContractSummary, error)
}

// InstallmentRepository persists and retrieves installments.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id string) (model.Installment, error)
	ListByContract(ctx context.Context, contractID string) ([]model.Installment, error)
	ListPending(ctx context.Context, contractID string) ([]model.Installment, error)
	ListPaid(ctx context.Context) ([]model.PaymentView, error)
	ListUpcoming(ctx context.Context, limit int) ([]model.UpcomingInstallment, error)
	CountPaid(ctx context.Context, contractID string) (int, error)
	// MarkPaid records the payment only if the row is still pending; it
	// fails with model.ErrInstallmentAlreadyPaid otherwise.
	MarkPaid(ctx context.Context, inst model.Installment) error
	ClearPayment(ctx context.Context, inst model.Installment) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

// PaymentReportWriter renders paid installments into a downloadable report.
type PaymentReportWriter interface {
	WritePayments(w io.Writer, payments []model.PaymentView) error
}

// ---------------------------------------------------------------------------
// Time
// ---------------------------------------------------------------------------

// Clock returns the current instant in the business time zone.
type Clock interface {
	Now() time.Time
}
