package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/model"
)

// --- Mock implementations ---

type mockBeneficiaryRepository struct {
	createFunc           func(ctx context.Context, b model.Beneficiary) error
	updateFunc           func(ctx context.Context, b model.Beneficiary) error
	deleteFunc           func(ctx context.Context, id string) error
	findByIDFunc         func(ctx context.Context, id string) (model.Beneficiary, error)
	findByNationalIDFunc func(ctx context.Context, dni string) (model.Beneficiary, error)
	listFunc             func(ctx context.Context) ([]model.Beneficiary, error)
	searchFunc           func(ctx context.Context, term string) ([]model.Beneficiary, error)
	countContractsFunc   func(ctx context.Context, id string) (int, error)

	created []model.Beneficiary
	updated []model.Beneficiary
	deleted []string
}

func (m *mockBeneficiaryRepository) Create(ctx context.Context, b model.Beneficiary) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	m.created = append(m.created, b)
	return nil
}

func (m *mockBeneficiaryRepository) Update(ctx context.Context, b model.Beneficiary) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, b)
	}
	m.updated = append(m.updated, b)
	return nil
}

func (m *mockBeneficiaryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockBeneficiaryRepository) FindByID(ctx context.Context, id string) (model.Beneficiary, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Beneficiary{}, model.ErrBeneficiaryNotFound
}

func (m *mockBeneficiaryRepository) FindByNationalID(ctx context.Context, dni string) (model.Beneficiary, error) {
	if m.findByNationalIDFunc != nil {
		return m.findByNationalIDFunc(ctx, dni)
	}
	return model.Beneficiary{}, model.ErrBeneficiaryNotFound
}

func (m *mockBeneficiaryRepository) List(ctx context.Context) ([]model.Beneficiary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockBeneficiaryRepository) Search(ctx context.Context, term string) ([]model.Beneficiary, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term)
	}
	return nil, nil
}

func (m *mockBeneficiaryRepository) CountContracts(ctx context.Context, id string) (int, error) {
	if m.countContractsFunc != nil {
		return m.countContractsFunc(ctx, id)
	}
	return 0, nil
}

type mockContractRepository struct {
	createWithScheduleFunc     func(ctx context.Context, c model.Contract, schedule []model.Installment) error
	updateFunc                 func(ctx context.Context, c model.Contract) error
	deleteUnpaidFunc           func(ctx context.Context, id string) error
	findByIDFunc               func(ctx context.Context, id string) (model.Contract, error)
	findViewFunc               func(ctx context.Context, id string) (model.ContractView, error)
	listFunc                   func(ctx context.Context) ([]model.ContractView, error)
	listActiveFunc             func(ctx context.Context) ([]model.ContractView, error)
	listByBeneficiaryFunc      func(ctx context.Context, beneficiaryID string) ([]model.Contract, error)
	findActiveByNationalIDFunc func(ctx context.Context, dni string) ([]model.ContractView, error)
	hasActiveContractFunc      func(ctx context.Context, beneficiaryID string) (bool, error)
	summaryFunc                func(ctx context.Context, id string) (model.ContractSummary, error)

	created   []model.Contract
	schedules [][]model.Installment
	updated   []model.Contract
	deleted   []string
}

func (m *mockContractRepository) CreateWithSchedule(ctx context.Context, c model.Contract, schedule []model.Installment) error {
	if m.createWithScheduleFunc != nil {
		return m.createWithScheduleFunc(ctx, c, schedule)
	}
	m.created = append(m.created, c)
	m.schedules = append(m.schedules, schedule)
	return nil
}

func (m *mockContractRepository) Update(ctx context.Context, c model.Contract) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	m.updated = append(m.updated, c)
	return nil
}

func (m *mockContractRepository) DeleteUnpaid(ctx context.Context, id string) error {
	if m.deleteUnpaidFunc != nil {
		return m.deleteUnpaidFunc(ctx, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockContractRepository) FindByID(ctx context.Context, id string) (model.Contract, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Contract{}, model.ErrContractNotFound
}

// FindView falls back to the last created contract so that create flows can
// re-read what they stored.
func (m *mockContractRepository) FindView(ctx context.Context, id string) (model.ContractView, error) {
	if m.findViewFunc != nil {
		return m.findViewFunc(ctx, id)
	}
	for _, c := range m.created {
		if c.ID() == id {
			return model.ContractView{Contract: c, BeneficiaryName: "Quispe, Rosa", BeneficiaryDNI: "45678912"}, nil
		}
	}
	for _, c := range m.updated {
		if c.ID() == id {
			return model.ContractView{Contract: c, BeneficiaryName: "Quispe, Rosa", BeneficiaryDNI: "45678912"}, nil
		}
	}
	return model.ContractView{}, model.ErrContractNotFound
}

func (m *mockContractRepository) List(ctx context.Context) ([]model.ContractView, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContractRepository) ListActive(ctx context.Context) ([]model.ContractView, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockContractRepository) ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]model.Contract, error) {
	if m.listByBeneficiaryFunc != nil {
		return m.listByBeneficiaryFunc(ctx, beneficiaryID)
	}
	return nil, nil
}

func (m *mockContractRepository) FindActiveByNationalID(ctx context.Context, dni string) ([]model.ContractView, error) {
	if m.findActiveByNationalIDFunc != nil {
		return m.findActiveByNationalIDFunc(ctx, dni)
	}
	return nil, nil
}

func (m *mockContractRepository) HasActiveContract(ctx context.Context, beneficiaryID string) (bool, error) {
	if m.hasActiveContractFunc != nil {
		return m.hasActiveContractFunc(ctx, beneficiaryID)
	}
	return false, nil
}

func (m *mockContractRepository) Summary(ctx context.Context, id string) (model.ContractSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, id)
	}
	return model.ContractSummary{}, model.ErrContractNotFound
}

type mockInstallmentRepository struct {
	findByIDFunc       func(ctx context.Context, id string) (model.Installment, error)
	listByContractFunc func(ctx context.Context, contractID string) ([]model.Installment, error)
	listPendingFunc    func(ctx context.Context, contractID string) ([]model.Installment, error)
	listPaidFunc       func(ctx context.Context) ([]model.PaymentView, error)
	listUpcomingFunc   func(ctx context.Context, limit int) ([]model.UpcomingInstallment, error)
	countPaidFunc      func(ctx context.Context, contractID string) (int, error)
	markPaidFunc       func(ctx context.Context, inst model.Installment) error
	clearPaymentFunc   func(ctx context.Context, inst model.Installment) error

	paid     []model.Installment
	cleared  []model.Installment
	limitArg int
}

func (m *mockInstallmentRepository) FindByID(ctx context.Context, id string) (model.Installment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Installment{}, model.ErrInstallmentNotFound
}

func (m *mockInstallmentRepository) ListByContract(ctx context.Context, contractID string) ([]model.Installment, error) {
	if m.listByContractFunc != nil {
		return m.listByContractFunc(ctx, contractID)
	}
	return nil, nil
}

func (m *mockInstallmentRepository) ListPending(ctx context.Context, contractID string) ([]model.Installment, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, contractID)
	}
	return nil, nil
}

func (m *mockInstallmentRepository) ListPaid(ctx context.Context) ([]model.PaymentView, error) {
	if m.listPaidFunc != nil {
		return m.listPaidFunc(ctx)
	}
	return nil, nil
}

func (m *mockInstallmentRepository) ListUpcoming(ctx context.Context, limit int) ([]model.UpcomingInstallment, error) {
	m.limitArg = limit
	if m.listUpcomingFunc != nil {
		return m.listUpcomingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockInstallmentRepository) CountPaid(ctx context.Context, contractID string) (int, error) {
	if m.countPaidFunc != nil {
		return m.countPaidFunc(ctx, contractID)
	}
	return 0, nil
}

func (m *mockInstallmentRepository) MarkPaid(ctx context.Context, inst model.Installment) error {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, inst)
	}
	m.paid = append(m.paid, inst)
	return nil
}

func (m *mockInstallmentRepository) ClearPayment(ctx context.Context, inst model.Installment) error {
	if m.clearPaymentFunc != nil {
		return m.clearPaymentFunc(ctx, inst)
	}
	m.cleared = append(m.cleared, inst)
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockReportWriter struct {
	written []model.PaymentView
	err     error
}

func (m *mockReportWriter) WritePayments(w io.Writer, payments []model.PaymentView) error {
	m.written = payments
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "report")
	return err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
