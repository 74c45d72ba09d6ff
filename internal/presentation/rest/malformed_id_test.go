package rest_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/usecase"
	"github.com/prestamos/loan-service/internal/infrastructure/adapter"
	"github.com/prestamos/loan-service/internal/infrastructure/export"
	"github.com/prestamos/loan-service/internal/infrastructure/messaging"
	"github.com/prestamos/loan-service/internal/infrastructure/persistence/postgres"
	"github.com/prestamos/loan-service/internal/presentation"
	"github.com/prestamos/loan-service/internal/presentation/rest"
)

// Routes run against the real services and repositories. The repositories
// have no pool, so a malformed id must be answered before any query runs.
func TestRoutes_MalformedIDIsNotFound(t *testing.T) {
	deps := usecase.Dependencies{
		Beneficiaries: postgres.NewBeneficiaryRepo(nil, time.UTC),
		Contracts:     postgres.NewContractRepo(nil, time.UTC),
		Installments:  postgres.NewInstallmentRepo(nil, time.UTC),
		Publisher:     messaging.NewLogEventPublisher(zap.NewNop()),
		Reports:       export.NewXLSXPaymentWriter(),
		Clock:         adapter.NewSystemClock(time.UTC),
	}
	f := &fixture{router: rest.NewRouter(rest.RouterConfig{
		Services: presentation.Services{
			Beneficiaries: usecase.NewBeneficiaryService(deps),
			Contracts:     usecase.NewContractService(deps),
			Payments:      usecase.NewPaymentService(deps),
		},
		Logger: zap.NewNop(),
	})}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"contract", http.MethodGet, "/api/contracts/abc", ""},
		{"contract summary", http.MethodGet, "/api/contracts/summary/abc", ""},
		{"contract schedule", http.MethodGet, "/api/contracts/schedule/abc", ""},
		{"beneficiary", http.MethodGet, "/api/beneficiaries/abc", ""},
		{"register payment", http.MethodPost, "/api/payments/abc", `{"medium":"CASH"}`},
		{"reverse payment", http.MethodPut, "/api/payments/reverse/abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.False(t, env.Success)
		})
	}
}
