package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/infrastructure/flash"
	"github.com/prestamos/loan-service/internal/presentation/presentationtest"
	"github.com/prestamos/loan-service/internal/presentation/web"
	"github.com/prestamos/loan-service/pkg/money"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router        *gin.Engine
	beneficiaries *presentationtest.Beneficiaries
	contracts     *presentationtest.Contracts
	payments      *presentationtest.Payments
	cookies       []*http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	svc, b, c, p := presentationtest.Services()
	h, err := web.NewHandler(svc, flash.NewMemoryStore(time.Minute), money.Default, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	h.Register(router)
	return &fixture{router: router, beneficiaries: b, contracts: c, payments: p}
}

// do sends the request with the cookies collected so far, like a browser.
func (f *fixture) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range f.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	f.cookies = append(f.cookies, rec.Result().Cookies()...)
	return rec
}

func TestPostRedirectGetFlash(t *testing.T) {
	t.Run("success message is shown once", func(t *testing.T) {
		f := newFixture(t)
		f.beneficiaries.RegisterFunc = func(_ context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error) {
			return dto.BeneficiaryResponse{ID: "b-1", FullName: req.Surnames + ", " + req.GivenNames}, nil
		}

		rec := f.do(http.MethodPost, "/beneficiaries", url.Values{
			"surnames":    {"Quispe Mamani"},
			"given_names": {"Rosa"},
			"dni":         {"45678912"},
			"phone":       {"987654321"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/beneficiaries", rec.Header().Get("Location"))
		require.NotEmpty(t, f.cookies, "a session cookie is issued")
		assert.Equal(t, web.SessionCookie, f.cookies[0].Name)

		require.Len(t, f.beneficiaries.Registered, 1)
		assert.Equal(t, "45678912", f.beneficiaries.Registered[0].NationalID)

		page := f.do(http.MethodGet, "/beneficiaries", nil)
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "Beneficiary Quispe Mamani, Rosa registered")
		assert.Contains(t, page.Body.String(), `class="flash success"`)

		again := f.do(http.MethodGet, "/beneficiaries", nil)
		assert.NotContains(t, again.Body.String(), "registered")
	})

	t.Run("failure message is shown as an error", func(t *testing.T) {
		f := newFixture(t)
		f.contracts.FinalizeFunc = func(context.Context, string) (dto.ContractResponse, error) {
			return dto.ContractResponse{}, model.ErrContractAlreadyFinalized
		}

		rec := f.do(http.MethodPost, "/contracts/c-1/finalize", url.Values{})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, []string{"c-1"}, f.contracts.Finalized)

		page := f.do(http.MethodGet, "/contracts", nil)
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), `class="flash error"`)
		assert.Contains(t, page.Body.String(), model.ErrContractAlreadyFinalized.Message)
	})

	t.Run("storage failure is not leaked", func(t *testing.T) {
		f := newFixture(t)
		f.contracts.DeleteFunc = func(context.Context, string) error {
			return apperror.Persistence("delete contract", errors.New("deadlock detected"))
		}

		f.do(http.MethodPost, "/contracts/c-1/delete", url.Values{})
		page := f.do(http.MethodGet, "/contracts", nil)

		assert.NotContains(t, page.Body.String(), "deadlock")
		assert.Contains(t, page.Body.String(), "internal error")
	})
}

func TestContractForms(t *testing.T) {
	t.Run("create binds the form and reports the installment", func(t *testing.T) {
		f := newFixture(t)
		f.contracts.CreateFunc = func(context.Context, dto.ContractRequest) (dto.ContractResponse, error) {
			return dto.ContractResponse{Installment: decimal.RequireFromString("1066.2")}, nil
		}

		f.do(http.MethodPost, "/contracts", url.Values{
			"beneficiary_id": {"b-1"},
			"principal":      {"12000"},
			"monthly_rate":   {"1.5"},
			"start_date":     {"2024-01-15"},
			"pay_day":        {"31"},
			"term_count":     {"12"},
		})

		require.Len(t, f.contracts.Created, 1)
		assert.Equal(t, dto.ContractRequest{
			BeneficiaryID:      "b-1",
			Principal:          "12000",
			MonthlyRatePercent: "1.5",
			StartDate:          "2024-01-15",
			PayDay:             31,
			TermCount:          12,
		}, f.contracts.Created[0])

		page := f.do(http.MethodGet, "/contracts", nil)
		assert.Contains(t, page.Body.String(), "S/ 1,066.20")
	})

	t.Run("update takes the id from the path", func(t *testing.T) {
		f := newFixture(t)

		f.do(http.MethodPost, "/contracts/c-9/update", url.Values{"principal": {"900"}, "pay_day": {"5"}})

		require.Len(t, f.contracts.Updated, 1)
		assert.Equal(t, "c-9", f.contracts.Updated[0].ID)
		assert.Equal(t, 5, f.contracts.Updated[0].PayDay)
	})

	t.Run("non-numeric pay day is rejected before the service", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/contracts", url.Values{"pay_day": {"last"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Empty(t, f.contracts.Created)
		page := f.do(http.MethodGet, "/contracts", nil)
		assert.Contains(t, page.Body.String(), "invalid form data")
	})
}

func TestPages(t *testing.T) {
	t.Run("contracts list renders amounts", func(t *testing.T) {
		f := newFixture(t)
		f.contracts.ListFunc = func(context.Context) ([]dto.ContractResponse, error) {
			return []dto.ContractResponse{{
				ID:                 "c-1",
				BeneficiaryName:    "Quispe Mamani, Rosa",
				Principal:          decimal.NewFromInt(12000),
				MonthlyRatePercent: decimal.RequireFromString("1.5"),
				Installment:        decimal.RequireFromString("1100.16"),
				Status:             "ACTIVE",
			}}, nil
		}

		page := f.do(http.MethodGet, "/contracts", nil)

		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, "Quispe Mamani, Rosa")
		assert.Contains(t, body, "S/ 12,000.00")
		assert.Contains(t, body, "1.50%")
		assert.Contains(t, body, `action="/contracts/c-1/finalize"`)
	})

	t.Run("active filter", func(t *testing.T) {
		f := newFixture(t)
		called := false
		f.contracts.ListActiveFunc = func(context.Context) ([]dto.ContractResponse, error) {
			called = true
			return nil, nil
		}

		page := f.do(http.MethodGet, "/contracts?active=1", nil)

		assert.Equal(t, http.StatusOK, page.Code)
		assert.True(t, called)
	})

	t.Run("contract page shows schedule and summary", func(t *testing.T) {
		f := newFixture(t)
		paidAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		f.contracts.SummaryFunc = func(_ context.Context, id string) (dto.ContractSummaryResponse, error) {
			return dto.ContractSummaryResponse{
				Contract:          dto.ContractResponse{ID: id, Status: "ACTIVE", BeneficiaryName: "Quispe Mamani, Rosa"},
				TotalInstallments: 2,
				PaidInstallments:  1,
				TotalPenalties:    decimal.NewFromInt(10),
			}, nil
		}
		f.contracts.ScheduleFunc = func(context.Context, string) (dto.ContractScheduleResponse, error) {
			return dto.ContractScheduleResponse{Installments: []dto.InstallmentResponse{
				{ID: "i-1", Sequence: 1, DueDate: "2024-02-15", Status: "PAID", PaidAt: &paidAt, Penalty: decimal.NewFromInt(10)},
				{ID: "i-2", Sequence: 2, DueDate: "2024-03-15", Status: "PENDING"},
			}}, nil
		}

		page := f.do(http.MethodGet, "/contracts/c-1", nil)

		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, "2024-02-15")
		assert.Contains(t, body, "2024-03-01 10:30")
		assert.Contains(t, body, `action="/payments/i-1/reverse"`)
		assert.Contains(t, body, `action="/payments/i-2"`)
	})

	t.Run("unknown contract is a plain not found", func(t *testing.T) {
		f := newFixture(t)
		f.contracts.SummaryFunc = func(context.Context, string) (dto.ContractSummaryResponse, error) {
			return dto.ContractSummaryResponse{}, model.ErrContractNotFound
		}

		page := f.do(http.MethodGet, "/contracts/missing", nil)

		assert.Equal(t, http.StatusNotFound, page.Code)
	})

	t.Run("payments page with DNI lookup", func(t *testing.T) {
		f := newFixture(t)
		f.payments.ActiveContractByDNIFunc = func(_ context.Context, dni string) (dto.ActiveContractLookupResponse, error) {
			assert.Equal(t, "45678912", dni)
			return dto.ActiveContractLookupResponse{
				Contract: dto.ContractResponse{BeneficiaryName: "Quispe Mamani, Rosa", Principal: decimal.NewFromInt(1200), TermCount: 12},
				Pending:  []dto.InstallmentResponse{{ID: "i-3", Sequence: 3, DueDate: "2024-04-15", Amount: decimal.NewFromInt(100)}},
			}, nil
		}

		page := f.do(http.MethodGet, "/payments?dni=45678912", nil)

		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, "2024-04-15")
		assert.Contains(t, body, `action="/payments/i-3"`)
		assert.Contains(t, body, `name="dni" value="45678912"`)
	})

	t.Run("payments page reports a DNI without active contract inline", func(t *testing.T) {
		f := newFixture(t)
		f.payments.ActiveContractByDNIFunc = func(context.Context, string) (dto.ActiveContractLookupResponse, error) {
			return dto.ActiveContractLookupResponse{}, apperror.NotFound("no active contract for DNI 45678912")
		}

		page := f.do(http.MethodGet, "/payments?dni=45678912", nil)

		assert.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "no active contract for DNI 45678912")
	})
}

func TestPaymentForms(t *testing.T) {
	t.Run("late payment reports the penalty and returns to the lookup", func(t *testing.T) {
		f := newFixture(t)
		f.payments.RegisterFunc = func(context.Context, dto.RegisterPaymentRequest) (dto.PaymentResponse, error) {
			return dto.PaymentResponse{InstallmentResponse: dto.InstallmentResponse{Penalty: decimal.NewFromInt(10)}}, nil
		}

		rec := f.do(http.MethodPost, "/payments/i-3", url.Values{"medium": {"DEPOSIT"}, "dni": {"45678912"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/payments?dni=45678912", rec.Header().Get("Location"))
		require.Len(t, f.payments.Registered, 1)
		assert.Equal(t, dto.RegisterPaymentRequest{InstallmentID: "i-3", Medium: "DEPOSIT"}, f.payments.Registered[0])

		page := f.do(http.MethodGet, "/payments", nil)
		assert.Contains(t, page.Body.String(), "late penalty of S/ 10.00")
	})

	t.Run("reverse", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/payments/i-3/reverse", url.Values{})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/payments", rec.Header().Get("Location"))
		assert.Equal(t, []string{"i-3"}, f.payments.Reversed)
	})

	t.Run("export", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/payments/export", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "payments.xlsx")
	})
}
