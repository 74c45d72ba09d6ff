package grpc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/model"
	loangrpc "github.com/prestamos/loan-service/internal/presentation/grpc"
	"github.com/prestamos/loan-service/internal/presentation/presentationtest"
)

func newHandler() (*loangrpc.LoanHandler, *presentationtest.Contracts, *presentationtest.Payments) {
	contracts, payments := &presentationtest.Contracts{}, &presentationtest.Payments{}
	return loangrpc.NewLoanHandler(contracts, payments), contracts, payments
}

func TestLoanHandler_CreateContract(t *testing.T) {
	t.Run("maps the request", func(t *testing.T) {
		h, contracts, _ := newHandler()
		contracts.CreateFunc = func(_ context.Context, req dto.ContractRequest) (dto.ContractResponse, error) {
			return dto.ContractResponse{ID: "c-1", PayDay: req.PayDay}, nil
		}

		reply, err := h.CreateContract(context.Background(), &loangrpc.CreateContractRequest{
			BeneficiaryID: "b-1",
			Principal:     "1200",
			MonthlyRate:   "0",
			StartDate:     "2024-01-01",
			PayDay:        15,
			TermCount:     12,
		})

		require.NoError(t, err)
		assert.Equal(t, "c-1", reply.Contract.ID)
		require.Len(t, contracts.Created, 1)
		assert.Equal(t, dto.ContractRequest{
			BeneficiaryID:      "b-1",
			Principal:          "1200",
			MonthlyRatePercent: "0",
			StartDate:          "2024-01-01",
			PayDay:             15,
			TermCount:          12,
		}, contracts.Created[0])
	})

	t.Run("active contract is a failed precondition", func(t *testing.T) {
		h, contracts, _ := newHandler()
		contracts.CreateFunc = func(context.Context, dto.ContractRequest) (dto.ContractResponse, error) {
			return dto.ContractResponse{}, model.ErrActiveContractExists
		}

		_, err := h.CreateContract(context.Background(), &loangrpc.CreateContractRequest{})

		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})
}

func TestLoanHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", apperror.Validation("term count must be between 1 and 255"), codes.InvalidArgument},
		{"not found", model.ErrContractNotFound, codes.NotFound},
		{"business rule", model.ErrContractAlreadyFinalized, codes.FailedPrecondition},
		{"persistence", apperror.Persistence("update contract", errors.New("conn closed")), codes.Internal},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, contracts, _ := newHandler()
			contracts.FinalizeFunc = func(context.Context, string) (dto.ContractResponse, error) {
				return dto.ContractResponse{}, tt.err
			}

			_, err := h.FinalizeContract(context.Background(), &loangrpc.ContractIDRequest{ContractID: "c-1"})

			assert.Equal(t, tt.want, status.Code(err))
		})
	}

	t.Run("internal detail is hidden", func(t *testing.T) {
		h, contracts, _ := newHandler()
		contracts.SummaryFunc = func(context.Context, string) (dto.ContractSummaryResponse, error) {
			return dto.ContractSummaryResponse{}, apperror.Persistence("summarize", errors.New("relation does not exist"))
		}

		_, err := h.GetContractSummary(context.Background(), &loangrpc.ContractIDRequest{ContractID: "c-1"})

		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.NotContains(t, st.Message(), "relation")
	})
}

func TestLoanHandler_RequiredIDs(t *testing.T) {
	h, _, _ := newHandler()
	ctx := context.Background()

	_, err := h.FinalizeContract(ctx, &loangrpc.ContractIDRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetContractSummary(ctx, &loangrpc.ContractIDRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.RegisterPayment(ctx, &loangrpc.RegisterPaymentRequest{Medium: "CASH"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.ReversePayment(ctx, &loangrpc.ReversePaymentRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLoanHandler_Payments(t *testing.T) {
	t.Run("late payment is flagged", func(t *testing.T) {
		h, _, payments := newHandler()
		payments.RegisterFunc = func(_ context.Context, req dto.RegisterPaymentRequest) (dto.PaymentResponse, error) {
			return dto.PaymentResponse{InstallmentResponse: dto.InstallmentResponse{
				ID:      req.InstallmentID,
				Penalty: decimal.RequireFromString("10.00"),
			}}, nil
		}

		reply, err := h.RegisterPayment(context.Background(), &loangrpc.RegisterPaymentRequest{InstallmentID: "i-1", Medium: "CASH"})

		require.NoError(t, err)
		assert.True(t, reply.Late)
		assert.Equal(t, "i-1", reply.Payment.ID)
	})

	t.Run("on-time payment is not late", func(t *testing.T) {
		h, _, _ := newHandler()

		reply, err := h.RegisterPayment(context.Background(), &loangrpc.RegisterPaymentRequest{InstallmentID: "i-1", Medium: "CASH"})

		require.NoError(t, err)
		assert.False(t, reply.Late)
	})

	t.Run("already paid", func(t *testing.T) {
		h, _, payments := newHandler()
		payments.RegisterFunc = func(context.Context, dto.RegisterPaymentRequest) (dto.PaymentResponse, error) {
			return dto.PaymentResponse{}, model.ErrInstallmentAlreadyPaid
		}

		_, err := h.RegisterPayment(context.Background(), &loangrpc.RegisterPaymentRequest{InstallmentID: "i-1", Medium: "CASH"})

		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})

	t.Run("reverse", func(t *testing.T) {
		h, _, payments := newHandler()

		_, err := h.ReversePayment(context.Background(), &loangrpc.ReversePaymentRequest{InstallmentID: "i-1"})

		require.NoError(t, err)
		assert.Equal(t, []string{"i-1"}, payments.Reversed)
	})
}
