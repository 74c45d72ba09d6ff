// Package presentation holds what the REST, web and gRPC transports share:
// the application services they drive and the mapping of failures onto
// transport status codes.
package presentation

import (
	"context"
	"io"
	"net/http"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
)

// Beneficiaries is implemented by usecase.BeneficiaryService.
type Beneficiaries interface {
	Register(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error)
	Update(ctx context.Context, req dto.BeneficiaryRequest) (dto.BeneficiaryResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BeneficiaryResponse, error)
	List(ctx context.Context, req dto.SearchBeneficiariesRequest) ([]dto.BeneficiaryResponse, error)
	FindByDNI(ctx context.Context, dni string) (dto.BeneficiaryLookupResponse, error)
}

// Contracts is implemented by usecase.ContractService.
type Contracts interface {
	Create(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error)
	Update(ctx context.Context, req dto.ContractRequest) (dto.ContractResponse, error)
	Finalize(ctx context.Context, id string) (dto.ContractResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.ContractResponse, error)
	List(ctx context.Context) ([]dto.ContractResponse, error)
	ListActive(ctx context.Context) ([]dto.ContractResponse, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]dto.ContractResponse, error)
	Summary(ctx context.Context, id string) (dto.ContractSummaryResponse, error)
	Schedule(ctx context.Context, id string) (dto.ContractScheduleResponse, error)
	Preview(req dto.SchedulePreviewRequest) (dto.SchedulePreviewResponse, error)
}

// Payments is implemented by usecase.PaymentService.
type Payments interface {
	Register(ctx context.Context, req dto.RegisterPaymentRequest) (dto.PaymentResponse, error)
	Reverse(ctx context.Context, installmentID string) (dto.InstallmentResponse, error)
	Paid(ctx context.Context) ([]dto.PaymentResponse, error)
	Pending(ctx context.Context, contractID string) ([]dto.InstallmentResponse, error)
	Upcoming(ctx context.Context, limit int) ([]dto.PaymentResponse, error)
	ActiveContractByDNI(ctx context.Context, dni string) (dto.ActiveContractLookupResponse, error)
	Export(ctx context.Context, w io.Writer) error
}

// Services bundles the three application services.
type Services struct {
	Beneficiaries Beneficiaries
	Contracts     Contracts
	Payments      Payments
}

// InternalErrorMessage replaces the text of persistence and unclassified
// failures before they reach a client.
const InternalErrorMessage = "internal error, please try again later"

// HTTPStatus maps a failure onto an HTTP status code.
func HTTPStatus(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindBusinessRule:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text a client may see for err.
func PublicMessage(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindNotFound, apperror.KindBusinessRule:
		return apperror.MessageOf(err)
	default:
		return InternalErrorMessage
	}
}
