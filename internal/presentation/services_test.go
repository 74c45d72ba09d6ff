package presentation_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/presentation"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperror.Validation("pay day must be between 1 and 31"), http.StatusBadRequest},
		{"not found", fmt.Errorf("find contract: %w", model.ErrContractNotFound), http.StatusNotFound},
		{"business rule", model.ErrInstallmentAlreadyPaid, http.StatusConflict},
		{"persistence", apperror.Persistence("insert contract", errors.New("conn reset")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, presentation.HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	t.Run("domain message passes through wrapping", func(t *testing.T) {
		err := fmt.Errorf("register payment: %w", model.ErrInstallmentAlreadyPaid)
		assert.Equal(t, model.ErrInstallmentAlreadyPaid.Message, presentation.PublicMessage(err))
	})

	t.Run("persistence detail is hidden", func(t *testing.T) {
		err := apperror.Persistence("insert contract", errors.New("password authentication failed"))
		assert.Equal(t, presentation.InternalErrorMessage, presentation.PublicMessage(err))
	})

	t.Run("unclassified detail is hidden", func(t *testing.T) {
		assert.Equal(t, presentation.InternalErrorMessage, presentation.PublicMessage(errors.New("nil pointer")))
	})
}
