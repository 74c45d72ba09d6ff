package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/infrastructure/persistence/postgres"
)

// A nil pool panics on use, so these pass only if malformed ids never reach
// the database.
func TestRepositories_MalformedIDs(t *testing.T) {
	ctx := context.Background()
	beneficiaries := postgres.NewBeneficiaryRepo(nil, time.UTC)
	contracts := postgres.NewContractRepo(nil, time.UTC)
	installments := postgres.NewInstallmentRepo(nil, time.UTC)

	for _, id := range []string{"abc", "", "1", "00000000-0000-0000-0000-00000000000g"} {
		t.Run("id "+id, func(t *testing.T) {
			_, err := beneficiaries.FindByID(ctx, id)
			assert.ErrorIs(t, err, model.ErrBeneficiaryNotFound)
			assert.ErrorIs(t, beneficiaries.Delete(ctx, id), model.ErrBeneficiaryNotFound)
			n, err := beneficiaries.CountContracts(ctx, id)
			require.NoError(t, err)
			assert.Zero(t, n)

			_, err = contracts.FindByID(ctx, id)
			assert.ErrorIs(t, err, model.ErrContractNotFound)
			_, err = contracts.FindView(ctx, id)
			assert.ErrorIs(t, err, model.ErrContractNotFound)
			_, err = contracts.Summary(ctx, id)
			assert.ErrorIs(t, err, model.ErrContractNotFound)
			assert.ErrorIs(t, contracts.DeleteUnpaid(ctx, id), model.ErrContractNotFound)
			active, err := contracts.HasActiveContract(ctx, id)
			require.NoError(t, err)
			assert.False(t, active)
			list, err := contracts.ListByBeneficiary(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, list)

			_, err = installments.FindByID(ctx, id)
			assert.ErrorIs(t, err, model.ErrInstallmentNotFound)
			schedule, err := installments.ListByContract(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, schedule)
			pending, err := installments.ListPending(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, pending)
			paid, err := installments.CountPaid(ctx, id)
			require.NoError(t, err)
			assert.Zero(t, paid)
		})
	}
}
