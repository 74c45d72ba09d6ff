//go:build integration

package postgres_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
	"github.com/prestamos/loan-service/internal/infrastructure/persistence/postgres"
	"github.com/prestamos/loan-service/pkg/testutil"
)

type repos struct {
	beneficiaries *postgres.BeneficiaryRepo
	contracts     *postgres.ContractRepo
	installments  *postgres.InstallmentRepo
}

func setupRepos(t *testing.T) (*testutil.PostgresContainer, repos) {
	t.Helper()
	ctx := context.Background()

	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pc.Cleanup(t) })
	pc.RunMigrations(t)

	return pc, repos{
		beneficiaries: postgres.NewBeneficiaryRepo(pc.Pool, testutil.Lima),
		contracts:     postgres.NewContractRepo(pc.Pool, testutil.Lima),
		installments:  postgres.NewInstallmentRepo(pc.Pool, testutil.Lima),
	}
}

func now() time.Time {
	return time.Now().In(testutil.Lima).Truncate(time.Microsecond)
}

func saveBeneficiary(t *testing.T, r repos, dni string) model.Beneficiary {
	t.Helper()
	b, err := model.NewBeneficiary(model.BeneficiaryDetails{
		Surnames:   "Quispe",
		GivenNames: "Rosa",
		NationalID: dni,
		Phone:      "987654321",
	}, now())
	require.NoError(t, err)
	require.NoError(t, r.beneficiaries.Create(context.Background(), b))
	return b
}

func newContract(t *testing.T, beneficiaryID string, payDay int) (model.Contract, []model.Installment) {
	t.Helper()
	at := now()
	c, err := model.NewContract(model.ContractTerms{
		BeneficiaryID:      beneficiaryID,
		Principal:          decimal.NewFromInt(1200),
		MonthlyRatePercent: decimal.Zero,
		StartDate:          at,
		PayDay:             payDay,
		TermCount:          12,
	}, at)
	require.NoError(t, err)
	return c, c.GenerateSchedule(at)
}

func TestRepositories(t *testing.T) {
	pc, r := setupRepos(t)
	ctx := context.Background()

	t.Run("beneficiary round trip and duplicate DNI", func(t *testing.T) {
		pc.Truncate(t)
		b := saveBeneficiary(t, r, "45678912")

		got, err := r.beneficiaries.FindByNationalID(ctx, "45678912")
		require.NoError(t, err)
		assert.Equal(t, b.ID(), got.ID())
		assert.Equal(t, "Quispe, Rosa", got.FullName())

		dup, err := model.NewBeneficiary(model.BeneficiaryDetails{
			Surnames: "Mamani", GivenNames: "Luis", NationalID: "45678912", Phone: "912345678",
		}, now())
		require.NoError(t, err)
		assert.ErrorIs(t, r.beneficiaries.Create(ctx, dup), model.ErrDNIAlreadyRegistered)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		pc.Truncate(t)
		saveBeneficiary(t, r, "45678912")

		found, err := r.beneficiaries.Search(ctx, "quis")
		require.NoError(t, err)
		assert.Len(t, found, 1)

		none, err := r.beneficiaries.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("contract with schedule and one active rule", func(t *testing.T) {
		pc.Truncate(t)
		b := saveBeneficiary(t, r, "45678912")
		c, schedule := newContract(t, b.ID(), 15)

		require.NoError(t, r.contracts.CreateWithSchedule(ctx, c, schedule))

		view, err := r.contracts.FindView(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, "Quispe, Rosa", view.BeneficiaryName)
		assert.True(t, view.Contract.Principal().Equal(decimal.NewFromInt(1200)))

		list, err := r.installments.ListByContract(ctx, c.ID())
		require.NoError(t, err)
		require.Len(t, list, 12)
		for i, inst := range list {
			assert.Equal(t, i+1, inst.Sequence())
			assert.True(t, inst.Amount().Equal(decimal.NewFromInt(100)))
		}

		second, secondSchedule := newContract(t, b.ID(), 15)
		assert.ErrorIs(t, r.contracts.CreateWithSchedule(ctx, second, secondSchedule), model.ErrActiveContractExists)

		assert.ErrorIs(t, r.beneficiaries.Delete(ctx, b.ID()), model.ErrBeneficiaryHasContracts)
	})

	t.Run("concurrent creates leave one active contract", func(t *testing.T) {
		pc.Truncate(t)
		b := saveBeneficiary(t, r, "45678912")

		type attempt struct {
			contract model.Contract
			schedule []model.Installment
		}
		attempts := make([]attempt, 5)
		for i := range attempts {
			c, schedule := newContract(t, b.ID(), 10)
			attempts[i] = attempt{contract: c, schedule: schedule}
		}

		var wg sync.WaitGroup
		errs := make([]error, len(attempts))
		for i, a := range attempts {
			wg.Add(1)
			go func(i int, a attempt) {
				defer wg.Done()
				errs[i] = r.contracts.CreateWithSchedule(ctx, a.contract, a.schedule)
			}(i, a)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, model.ErrActiveContractExists)
		}
		assert.Equal(t, 1, ok)
	})

	t.Run("payment lifecycle and summary", func(t *testing.T) {
		pc.Truncate(t)
		b := saveBeneficiary(t, r, "45678912")
		c, schedule := newContract(t, b.ID(), 15)
		require.NoError(t, r.contracts.CreateWithSchedule(ctx, c, schedule))

		first := schedule[0]
		paid, err := first.Pay(valueobject.PaymentMediumCash, c.DueDate(1), now())
		require.NoError(t, err)
		require.NoError(t, r.installments.MarkPaid(ctx, paid))
		assert.ErrorIs(t, r.installments.MarkPaid(ctx, paid), model.ErrInstallmentAlreadyPaid)

		payments, err := r.installments.ListPaid(ctx)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, valueobject.PaymentMediumCash, payments[0].Installment.Medium())

		pending, err := r.installments.ListPending(ctx, c.ID())
		require.NoError(t, err)
		assert.Len(t, pending, 11)

		summary, err := r.contracts.Summary(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, 12, summary.TotalInstallments)
		assert.Equal(t, 1, summary.PaidInstallments)
		assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(100)))
		assert.True(t, summary.TotalPending.Equal(decimal.NewFromInt(1100)))

		assert.ErrorIs(t, r.contracts.DeleteUnpaid(ctx, c.ID()), model.ErrContractHasPayments)

		require.NoError(t, r.installments.ClearPayment(ctx, paid.Reverse(now())))
		count, err := r.installments.CountPaid(ctx, c.ID())
		require.NoError(t, err)
		assert.Zero(t, count)

		require.NoError(t, r.contracts.DeleteUnpaid(ctx, c.ID()))
		_, err = r.contracts.FindByID(ctx, c.ID())
		assert.ErrorIs(t, err, model.ErrContractNotFound)
		testutil.AssertKind(t, err, apperror.KindNotFound)
	})

	t.Run("upcoming orders by pay day then sequence", func(t *testing.T) {
		pc.Truncate(t)
		late := saveBeneficiary(t, r, "11111111")
		early := saveBeneficiary(t, r, "22222222")
		c1, s1 := newContract(t, late.ID(), 28)
		c2, s2 := newContract(t, early.ID(), 5)
		require.NoError(t, r.contracts.CreateWithSchedule(ctx, c1, s1))
		require.NoError(t, r.contracts.CreateWithSchedule(ctx, c2, s2))

		upcoming, err := r.installments.ListUpcoming(ctx, 3)
		require.NoError(t, err)
		require.Len(t, upcoming, 3)
		for i, u := range upcoming {
			assert.Equal(t, c2.ID(), u.Contract.ID())
			assert.Equal(t, i+1, u.Installment.Sequence())
		}

		finalized, err := c2.Finalize(now())
		require.NoError(t, err)
		require.NoError(t, r.contracts.Update(ctx, finalized))

		upcoming, err = r.installments.ListUpcoming(ctx, 1)
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, c1.ID(), upcoming[0].Contract.ID())
	})

	t.Run("ids are matched in any UUID spelling", func(t *testing.T) {
		pc.Truncate(t)
		b := saveBeneficiary(t, r, "33333333")
		c, schedule := newContract(t, b.ID(), 15)
		require.NoError(t, r.contracts.CreateWithSchedule(ctx, c, schedule))

		view, err := r.contracts.FindView(ctx, strings.ToUpper(c.ID()))
		require.NoError(t, err)
		assert.Equal(t, c.ID(), view.Contract.ID())

		_, err = r.contracts.FindView(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrContractNotFound)
		_, err = r.installments.FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrInstallmentNotFound)
	})
}
