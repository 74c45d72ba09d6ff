package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestamos/loan-service/internal/domain/model"
	pg "github.com/prestamos/loan-service/pkg/postgres"
)

// ContractRepo implements port.ContractRepository.
type ContractRepo struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewContractRepo creates a PostgreSQL-backed contract repository. Dates are
// returned in loc.
func NewContractRepo(pool *pgxpool.Pool, loc *time.Location) *ContractRepo {
	return &ContractRepo{pool: pool, loc: loc}
}

// CreateWithSchedule inserts the contract and its installments in one
// transaction. The beneficiary row is locked so that two concurrent creates
// for the same beneficiary serialize; the partial unique index on ACTIVE
// contracts backs the same rule.
func (r *ContractRepo) CreateWithSchedule(ctx context.Context, c model.Contract, schedule []model.Installment) error {
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// 1. Lock the beneficiary.
		var locked string
		err := tx.QueryRow(ctx, `SELECT id FROM beneficiaries WHERE id = $1 FOR UPDATE`, c.BeneficiaryID()).Scan(&locked)
		if err != nil {
			return notFound(err, model.ErrBeneficiaryNotFound, "lock beneficiary")
		}

		// 2. Re-check the one-active-contract rule under the lock.
		var active bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM contracts WHERE beneficiary_id = $1 AND status = 'ACTIVE')
		`, c.BeneficiaryID()).Scan(&active)
		if err != nil {
			return translate(err, "check active contract")
		}
		if active {
			return model.ErrActiveContractExists
		}

		// 3. Insert the contract.
		_, err = tx.Exec(ctx, `
			INSERT INTO contracts (
				id, beneficiary_id, principal, monthly_rate, start_date,
				pay_day, term_count, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			c.ID(), c.BeneficiaryID(), c.Principal(), c.MonthlyRatePercent(), pgDate(c.StartDate()),
			c.PayDay(), c.TermCount(), c.Status().String(), c.CreatedAt(), c.UpdatedAt(),
		)
		if err != nil {
			return translate(err, "insert contract")
		}

		// 4. Insert the schedule in one round trip.
		batch := &pgx.Batch{}
		for _, inst := range schedule {
			batch.Queue(`
				INSERT INTO installments (id, contract_id, sequence, amount, penalty, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, inst.ID(), inst.ContractID(), inst.Sequence(), inst.Amount(), inst.Penalty(), inst.CreatedAt())
		}
		br := tx.SendBatch(ctx, batch)
		for range schedule {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return translate(err, "insert installment")
			}
		}
		if err := br.Close(); err != nil {
			return translate(err, "insert installments")
		}
		return nil
	})
}

// Update stores new terms and status.
func (r *ContractRepo) Update(ctx context.Context, c model.Contract) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contracts
		SET beneficiary_id = $2, principal = $3, monthly_rate = $4, start_date = $5,
		    pay_day = $6, term_count = $7, status = $8, updated_at = $9
		WHERE id = $1
	`,
		c.ID(), c.BeneficiaryID(), c.Principal(), c.MonthlyRatePercent(), pgDate(c.StartDate()),
		c.PayDay(), c.TermCount(), c.Status().String(), c.UpdatedAt(),
	)
	if err != nil {
		if _, ok := pg.ForeignKeyViolation(err); ok {
			return model.ErrBeneficiaryNotFound
		}
		return translate(err, "update contract")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContractNotFound
	}
	return nil
}

// DeleteUnpaid removes the contract and its installments. Only pending
// installments are deleted; if any paid row remains afterwards (including one
// paid concurrently) the transaction is rolled back.
func (r *ContractRepo) DeleteUnpaid(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return model.ErrContractNotFound
	}
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(ctx, `SELECT id FROM contracts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			return notFound(err, model.ErrContractNotFound, "lock contract")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE contract_id = $1 AND paid_at IS NULL`, id); err != nil {
			return translate(err, "delete installments")
		}

		var remaining int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM installments WHERE contract_id = $1`, id).Scan(&remaining); err != nil {
			return translate(err, "count remaining installments")
		}
		if remaining > 0 {
			return model.ErrContractHasPayments
		}

		if _, err := tx.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id); err != nil {
			return translate(err, "delete contract")
		}
		return nil
	})
}

// FindByID retrieves a contract.
func (r *ContractRepo) FindByID(ctx context.Context, id string) (model.Contract, error) {
	v, err := r.FindView(ctx, id)
	if err != nil {
		return model.Contract{}, err
	}
	return v.Contract, nil
}

// FindView retrieves a contract with its beneficiary's display fields.
func (r *ContractRepo) FindView(ctx context.Context, id string) (model.ContractView, error) {
	id, ok := canonicalID(id)
	if !ok {
		return model.ContractView{}, model.ErrContractNotFound
	}
	var cr contractRow
	err := r.pool.QueryRow(ctx, `SELECT `+contractSelect+contractFrom+` WHERE c.id = $1`, id).Scan(cr.dest()...)
	if err != nil {
		return model.ContractView{}, notFound(err, model.ErrContractNotFound, "find contract")
	}
	return cr.view(r.loc)
}

// List returns every contract, most recent start date first.
func (r *ContractRepo) List(ctx context.Context) ([]model.ContractView, error) {
	return r.scanViews(ctx, `SELECT `+contractSelect+contractFrom+`
		ORDER BY c.start_date DESC, c.created_at DESC`)
}

// ListActive returns ACTIVE contracts, most recent start date first.
func (r *ContractRepo) ListActive(ctx context.Context) ([]model.ContractView, error) {
	return r.scanViews(ctx, `SELECT `+contractSelect+contractFrom+`
		WHERE c.status = 'ACTIVE'
		ORDER BY c.start_date DESC, c.created_at DESC`)
}

// ListByBeneficiary returns the contracts of one beneficiary.
func (r *ContractRepo) ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]model.Contract, error) {
	beneficiaryID, ok := canonicalID(beneficiaryID)
	if !ok {
		return []model.Contract{}, nil
	}
	views, err := r.scanViews(ctx, `SELECT `+contractSelect+contractFrom+`
		WHERE c.beneficiary_id = $1
		ORDER BY c.start_date DESC, c.created_at DESC`, beneficiaryID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Contract, 0, len(views))
	for _, v := range views {
		out = append(out, v.Contract)
	}
	return out, nil
}

// FindActiveByNationalID returns the ACTIVE contracts of the beneficiary
// holding dni. There is at most one.
func (r *ContractRepo) FindActiveByNationalID(ctx context.Context, dni string) ([]model.ContractView, error) {
	return r.scanViews(ctx, `SELECT `+contractSelect+contractFrom+`
		WHERE b.dni = $1 AND c.status = 'ACTIVE'
		ORDER BY c.created_at DESC`, dni)
}

// HasActiveContract reports whether the beneficiary holds an ACTIVE contract.
func (r *ContractRepo) HasActiveContract(ctx context.Context, beneficiaryID string) (bool, error) {
	beneficiaryID, ok := canonicalID(beneficiaryID)
	if !ok {
		return false, nil
	}
	var active bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM contracts WHERE beneficiary_id = $1 AND status = 'ACTIVE')
	`, beneficiaryID).Scan(&active)
	if err != nil {
		return false, translate(err, "check active contract")
	}
	return active, nil
}

// Summary aggregates the installments of a contract. Totals are zero for a
// contract without installments.
func (r *ContractRepo) Summary(ctx context.Context, id string) (model.ContractSummary, error) {
	view, err := r.FindView(ctx, id)
	if err != nil {
		return model.ContractSummary{}, err
	}

	s := model.ContractSummary{ContractView: view}
	err = r.pool.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE paid_at IS NOT NULL),
			count(*) FILTER (WHERE paid_at IS NULL),
			COALESCE(SUM(amount + penalty) FILTER (WHERE paid_at IS NOT NULL), 0),
			COALESCE(SUM(amount) FILTER (WHERE paid_at IS NULL), 0),
			COALESCE(SUM(penalty), 0)
		FROM installments
		WHERE contract_id = $1
	`, view.Contract.ID()).Scan(
		&s.TotalInstallments, &s.PaidInstallments, &s.PendingInstallments,
		&s.TotalPaid, &s.TotalPending, &s.TotalPenalties,
	)
	if err != nil {
		return model.ContractSummary{}, translate(err, "summarize installments")
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

func (r *ContractRepo) scanViews(ctx context.Context, query string, args ...any) ([]model.ContractView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "query contracts")
	}
	defer rows.Close()

	var result []model.ContractView
	for rows.Next() {
		var cr contractRow
		if err := rows.Scan(cr.dest()...); err != nil {
			return nil, translate(err, "scan contract")
		}
		v, err := cr.view(r.loc)
		if err != nil {
			return nil, translate(err, "decode contract")
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate contracts")
	}
	return result, nil
}

// pgDate strips the location so that a DATE parameter keeps the calendar
// fields instead of being shifted to UTC.
func pgDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
