package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestamos/loan-service/internal/domain/model"
)

// InstallmentRepo implements port.InstallmentRepository.
type InstallmentRepo struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewInstallmentRepo creates a PostgreSQL-backed installment repository.
func NewInstallmentRepo(pool *pgxpool.Pool, loc *time.Location) *InstallmentRepo {
	return &InstallmentRepo{pool: pool, loc: loc}
}

// FindByID retrieves an installment.
func (r *InstallmentRepo) FindByID(ctx context.Context, id string) (model.Installment, error) {
	id, ok := canonicalID(id)
	if !ok {
		return model.Installment{}, model.ErrInstallmentNotFound
	}
	var ir installmentRow
	err := r.pool.QueryRow(ctx, `SELECT `+installmentColumns+` FROM installments i WHERE i.id = $1`, id).Scan(ir.dest()...)
	if err != nil {
		return model.Installment{}, notFound(err, model.ErrInstallmentNotFound, "find installment")
	}
	return ir.installment(r.loc)
}

// ListByContract returns the full schedule ordered by sequence.
func (r *InstallmentRepo) ListByContract(ctx context.Context, contractID string) ([]model.Installment, error) {
	contractID, ok := canonicalID(contractID)
	if !ok {
		return []model.Installment{}, nil
	}
	return r.scanMany(ctx, `
		SELECT `+installmentColumns+`
		FROM installments i
		WHERE i.contract_id = $1
		ORDER BY i.sequence
	`, contractID)
}

// ListPending returns the unpaid installments of a contract ordered by
// sequence.
func (r *InstallmentRepo) ListPending(ctx context.Context, contractID string) ([]model.Installment, error) {
	contractID, ok := canonicalID(contractID)
	if !ok {
		return []model.Installment{}, nil
	}
	return r.scanMany(ctx, `
		SELECT `+installmentColumns+`
		FROM installments i
		WHERE i.contract_id = $1 AND i.paid_at IS NULL
		ORDER BY i.sequence
	`, contractID)
}

// ListPaid returns every paid installment, most recent payment first.
func (r *InstallmentRepo) ListPaid(ctx context.Context) ([]model.PaymentView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+installmentColumns+`,`+contractSelect+`
		FROM installments i
		JOIN contracts c ON c.id = i.contract_id
		JOIN beneficiaries b ON b.id = c.beneficiary_id
		WHERE i.paid_at IS NOT NULL
		ORDER BY i.paid_at DESC, i.sequence
	`)
	if err != nil {
		return nil, translate(err, "query payments")
	}
	defer rows.Close()

	var result []model.PaymentView
	for rows.Next() {
		var (
			ir installmentRow
			cr contractRow
		)
		if err := rows.Scan(append(ir.dest(), cr.dest()...)...); err != nil {
			return nil, translate(err, "scan payment")
		}
		inst, view, err := r.decodeJoined(&ir, &cr)
		if err != nil {
			return nil, translate(err, "decode payment")
		}
		result = append(result, model.PaymentView{
			Installment:     inst,
			Contract:        view.Contract,
			BeneficiaryName: view.BeneficiaryName,
			BeneficiaryDNI:  view.BeneficiaryDNI,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate payments")
	}
	return result, nil
}

// ListUpcoming returns pending installments of ACTIVE contracts ordered by
// contract pay-day, then sequence. A non-positive limit returns every row.
func (r *InstallmentRepo) ListUpcoming(ctx context.Context, limit int) ([]model.UpcomingInstallment, error) {
	query := `
		SELECT ` + installmentColumns + `,` + contractSelect + `
		FROM installments i
		JOIN contracts c ON c.id = i.contract_id
		JOIN beneficiaries b ON b.id = c.beneficiary_id
		WHERE i.paid_at IS NULL AND c.status = 'ACTIVE'
		ORDER BY c.pay_day, i.sequence, b.surnames, b.given_names`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "query upcoming installments")
	}
	defer rows.Close()

	var result []model.UpcomingInstallment
	for rows.Next() {
		var (
			ir installmentRow
			cr contractRow
		)
		if err := rows.Scan(append(ir.dest(), cr.dest()...)...); err != nil {
			return nil, translate(err, "scan upcoming installment")
		}
		inst, view, err := r.decodeJoined(&ir, &cr)
		if err != nil {
			return nil, translate(err, "decode upcoming installment")
		}
		result = append(result, model.UpcomingInstallment{
			Installment:     inst,
			Contract:        view.Contract,
			BeneficiaryName: view.BeneficiaryName,
			BeneficiaryDNI:  view.BeneficiaryDNI,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate upcoming installments")
	}
	return result, nil
}

// CountPaid returns how many installments of the contract are paid.
func (r *InstallmentRepo) CountPaid(ctx context.Context, contractID string) (int, error) {
	contractID, ok := canonicalID(contractID)
	if !ok {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM installments WHERE contract_id = $1 AND paid_at IS NOT NULL
	`, contractID).Scan(&n)
	if err != nil {
		return 0, translate(err, "count paid installments")
	}
	return n, nil
}

// MarkPaid records the payment. The update only matches a pending row, so of
// two concurrent payments exactly one succeeds.
func (r *InstallmentRepo) MarkPaid(ctx context.Context, inst model.Installment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE installments
		SET paid_at = $2, penalty = $3, medium = $4
		WHERE id = $1 AND paid_at IS NULL
	`, inst.ID(), inst.PaidAt(), inst.Penalty(), inst.Medium().String())
	if err != nil {
		return translate(err, "mark installment paid")
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM installments WHERE id = $1)`, inst.ID()).Scan(&exists); err != nil {
		return translate(err, "check installment")
	}
	if !exists {
		return model.ErrInstallmentNotFound
	}
	return model.ErrInstallmentAlreadyPaid
}

// ClearPayment returns the installment to pending.
func (r *InstallmentRepo) ClearPayment(ctx context.Context, inst model.Installment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE installments
		SET paid_at = NULL, penalty = 0, medium = NULL
		WHERE id = $1
	`, inst.ID())
	if err != nil {
		return translate(err, "clear payment")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInstallmentNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

func (r *InstallmentRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Installment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "query installments")
	}
	defer rows.Close()

	var result []model.Installment
	for rows.Next() {
		var ir installmentRow
		if err := rows.Scan(ir.dest()...); err != nil {
			return nil, translate(err, "scan installment")
		}
		inst, err := ir.installment(r.loc)
		if err != nil {
			return nil, translate(err, "decode installment")
		}
		result = append(result, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate installments")
	}
	return result, nil
}

func (r *InstallmentRepo) decodeJoined(ir *installmentRow, cr *contractRow) (model.Installment, model.ContractView, error) {
	inst, err := ir.installment(r.loc)
	if err != nil {
		return model.Installment{}, model.ContractView{}, err
	}
	view, err := cr.view(r.loc)
	if err != nil {
		return model.Installment{}, model.ContractView{}, err
	}
	return inst, view, nil
}
