package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
	pg "github.com/prestamos/loan-service/pkg/postgres"
)

const beneficiaryColumns = `id, surnames, given_names, dni, phone, address, created_at, updated_at`

// BeneficiaryRepo implements port.BeneficiaryRepository.
type BeneficiaryRepo struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewBeneficiaryRepo creates a PostgreSQL-backed beneficiary repository.
// Timestamps are returned in loc.
func NewBeneficiaryRepo(pool *pgxpool.Pool, loc *time.Location) *BeneficiaryRepo {
	return &BeneficiaryRepo{pool: pool, loc: loc}
}

// Create inserts a new beneficiary. A duplicate DNI fails with
// model.ErrDNIAlreadyRegistered.
func (r *BeneficiaryRepo) Create(ctx context.Context, b model.Beneficiary) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO beneficiaries (`+beneficiaryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		b.ID(), b.Surnames(), b.GivenNames(), b.NationalID().String(),
		b.Phone().String(), b.Address(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return translate(err, "insert beneficiary")
	}
	return nil
}

// Update replaces the editable fields.
func (r *BeneficiaryRepo) Update(ctx context.Context, b model.Beneficiary) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE beneficiaries
		SET surnames = $2, given_names = $3, dni = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1
	`,
		b.ID(), b.Surnames(), b.GivenNames(), b.NationalID().String(),
		b.Phone().String(), b.Address(), b.UpdatedAt(),
	)
	if err != nil {
		return translate(err, "update beneficiary")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBeneficiaryNotFound
	}
	return nil
}

// Delete removes a beneficiary. The foreign key from contracts refuses the
// delete while any contract references it.
func (r *BeneficiaryRepo) Delete(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return model.ErrBeneficiaryNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM beneficiaries WHERE id = $1`, id)
	if err != nil {
		if _, ok := pg.ForeignKeyViolation(err); ok {
			return model.ErrBeneficiaryHasContracts
		}
		return translate(err, "delete beneficiary")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBeneficiaryNotFound
	}
	return nil
}

// FindByID retrieves a beneficiary.
func (r *BeneficiaryRepo) FindByID(ctx context.Context, id string) (model.Beneficiary, error) {
	id, ok := canonicalID(id)
	if !ok {
		return model.Beneficiary{}, model.ErrBeneficiaryNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1`, id)
	b, err := r.scanBeneficiary(row)
	if err != nil {
		return model.Beneficiary{}, notFound(err, model.ErrBeneficiaryNotFound, "find beneficiary")
	}
	return b, nil
}

// FindByNationalID retrieves a beneficiary by DNI.
func (r *BeneficiaryRepo) FindByNationalID(ctx context.Context, dni string) (model.Beneficiary, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE dni = $1`, dni)
	b, err := r.scanBeneficiary(row)
	if err != nil {
		return model.Beneficiary{}, notFound(err, model.ErrBeneficiaryNotFound, "find beneficiary by DNI")
	}
	return b, nil
}

// List returns every beneficiary ordered by surnames and given names.
func (r *BeneficiaryRepo) List(ctx context.Context) ([]model.Beneficiary, error) {
	return r.scanMany(ctx, `
		SELECT `+beneficiaryColumns+`
		FROM beneficiaries
		ORDER BY surnames, given_names
	`)
}

// Search returns beneficiaries whose surnames, given names or DNI contain
// term, case-insensitively.
func (r *BeneficiaryRepo) Search(ctx context.Context, term string) ([]model.Beneficiary, error) {
	return r.scanMany(ctx, `
		SELECT `+beneficiaryColumns+`
		FROM beneficiaries
		WHERE surnames ILIKE '%' || $1 || '%'
		   OR given_names ILIKE '%' || $1 || '%'
		   OR dni LIKE '%' || $1 || '%'
		ORDER BY surnames, given_names
	`, escapeLike(term))
}

// CountContracts returns how many contracts, in any status, reference the
// beneficiary.
func (r *BeneficiaryRepo) CountContracts(ctx context.Context, id string) (int, error) {
	id, ok := canonicalID(id)
	if !ok {
		return 0, nil
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contracts WHERE beneficiary_id = $1`, id).Scan(&n); err != nil {
		return 0, translate(err, "count contracts")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

func (r *BeneficiaryRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Beneficiary, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "query beneficiaries")
	}
	defer rows.Close()

	var result []model.Beneficiary
	for rows.Next() {
		b, err := r.scanBeneficiary(rows)
		if err != nil {
			return nil, translate(err, "scan beneficiary")
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate beneficiaries")
	}
	return result, nil
}

func (r *BeneficiaryRepo) scanBeneficiary(s scannable) (model.Beneficiary, error) {
	var (
		id, surnames, givenNames string
		dniStr, phoneStr         string
		address                  string
		createdAt, updatedAt     time.Time
	)
	if err := s.Scan(&id, &surnames, &givenNames, &dniStr, &phoneStr, &address, &createdAt, &updatedAt); err != nil {
		return model.Beneficiary{}, err
	}

	dni, err := valueobject.NewNationalID(dniStr)
	if err != nil {
		return model.Beneficiary{}, fmt.Errorf("parse dni: %w", err)
	}
	phone, err := valueobject.NewPhoneNumber(phoneStr)
	if err != nil {
		return model.Beneficiary{}, fmt.Errorf("parse phone: %w", err)
	}

	return model.ReconstructBeneficiary(
		id, surnames, givenNames, dni, phone, address,
		createdAt.In(r.loc), updatedAt.In(r.loc),
	), nil
}
