package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/model"
	pg "github.com/prestamos/loan-service/pkg/postgres"
)

// Constraint names from migrations/000001_init.up.sql.
const (
	constraintBeneficiaryDNI = "beneficiaries_dni_key"
	constraintOneActive      = "contracts_one_active_idx"
)

type scannable interface {
	Scan(dest ...any) error
}

// canonicalID parses id as a UUID and returns its canonical form. Callers
// treat a malformed id as a row that does not exist.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// notFound maps pgx.ErrNoRows to sentinel and wraps anything else as a
// persistence failure.
func notFound(err error, sentinel error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return apperror.Persistence(op, err)
}

// translate maps unique-constraint violations to domain failures. Foreign
// key failures mean different things per statement and are handled by the
// caller.
func translate(err error, op string) error {
	if name, ok := pg.UniqueViolation(err); ok {
		switch name {
		case constraintBeneficiaryDNI:
			return model.ErrDNIAlreadyRegistered
		case constraintOneActive:
			return model.ErrActiveContractExists
		}
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(op, err)
}

// dateIn keeps the calendar fields of a DATE column and places them in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return model.CalendarDate(t, loc)
}

// escapeLike escapes LIKE wildcards so a search term matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
