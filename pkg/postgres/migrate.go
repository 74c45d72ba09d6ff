package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies every pending migration found in fsys. When there
// is nothing to apply it returns nil.
func RunMigrations(dsn string, fsys fs.FS) error {
	m, err := newMigrator(dsn, fsys)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}

// RunMigrationsDown rolls back every applied migration. When there is
// nothing to roll back it returns nil.
func RunMigrationsDown(dsn string, fsys fs.FS) error {
	m, err := newMigrator(dsn, fsys)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version and whether the last
// migration left the database dirty.
func MigrationVersion(dsn string, fsys fs.FS) (uint, bool, error) {
	m, err := newMigrator(dsn, fsys)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("postgres: migration version: %w", err)
	}
	return v, dirty, nil
}

func newMigrator(dsn string, fsys fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("postgres: open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: create migrator: %w", err)
	}
	return m, nil
}
