package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// WithTransaction executes fn within a read-committed transaction.
func WithTransaction(ctx context.Context, db TxStarter, fn func(tx pgx.Tx) error) error {
	return WithTransactionOptions(ctx, db, pgx.TxOptions{}, fn)
}

// WithTransactionOptions executes fn within a transaction started with opts.
// If fn returns an error the transaction is rolled back and that error is
// returned unwrapped, so callers can match domain sentinels.
func WithTransactionOptions(ctx context.Context, db TxStarter, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("postgres: rollback tx: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit tx: %w", err)
	}

	return nil
}
