package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations run in order inside one transaction. Statements are idempotent
// so re-running on startup is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS shoppers (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		secret_hash TEXT NOT NULL,
		cart JSONB NOT NULL DEFAULT '{"items": []}'::jsonb,
		reset_token TEXT,
		reset_token_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT shoppers_reset_pair CHECK (
			(reset_token IS NULL) = (reset_token_expiry IS NULL)
		)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS shoppers_email_lower_key
		ON shoppers (LOWER(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS shoppers_reset_token_key
		ON shoppers (reset_token) WHERE reset_token IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		secret_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS admins_email_lower_key
		ON admins (LOWER(email))`,
}

// Migrate creates the credential schema. The shoppers_reset_pair constraint
// enforces that reset_token and reset_token_expiry are always set or cleared
// together.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range migrations {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit(ctx)
}
