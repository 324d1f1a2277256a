package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	shopAuth "github.com/MrEthical07/shopAuth"
)

// mapError converts PostgreSQL driver errors to the CredentialStore
// contract's sentinels. Unknown errors pass through for the caller to wrap
// as a dependency failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == "shoppers_email_lower_key" || pgErr.ConstraintName == "admins_email_lower_key" {
			return shopAuth.ErrEmailTaken
		}
		return fmt.Errorf("unique constraint violation: %s: %w", pgErr.ConstraintName, err)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("check constraint violation: %s: %w", pgErr.ConstraintName, err)
	default:
		return err
	}
}
