package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	shopAuth "github.com/MrEthical07/shopAuth"
)

func TestMapErrorEmailUniqueViolation(t *testing.T) {
	err := mapError(&pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "shoppers_email_lower_key",
	})
	assert.ErrorIs(t, err, shopAuth.ErrEmailTaken)

	err = mapError(&pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "admins_email_lower_key",
	})
	assert.ErrorIs(t, err, shopAuth.ErrEmailTaken)
}

func TestMapErrorOtherUniqueViolationPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "shoppers_reset_token_key",
	}
	err := mapError(pgErr)
	assert.NotErrorIs(t, err, shopAuth.ErrEmailTaken)
	assert.ErrorIs(t, err, pgErr)
}

func TestMapErrorNonPostgresErrorUntouched(t *testing.T) {
	sentinel := errors.New("plain failure")
	assert.Equal(t, sentinel, mapError(sentinel))
	assert.NoError(t, mapError(nil))
}
