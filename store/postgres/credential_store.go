package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	shopAuth "github.com/MrEthical07/shopAuth"
)

// CredentialStore is the pgx-backed implementation of
// [shopAuth.CredentialStore].
type CredentialStore struct {
	pool *pgxpool.Pool
}

// NewCredentialStore wraps an open pool. Run [Migrate] first.
func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

// GetByEmail looks a principal up case-insensitively within its kind's
// population. A miss returns shopAuth.ErrPrincipalNotFound.
func (s *CredentialStore) GetByEmail(ctx context.Context, kind shopAuth.PrincipalKind, email string) (*shopAuth.Principal, error) {
	if kind == shopAuth.KindAdmin {
		row := s.pool.QueryRow(ctx,
			`SELECT id, email, name, secret_hash FROM admins WHERE LOWER(email) = LOWER($1)`,
			email,
		)
		p := &shopAuth.Principal{Kind: shopAuth.KindAdmin}
		if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.SecretHash); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, shopAuth.ErrPrincipalNotFound
			}
			return nil, mapError(err)
		}
		return p, nil
	}

	row := s.pool.QueryRow(ctx,
		`SELECT id, email, name, secret_hash, reset_token, reset_token_expiry
		 FROM shoppers WHERE LOWER(email) = LOWER($1)`,
		email,
	)
	return scanShopper(row)
}

// CreateShopper inserts a new shopper with an empty cart container. A
// duplicate email (case-insensitive) returns shopAuth.ErrEmailTaken.
func (s *CredentialStore) CreateShopper(ctx context.Context, input shopAuth.CreateShopperInput) (*shopAuth.Principal, error) {
	id := uuid.NewString()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO shoppers (id, email, name, secret_hash) VALUES ($1, $2, $3, $4)`,
		id, input.Email, input.Name, input.SecretHash,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &shopAuth.Principal{
		ID:         id,
		Kind:       shopAuth.KindShopper,
		Email:      input.Email,
		Name:       input.Name,
		SecretHash: input.SecretHash,
	}, nil
}

// SetResetToken stores a fresh recovery ticket on the shopper, silently
// replacing any prior unconsumed one.
func (s *CredentialStore) SetResetToken(ctx context.Context, shopperID, token string, expiry time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE shoppers SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		shopperID, token, expiry,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shopAuth.ErrPrincipalNotFound
	}
	return nil
}

// GetByResetToken returns the shopper holding token while now < expiry.
func (s *CredentialStore) GetByResetToken(ctx context.Context, token string, now time.Time) (*shopAuth.Principal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, name, secret_hash, reset_token, reset_token_expiry
		 FROM shoppers WHERE reset_token = $1 AND reset_token_expiry > $2`,
		token, now,
	)
	p, err := scanShopper(row)
	if err != nil {
		if errors.Is(err, shopAuth.ErrPrincipalNotFound) {
			return nil, shopAuth.ErrResetTokenInvalid
		}
		return nil, err
	}
	return p, nil
}

// ConsumeResetToken is the subsystem's one concurrency-safety mechanism: the
// password write and the clearing of both reset fields happen in a single
// conditional UPDATE. Of two racing consumers, at most one matches the
// unexpired token; the other sees zero rows and gets
// shopAuth.ErrResetTokenInvalid.
func (s *CredentialStore) ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE shoppers
		 SET secret_hash = $2, reset_token = NULL, reset_token_expiry = NULL
		 WHERE reset_token = $1 AND reset_token_expiry > $3`,
		token, newHash, now,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shopAuth.ErrResetTokenInvalid
	}
	return nil
}

// EnsureAdmin provisions an administrator account if none exists for the
// email. Administrators are never self-service-created; this is the
// operator-facing seed path.
func (s *CredentialStore) EnsureAdmin(ctx context.Context, email, name, secretHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO admins (id, email, name, secret_hash)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING`,
		uuid.NewString(), email, name, secretHash,
	)
	return mapError(err)
}

func scanShopper(row pgx.Row) (*shopAuth.Principal, error) {
	var (
		p           = &shopAuth.Principal{Kind: shopAuth.KindShopper}
		resetToken  *string
		resetExpiry *time.Time
	)
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.SecretHash, &resetToken, &resetExpiry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shopAuth.ErrPrincipalNotFound
		}
		return nil, mapError(err)
	}
	if resetToken != nil {
		p.ResetToken = *resetToken
	}
	if resetExpiry != nil {
		p.ResetTokenExpiry = *resetExpiry
	}
	return p, nil
}
