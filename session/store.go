package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/shopAuth/internal"
)

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrUnknownFlashCategory is returned for any category other than
// [FlashError] or [FlashSuccess].
var ErrUnknownFlashCategory = errors.New("unknown flash category")

// Store is a Redis-backed session store handling lazy creation, TTL-based
// expiry, binding mutation, and atomic flash drains.
type Store struct {
	redis   redis.UniversalClient
	prefix  string
	ttl     time.Duration
	sliding bool
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace; ttl is the inactivity window. When
// sliding is true, each successful Resolve renews the TTL.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration, sliding bool) *Store {
	if prefix == "" {
		prefix = "ss"
	}
	return &Store{
		redis:   client,
		prefix:  prefix,
		ttl:     ttl,
		sliding: sliding,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Resolve maps a browser-held session id to its record. A missing, invalid,
// expired, or corrupt id yields a fresh anonymous session with a new id and
// CSRF secret, already persisted; created reports that case so the HTTP layer
// can reissue the cookie.
func (s *Store) Resolve(ctx context.Context, sessionID string) (sess *Session, created bool, err error) {
	if sessionID != "" {
		if _, idErr := internal.ParseSessionID(sessionID); idErr == nil {
			data, getErr := s.redis.Get(ctx, s.key(sessionID)).Bytes()
			switch {
			case getErr == nil:
				decoded, decErr := Decode(data)
				if decErr == nil {
					decoded.SessionID = sessionID
					if s.sliding {
						if expErr := s.redis.Expire(ctx, s.key(sessionID), s.ttl).Err(); expErr != nil {
							return nil, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, expErr)
						}
					}
					return decoded, false, nil
				}
				// corrupt blob: fall through to a fresh session
			case errors.Is(getErr, redis.Nil):
				// expired or never existed: fall through
			default:
				return nil, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, getErr)
			}
		}
	}

	sess, err = s.create(ctx)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func (s *Store) create(ctx context.Context) (*Session, error) {
	sid, err := internal.NewSessionID()
	if err != nil {
		return nil, err
	}
	secret, err := internal.NewCSRFSecret()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		SessionID:  sid.String(),
		Kind:       BindingNone,
		CSRFSecret: secret,
		CreatedAt:  time.Now().Unix(),
		Flash:      make(map[string][]string),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save persists the session with a full TTL window.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(sess.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Bind attaches a principal to the session, replacing any previous binding.
// Last write wins; the single slot guarantees one kind per session at a time.
func (s *Store) Bind(ctx context.Context, sess *Session, kind Binding, principalRef string) error {
	sess.Kind = kind
	sess.PrincipalRef = principalRef
	return s.Save(ctx, sess)
}

// Unbind detaches the principal, keeping the session (and its flash queue and
// CSRF secret) alive.
func (s *Store) Unbind(ctx context.Context, sess *Session) error {
	sess.Kind = BindingNone
	sess.PrincipalRef = ""
	return s.Save(ctx, sess)
}

// Destroy removes the session record outright. Destroying an already-expired
// session is not an error.
func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// PushFlash appends a message to the session's category queue without
// disturbing the remaining TTL. The write is conditional on the session
// record still existing: pushing to an expired or destroyed session drops
// the message instead of resurrecting the key without a TTL.
func (s *Store) PushFlash(ctx context.Context, sess *Session, category, message string) error {
	if !validFlashCategory(category) {
		return ErrUnknownFlashCategory
	}

	if sess.Flash == nil {
		sess.Flash = make(map[string][]string)
	}
	sess.Flash[category] = append(sess.Flash[category], message)

	data, err := Encode(sess)
	if err != nil {
		return err
	}
	err = s.redis.SetXX(ctx, s.key(sess.SessionID), data, redis.KeepTTL).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	// redis.Nil means the session is gone: the message is dropped rather
	// than recreating the key with no TTL.
	return nil
}

// DrainFlash returns and clears the category queue in one atomic step: the
// read and the clearing write run under a Redis WATCH transaction, so a
// message is visible to exactly one drain. A concurrent mutation of the
// session retries the transaction.
func (s *Store) DrainFlash(ctx context.Context, sessionID, category string) ([]string, error) {
	if !validFlashCategory(category) {
		return nil, ErrUnknownFlashCategory
	}

	const maxRetries = 4
	key := s.key(sessionID)

	for i := 0; i < maxRetries; i++ {
		var drained []string

		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}

			sess, err := Decode(data)
			if err != nil {
				return err
			}

			msgs := sess.Flash[category]
			if len(msgs) == 0 {
				return nil
			}

			delete(sess.Flash, category)
			updated, err := Encode(sess)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, redis.KeepTTL)
				return nil
			})
			if err != nil {
				return err
			}

			drained = msgs
			return nil
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// session gone: nothing queued
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}

		return drained, nil
	}

	return nil, fmt.Errorf("%w: flash drain transaction kept failing", ErrRedisUnavailable)
}
