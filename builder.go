package shopAuth

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MrEthical07/shopAuth/internal/flows"
	"github.com/MrEthical07/shopAuth/password"
	"github.com/MrEthical07/shopAuth/session"
	"github.com/MrEthical07/shopAuth/validate"
)

// Builder assembles a [Manager]. Construction is allocation-only; no I/O
// happens until the first Manager method call.
//
// Builder instances are intended to be configured during initialization and
// then treated as immutable.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	creds  CredentialStore
	mail   Mailer
	log    zerolog.Logger
	logSet bool
	built  bool
}

// New returns a Builder preloaded with the storefront defaults: bcrypt cost
// 12, one-hour reset tickets, and a sliding 14-day session window.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the default configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the client backing the session store and flash queue.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCredentialStore sets the principal persistence adapter.
func (b *Builder) WithCredentialStore(store CredentialStore) *Builder {
	b.creds = store
	return b
}

// WithMailer sets the email transport used for recovery links.
func (b *Builder) WithMailer(mail Mailer) *Builder {
	b.mail = mail
	return b
}

// WithLogger sets the structured logger. Dependency-failure detail is logged
// here and never shown to clients. Defaults to a no-op logger.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	b.logSet = true
	return b
}

// Build validates the configuration and wires the Manager and its flow
// service. A Builder may be used once.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.creds == nil {
		return nil, errors.New("credential store required")
	}
	if b.mail == nil {
		return nil, errors.New("mailer required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(b.config.Password.Cost)
	if err != nil {
		return nil, err
	}

	log := b.log
	if !b.logSet {
		log = zerolog.Nop()
	}

	m := &Manager{
		config: b.config,
		creds:  b.creds,
		mail:   b.mail,
		sessions: session.NewStore(
			b.redis,
			b.config.Session.KeyPrefix,
			b.config.Session.TTL,
			b.config.Session.Sliding,
		),
		hasher:  hasher,
		checker: validate.NewChecker(),
		log:     log,
	}
	m.flows = flows.New(m.flowDeps())

	b.built = true
	return m, nil
}
