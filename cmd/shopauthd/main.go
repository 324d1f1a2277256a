package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	shopAuth "github.com/MrEthical07/shopAuth"
	"github.com/MrEthical07/shopAuth/mailer"
	"github.com/MrEthical07/shopAuth/store/postgres"
	"github.com/MrEthical07/shopAuth/web"
)

var version = "dev"

var cli struct {
	Debug   bool `help:"Enable debug logging."`
	Version kong.VersionFlag

	Listen string `help:"HTTP listen address." default:"localhost:3000" env:"SHOPAUTH_LISTEN"`

	PostgresDSN string `help:"PostgreSQL connection string." required:"" env:"SHOPAUTH_POSTGRES_DSN"`
	AutoMigrate bool   `help:"Run schema migrations on startup." default:"true" env:"SHOPAUTH_AUTO_MIGRATE"`

	RedisAddr     string `help:"Redis address for the session store." default:"localhost:6379" env:"SHOPAUTH_REDIS_ADDR"`
	RedisPassword string `help:"Redis password." default:"" env:"SHOPAUTH_REDIS_PASSWORD"`

	ResendAPIKey string `help:"Resend API key for recovery mail." required:"" env:"SHOPAUTH_RESEND_API_KEY"`
	MailFrom     string `help:"Sender address of the recovery mail." default:"reset@awesomebookshop.com" env:"SHOPAUTH_MAIL_FROM"`
	BaseURL      string `help:"Public base URL embedded in recovery links." default:"http://localhost:3000" env:"SHOPAUTH_BASE_URL"`

	SessionTTL time.Duration `help:"Session inactivity window." default:"336h" env:"SHOPAUTH_SESSION_TTL"`
	ResetTTL   time.Duration `help:"Password-reset ticket lifetime." default:"1h" env:"SHOPAUTH_RESET_TTL"`
	BcryptCost int           `help:"bcrypt work factor." default:"12" env:"SHOPAUTH_BCRYPT_COST"`
	CookieName string        `help:"Session cookie name." default:"shop.sid" env:"SHOPAUTH_COOKIE_NAME"`

	AdminEmail    string `help:"Seed admin account email (optional)." env:"SHOPAUTH_ADMIN_EMAIL"`
	AdminName     string `help:"Seed admin account name." default:"Administrator" env:"SHOPAUTH_ADMIN_NAME"`
	AdminPassword string `help:"Seed admin account password." env:"SHOPAUTH_ADMIN_PASSWORD"`
}

func main() {
	cmd := kong.Parse(&cli,
		kong.Name("shopauthd"),
		kong.Description("Authentication and session service for the storefront."),
		kong.Vars{"version": version},
	)
	cmd.FatalIfErrorf(run())
}

func run() error {
	log := setupLogger(cli.Debug)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("version", version).Msg("starting shopauthd")

	pool, err := postgres.NewPool(ctx, cli.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cli.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		log.Info().Msg("schema migrations applied")
	}

	creds := postgres.NewCredentialStore(pool)

	if cli.AdminEmail != "" && cli.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cli.AdminPassword), cli.BcryptCost)
		if err != nil {
			return err
		}
		if err := creds.EnsureAdmin(ctx, cli.AdminEmail, cli.AdminName, string(hash)); err != nil {
			return err
		}
		log.Info().Str("email", cli.AdminEmail).Msg("admin account ensured")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cli.RedisAddr,
		Password: cli.RedisPassword,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	mail, err := mailer.NewResendMailer(cli.ResendAPIKey)
	if err != nil {
		return err
	}

	cfg := shopAuth.Config{
		Password: shopAuth.PasswordConfig{Cost: cli.BcryptCost},
		Reset: shopAuth.ResetConfig{
			TokenTTL:    cli.ResetTTL,
			LinkBaseURL: cli.BaseURL,
			MailFrom:    cli.MailFrom,
		},
		Session: shopAuth.SessionConfig{
			TTL:       cli.SessionTTL,
			KeyPrefix: "ss",
			Sliding:   true,
		},
	}

	auth, err := shopAuth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithCredentialStore(creds).
		WithMailer(mail).
		WithLogger(log).
		Build()
	if err != nil {
		return err
	}

	render, err := web.NewBasicRenderer()
	if err != nil {
		return err
	}
	handler := web.NewHandler(auth, render, log, cli.CookieName)

	srv := configureHTTPServer(cli.Listen, handler.Routes())

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", cli.Listen).Msg("listening for connections")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       5 * time.Minute,
		MaxHeaderBytes:    8 * 1024,
	}
}
