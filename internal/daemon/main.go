// Package daemon wires the session storage, the identity provider and the
// web service together and runs them until shutdown.
package daemon

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web"
	oidchandler "github.com/navportal/navportal/internal/web/handler/auth/oidc"
	"github.com/navportal/navportal/internal/web/session"
)

// ErrNilConfig is returned by New without a configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    fiber.Storage
	registry   *session.Registry
	webService *web.Service
	cancel     context.CancelFunc
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	// Initialize fiber session store
	storage, err := session.NewStorage(&cfg.Session)
	if err != nil {
		return nil, err
	}

	session.Init(storage)

	log.Info().Str("driver", cfg.Session.Driver).Msg("session storage initialized")

	provider := newOIDCProvider(ctx, cfg)

	ctx, cancel := context.WithCancel(ctx)

	registry := session.NewRegistry(
		ctx,
		cfg.Session.RegistrySize,
		cfg.Session.ExpiryTime,
		LogoutConfig(cfg),
		cfg.UI.BodyClasses,
	)

	return &Daemon{
		cfg:        cfg,
		storage:    storage,
		registry:   registry,
		webService: web.New(cfg, registry, provider),
		cancel:     cancel,
	}, nil
}

// LogoutConfig returns the navbar logout settings of cfg.
func LogoutConfig(cfg *config.Config) navbar.LogoutConfig {
	return navbar.LogoutConfig{
		ClientID: cfg.OIDC.ClientID,
		Domain:   cfg.OIDC.Domain,
	}
}

// newOIDCProvider runs discovery, failing discovery leaves OIDC disabled.
func newOIDCProvider(ctx context.Context, cfg *config.Config) *auth.OIDCProvider {
	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
		Enabled:      cfg.OIDC.Enabled,
		ProviderURL:  cfg.OIDC.Authority,
		ClientID:     cfg.OIDC.ClientID,
		ClientSecret: cfg.OIDC.ClientSecret,
		RedirectURL:  cfg.CallbackURL(oidchandler.CallbackPath),
		Scopes:       cfg.OIDC.Scopes,
	})
	if err != nil {
		if auth.IsDisabled(err) {
			log.Info().Msg("OIDC authentication is disabled by configuration")
		} else {
			log.Warn().Err(err).Msg("Failed to initialize OIDC provider - OIDC authentication will be disabled")
		}

		return nil
	}

	log.Info().Str("authority", cfg.OIDC.Authority).Msg("OIDC authentication provider initialized")

	return provider
}

// Start runs the web service until SIGINT or SIGTERM and shuts everything down.
func (d *Daemon) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown requested")

		d.webService.Shutdown()

		return nil
	})

	err := g.Wait()

	d.cancel()
	d.registry.Close()

	if errClose := d.storage.Close(); errClose != nil {
		log.Error().Err(errClose).Msg("failed to close session storage")
	}

	return err
}
