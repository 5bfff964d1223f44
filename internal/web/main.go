// Package web provides the fiber web service of the portal.
package web

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/config"
	fiberlogger "github.com/navportal/navportal/internal/logger/adapter/fiber"
	oidchandler "github.com/navportal/navportal/internal/web/handler/auth/oidc"
	"github.com/navportal/navportal/internal/web/handler/home"
	"github.com/navportal/navportal/internal/web/handler/logout"
	navbarhandler "github.com/navportal/navportal/internal/web/handler/navbar"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/session"
)

const (
	// CheckAlivePath is the liveness endpoint for load balancers.
	CheckAlivePath = "/checkalive"

	// MetricsPath is the prometheus endpoint.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	registry     *session.Registry
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("fiber listen error")
		}

		doneFiber <- err
	}()

	// wait for fiber to stop
	return <-doneFiber
}

// Shutdown fails the liveness check for the configured time and stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration. A nil
// provider runs the portal with OIDC sign in disabled.
func New(cfg *config.Config, registry *session.Registry, provider *auth.OIDCProvider) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if registry == nil {
		panic("registry cannot be nil")
	}

	templateEngine := html.NewFileSystem(embeddedDir(embeddedTemplates, "templates"), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	return newService(cfg, registry, provider, templateEngine)
}

func newService(cfg *config.Config, registry *session.Registry, provider *auth.OIDCProvider, views fiber.Views) *Service {
	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			Views:                 views,
			DisableStartupMessage: !cfg.DevMode,
		},
	)

	// init web service
	service := &Service{
		cfg:          cfg,
		App:          app,
		registry:     registry,
		fastShutDown: cfg.Webserver.ShutDownTime <= 0,
	}

	service.alive.Store(true)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:   embeddedDir(embeddedStaticFiles, "static"),
				Browse: cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// session cookie for every page request
	app.Use(sessionmiddleware.New(cfg))

	// init handlers (they register their own routes)
	oidchandler.Handler.Init(app, cfg, registry, provider)
	navbarhandler.Handler.Init(app, cfg, registry, &oidchandler.Handler)
	home.Handler.Init(app, cfg, registry)
	logout.Handler.Init(app, cfg, registry)

	log.Debug().
		Str("routes", strings.Join(routePaths(app), ",")).
		Msg("web routes registered")

	return service
}

func routePaths(app *fiber.App) []string {
	var paths []string

	for _, r := range app.GetRoutes(true) {
		paths = append(paths, r.Method+" "+r.Path)
	}

	return paths
}
