// Package home serves the portal start page.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/web/handler"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/navigation"
	"github.com/navportal/navportal/internal/web/session"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// Template is the template for the home page.
	Template = "home"
)

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	registry *session.Registry
}

// Handler is the home handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, registry *session.Registry) {
	if app == nil || cfg == nil || registry == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.registry = registry

	app.Get(Path, s.Get)
}

// Get renders the home page with the navbar of the session.
func (s *Service) Get(c *fiber.Ctx) error {
	view := s.registry.Get(sessionmiddleware.ID(c)).Navbar.Snapshot()
	nav := navigation.NewContext("Home", navigation.SectionHome, view.IsAuthenticated)

	return c.Render(Template, handler.PageData(s.cfg, view, nav), handler.BaseLayout)
}
