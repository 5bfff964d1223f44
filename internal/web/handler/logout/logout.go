// Package logout serves the page the identity provider returns to after logout.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web/handler"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/navigation"
	"github.com/navportal/navportal/internal/web/session"
)

const (
	// Path is the logout landing path registered as logout_uri.
	Path = navbar.LandingPath

	// Template is the template for the logout page.
	Template = "logout"
)

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	registry *session.Registry
}

// Handler is the logout handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, registry *session.Registry) {
	if app == nil || cfg == nil || registry == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.registry = registry

	// logout landing, reached without a signed in session
	app.Get(Path, s.Landing)
}

// Landing makes sure the session is signed out and renders the logout page.
func (s *Service) Landing(c *fiber.Ctx) error {
	sessionID := sessionmiddleware.ID(c)

	if err := session.Clear(sessionID); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	// start over with a fresh, signed out navbar
	entry := s.registry.Restart(sessionID)

	view := entry.Navbar.Snapshot()
	nav := navigation.NewContext("Signed out", "", false)

	return c.Render(Template, handler.PageData(s.cfg, view, nav), handler.BaseLayout)
}
