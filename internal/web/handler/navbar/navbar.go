// Package navbar serves the navbar actions of a browser session.
package navbar

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/config"
	component "github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web/handler"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/session"
)

const (
	// Path is the navbar state endpoint.
	Path = handler.RootPath + "navbar"

	// SidebarPath toggles the sidebar.
	SidebarPath = Path + "/sidebar"

	// LoginPath starts the sign in.
	LoginPath = Path + "/login"

	// LogoutPath signs out at the identity provider.
	LogoutPath = Path + "/logout"
)

// AuthorizerSource hands out the identity client's authorization entry point
// for a request.
type AuthorizerSource interface {
	Authorizer(c *fiber.Ctx, sessionID, returnTo string) component.Authorizer
}

// Service is the navbar handler service.
type Service struct {
	cfg         *config.Config
	registry    *session.Registry
	authorizers AuthorizerSource
}

// Handler is the navbar handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the navbar handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, registry *session.Registry, authorizers AuthorizerSource) {
	if app == nil || cfg == nil || registry == nil || authorizers == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.registry = registry
	s.authorizers = authorizers

	app.Get(Path, s.Get)
	app.Post(SidebarPath, s.SidebarToggle)
	app.Get(LoginPath, s.Login)
	app.Get(LogoutPath, s.Logout)
	app.Post(LogoutPath, s.Logout)
}

// Get returns the navbar state as JSON.
func (s *Service) Get(c *fiber.Ctx) error {
	entry := s.registry.Get(sessionmiddleware.ID(c))

	return c.JSON(entry.Navbar.Snapshot())
}

// SidebarToggle flips the sidebar and returns to the page, or answers with
// the new state for JSON clients.
func (s *Service) SidebarToggle(c *fiber.Ctx) error {
	entry := s.registry.Get(sessionmiddleware.ID(c))
	entry.Navbar.SidebarToggle()

	if wantsJSON(c) {
		return c.JSON(entry.Navbar.Snapshot())
	}

	return c.Redirect(returnPath(c), fiber.StatusSeeOther)
}

// Login redirects to the identity provider.
func (s *Service) Login(c *fiber.Ctx) error {
	sessionID := sessionmiddleware.ID(c)
	entry := s.registry.Get(sessionID)

	err := entry.Navbar.Login(c.UserContext(), s.authorizers.Authorizer(c, sessionID, returnPath(c)))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrOIDCDisabled):
		return c.Status(fiber.StatusServiceUnavailable).SendString("OIDC authentication is not available")
	default:
		log.Error().Err(err).Msg("navbar login failed")
		return err
	}
}

// Logout clears the session and redirects to the identity provider's logout.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := sessionmiddleware.ID(c)
	entry := s.registry.Get(sessionID)

	err := entry.Navbar.Logout(c.UserContext(), &browser{
		c:         c,
		sessionID: sessionID,
		registry:  s.registry,
	})
	if err != nil {
		log.Error().Err(err).Msg("navbar logout failed")
		return err
	}

	return nil
}

// wantsJSON reports whether the client asked for a JSON answer.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// returnPath is the local page the request came from, "/" if unknown.
func returnPath(c *fiber.Ctx) string {
	if r := c.Query("return"); handler.IsLocalPath(r) {
		return r
	}

	ref, err := url.Parse(c.Get(fiber.HeaderReferer))
	if err != nil || !handler.IsLocalPath(ref.Path) || (ref.Host != "" && ref.Host != c.Hostname()) {
		return handler.RootPath
	}

	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}

	return ref.Path
}
