package oidc

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web/handler"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/session"
)

// CallbackPath is the path for OIDC callback.
const CallbackPath = handler.RootPath + "auth/callback"

// ErrSessionMismatch is returned for a callback arriving in another browser
// session than the one that started the authorization.
var ErrSessionMismatch = errors.New("callback does not belong to this session")

// Service is the OIDC handler service.
type Service struct {
	cfg      *config.Config
	registry *session.Registry
	provider *auth.OIDCProvider
	states   *auth.StateStore
}

// Handler is the OIDC handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the OIDC handler. A nil provider leaves OIDC disabled,
// authorization and callback then answer 503.
func (s *Service) Init(app *fiber.App, cfg *config.Config, registry *session.Registry, provider *auth.OIDCProvider) {
	if app == nil || cfg == nil || registry == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.registry = registry
	s.provider = provider
	s.states = auth.NewStateStore(auth.DefaultStateSize, auth.DefaultStateTTL)

	if provider == nil {
		log.Info().Msg("OIDC authentication is disabled, sign in is not available")
	}

	app.Get(CallbackPath, s.Callback)
}

// Authorizer returns the authorization entry point for a browser session.
// After the callback the browser returns to returnTo.
func (s *Service) Authorizer(c *fiber.Ctx, sessionID, returnTo string) navbar.Authorizer {
	return &authorizer{
		service:   s,
		c:         c,
		sessionID: sessionID,
		returnTo:  returnTo,
	}
}

// authorizer redirects the browser to the identity provider.
type authorizer struct {
	service   *Service
	c         *fiber.Ctx
	sessionID string
	returnTo  string
}

// Authorize starts an authorization code flow with a fresh state and nonce.
func (a *authorizer) Authorize(_ context.Context) error {
	if a.service.provider == nil {
		return auth.ErrOIDCDisabled
	}

	state, err := auth.GenerateStateToken()
	if err != nil {
		return err
	}

	nonce, err := auth.GenerateStateToken()
	if err != nil {
		return err
	}

	a.service.states.Put(state, auth.Pending{
		Nonce:     nonce,
		SessionID: a.sessionID,
		ReturnTo:  a.returnTo,
	})

	return a.c.Redirect(a.service.provider.AuthURL(state, nonce), fiber.StatusSeeOther)
}

// Callback handles the OIDC callback.
func (s *Service) Callback(c *fiber.Ctx) error {
	if s.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("OIDC authentication is not available")
	}

	// the provider reports a denied or failed authorization
	if errCode := c.Query("error"); errCode != "" {
		log.Warn().
			Str("error", errCode).
			Str("description", c.Query("error_description")).
			Msg("OIDC authorization failed at the provider")

		return c.Status(fiber.StatusUnauthorized).SendString("Authentication failed")
	}

	// Get code and state from query parameters
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		log.Error().Msg("Missing code or state in OIDC callback")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid callback parameters")
	}

	pending, err := s.states.Take(state)
	if err != nil {
		log.Error().Err(err).Msg("Invalid state token")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state token")
	}

	sessionID := sessionmiddleware.ID(c)
	if sessionID == "" || sessionID != pending.SessionID {
		log.Error().Err(ErrSessionMismatch).Msg("Invalid state token")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state token")
	}

	tokens, err := s.provider.Exchange(c.UserContext(), code, pending.Nonce)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")
		return c.Status(fiber.StatusUnauthorized).SendString("Authentication failed")
	}

	userSession := &session.Data{
		Authenticated: true,
		UserData:      tokens.Claims,
		CreatedAt:     time.Now().UTC(),
	}

	if err = userSession.Write(sessionID, s.cfg.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("Failed to write session")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	// the page after the redirect must already show the signed in navbar
	s.registry.Restart(sessionID)

	subject, _ := tokens.Claims.String("sub")
	log.Info().Str("sub", subject).Msg("User logged in successfully via OIDC")

	returnTo := pending.ReturnTo
	if !handler.IsLocalPath(returnTo) {
		returnTo = handler.RootPath
	}

	return c.Redirect(returnTo, fiber.StatusSeeOther)
}
