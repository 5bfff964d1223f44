package navbar

import (
	"context"

	"github.com/gofiber/fiber/v2"

	component "github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web/session"
)

// browser is the request seen as the navbar's runtime environment.
type browser struct {
	c         *fiber.Ctx
	sessionID string
	registry  *session.Registry
}

// Origin returns scheme and host of the request.
func (b *browser) Origin() string {
	return b.c.BaseURL()
}

// SessionStorage returns the stored data of the session, nil without a session.
func (b *browser) SessionStorage() component.SessionStorage {
	if b.sessionID == "" {
		return nil
	}

	return &sessionStorage{sessionID: b.sessionID, registry: b.registry}
}

// Navigate redirects the browser.
func (b *browser) Navigate(target string) error {
	return b.c.Redirect(target, fiber.StatusSeeOther)
}

// sessionStorage is the server side storage of one browser session.
type sessionStorage struct {
	sessionID string
	registry  *session.Registry
}

// Clear deletes the stored session data and drops the live session state.
func (s *sessionStorage) Clear(_ context.Context) error {
	if err := session.Clear(s.sessionID); err != nil {
		return err
	}

	if e, ok := s.registry.Peek(s.sessionID); ok {
		e.Client.SignOut()
	}

	s.registry.Remove(s.sessionID)

	return nil
}
