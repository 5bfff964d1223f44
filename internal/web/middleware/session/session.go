package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/web/session"
)

// LocalsKey is the fiber.Locals key of the session ID.
const LocalsKey = "sessionID"

// skipPrefixes are paths served without a session.
var skipPrefixes = []string{"/static", "/checkalive", "/metrics"} //nolint:gochecknoglobals

// New returns the session middleware.
func New(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		originalURL := strings.ToLower(c.OriginalURL())
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(originalURL, prefix) {
				return c.Next()
			}
		}

		sessionID := session.ID(c)
		if sessionID == "" {
			var err error

			sessionID, err = session.GenerateSessionID()
			if err != nil {
				log.Error().Err(err).Msg("failed to generate session ID")
				return fiber.ErrInternalServerError
			}

			session.SetCookie(c, sessionID, cfg.Session.ExpiryTime, cfg.Webserver.SecureCookie)
		}

		c.Locals(LocalsKey, sessionID)

		return c.Next()
	}
}

// ID returns the session ID the middleware stored for the request.
func ID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
