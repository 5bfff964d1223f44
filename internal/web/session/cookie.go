package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// SetCookie writes the session cookie.
func SetCookie(c *fiber.Ctx, sessionID string, maxAge time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ID returns the session ID of the request, empty if there is none.
func ID(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}
