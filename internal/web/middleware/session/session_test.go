package session_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navportal/navportal/internal/config"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/session"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{Session: config.Session{ExpiryTime: time.Hour}}

	app := fiber.New()
	app.Use(sessionmiddleware.New(cfg))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(sessionmiddleware.ID(c))
	})
	app.Get("/static/app.css", func(c *fiber.Ctx) error {
		return c.SendString(sessionmiddleware.ID(c))
	})

	return app
}

func TestMiddleware_NewSession(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Len(t, cookies[0].Value, 36)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, cookies[0].Value, string(body))
}

func TestMiddleware_ExistingSession(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "existing-id"})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Empty(t, resp.Cookies())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "existing-id", string(body))
}

func TestMiddleware_SkipsStatic(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/static/app.css", nil), -1)
	require.NoError(t, err)

	assert.Empty(t, resp.Cookies())
}
