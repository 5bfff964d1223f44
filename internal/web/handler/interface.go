package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/web/session"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, registry *session.Registry)
}
