package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/navbar"
	"github.com/navportal/navportal/internal/web/navigation"
)

// PageData returns the template data shared by all pages.
func PageData(cfg *config.Config, view navbar.View, nav *navigation.Context) fiber.Map {
	return fiber.Map{
		"Title":      cfg.Title,
		"Navbar":     view,
		"Navigation": nav,
	}
}
