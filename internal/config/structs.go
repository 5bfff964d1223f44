package config

import (
	"time"

	"github.com/navportal/navportal/internal/logger"
)

// Session settings.
type Session struct {
	Driver        string        `validate:"oneof=memory redis mysql postgres"` // session storage backend
	ConnectionURI string        // connection uri for redis, mysql and postgres
	Table         string        // table name for sql backends
	ExpiryTime    time.Duration // lifetime of a browser session
	RegistrySize  int           // max. number of live navbar sessions kept in memory
}

// OIDC holds the identity provider settings.
type OIDC struct {
	Enabled bool
	// Authority is the issuer url used for discovery.
	Authority string `validate:"required_if=Enabled true"`
	// ClientID is the oauth2 client id.
	ClientID string `validate:"required_if=Enabled true"`
	// ClientSecret is empty for public clients.
	ClientSecret string
	// Domain is the hosted ui domain used for logout.
	Domain string `validate:"required_if=Enabled true"`
	// RedirectURL defaults to {Webserver.URL}/auth/callback.
	RedirectURL string `validate:"omitempty,url"`
	// Scopes requested at the authorization endpoint.
	Scopes []string
}

// UI holds rendering settings.
type UI struct {
	BodyClasses []string // classes always present on the page body
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Log       logger.Log
	Title     string
	Webserver Webserver
	OIDC      OIDC
	Session   Session
	UI        UI
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic bool   // enable static file browsing (for development purposes only)
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string `validate:"omitempty,url"` // base url for the webserver
	SecureCookie bool   // mark the session cookie secure
}

// CallbackURL returns the configured OIDC redirect url or the default callback below Webserver.URL.
func (c *Config) CallbackURL(callbackPath string) string {
	if c.OIDC.RedirectURL != "" {
		return c.OIDC.RedirectURL
	}

	return c.Webserver.URL + callbackPath
}
