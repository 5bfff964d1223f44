// Package session provides the session cookie middleware for the web application.
//
// Every page request gets a session ID: the one of the session cookie, or a
// freshly generated one that is written back as cookie. The ID is put into
// fiber.Locals under LocalsKey for the handlers and the access log.
//
// Static assets and the liveness and metrics endpoints are passed through
// without a session.
//
// Usage:
//
//	app.Use(sessionmiddleware.New(cfg))
package session
