// Package oidc provides the handlers of the OpenID Connect (OIDC) sign in flow.
//
// The flow includes:
//   - Authorization requests with state and nonce, bound to the browser session
//   - The authorization callback with code exchange and ID token verification
//   - Storing the signed in profile in the session and signing in the
//     session's identity client
//
// Example usage:
//
//	oidc.Handler.Init(app, cfg, registry, provider)
//
//	// the navbar login starts the flow through
//	oidc.Handler.Authorizer(c, sessionID, returnTo)
//
//	// GET /auth/callback - Handle provider callback
package oidc
