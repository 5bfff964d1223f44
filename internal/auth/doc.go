// Package auth provides the OpenID Connect (OIDC) side of the portal.
//
// # Provider
//
// OIDCProvider wraps discovery, the authorization code flow and ID token
// verification for an external identity provider such as Amazon Cognito,
// Keycloak or Okta. Profile claims from the ID token are merged with the
// userinfo response.
//
// # Pending requests
//
// StateStore remembers every authorization request (state token, nonce and
// the session it belongs to) until its callback arrives. Entries expire and
// are single use.
//
// # Session client
//
// Client is the per browser session identity client. It exposes the
// authentication status and user profile as streams that the navbar
// component subscribes to:
//
//	client := auth.NewClient()
//	statusCh := client.AuthStatus(ctx)
//
//	client.SignIn(tokens.Claims) // after a successful callback
//	client.SignOut()             // on logout
package auth
