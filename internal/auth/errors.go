package auth

import "errors"

var (
	// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
	ErrOIDCDisabled = errors.New("oidc authentication is disabled")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrNonceMismatch is returned when the ID token nonce differs from the one sent
	// with the authorization request.
	ErrNonceMismatch = errors.New("id token nonce mismatch")

	// ErrUnknownState is returned for a callback state that was never issued,
	// already used or expired.
	ErrUnknownState = errors.New("unknown or expired state token")
)
