package navbar

import "errors"

var (
	// ErrStatusStreamClosed is returned by Run when the authentication status
	// stream ends while the component is still alive.
	ErrStatusStreamClosed = errors.New("authentication status stream closed")

	// ErrNoAuthorizer is returned by Login without an authorization entry point.
	ErrNoAuthorizer = errors.New("no authorizer available")

	// ErrMissingClientID is returned when the OIDC client id is not configured.
	ErrMissingClientID = errors.New("logout: client id is not configured")

	// ErrMissingDomain is returned when the identity provider domain is not configured.
	ErrMissingDomain = errors.New("logout: identity provider domain is not configured")

	// ErrMissingOrigin is returned when the current origin is unknown.
	ErrMissingOrigin = errors.New("logout: current origin is unknown")
)
