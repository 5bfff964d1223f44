package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/navportal/navportal/internal/identity"
)

// OIDCConfig holds OpenID Connect (OIDC) configuration for authentication.
type OIDCConfig struct {
	// Enabled indicates if OIDC authentication is enabled.
	Enabled bool
	// ProviderURL is the issuer URL used for discovery
	// (e.g. "https://cognito-idp.us-east-1.amazonaws.com/us-east-1_XXXX").
	ProviderURL string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret, empty for public clients.
	ClientSecret string
	// RedirectURL is the OAuth2 callback URL where the provider redirects after authentication.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: ["openid", "profile", "email"]).
	Scopes []string
}

// Tokens is the result of a successful authorization code exchange.
type Tokens struct {
	// Claims holds the ID token claims merged with the userinfo response.
	Claims identity.Claims
}

// OIDCProvider handles OIDC authentication.
type OIDCProvider struct {
	config   *OIDCConfig
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
}

// NewOIDCProvider creates a new OIDC provider using discovery on the provider URL.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig) (*OIDCProvider, error) {
	if !config.Enabled {
		return nil, ErrOIDCDisabled
	}

	provider, err := oidc.NewProvider(ctx, config.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.ClientID,
	})

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       scopes,
	}

	return &OIDCProvider{
		config:   config,
		provider: provider,
		verifier: verifier,
		oauth2:   oauth2Config,
	}, nil
}

// IsDisabled reports whether err is due to OIDC being disabled by configuration.
func IsDisabled(err error) bool {
	return errors.Is(err, ErrOIDCDisabled)
}

// GenerateStateToken generates a random token for the state and nonce parameters.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// AuthURL returns the authorization endpoint URL for the given state and nonce.
func (p *OIDCProvider) AuthURL(state, nonce string) string {
	return p.oauth2.AuthCodeURL(state, oidc.Nonce(nonce))
}

// Exchange trades the authorization code for tokens, verifies the ID token
// against the expected nonce and merges in the userinfo claims.
func (p *OIDCProvider) Exchange(ctx context.Context, code, nonce string) (*Tokens, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, ErrNoIDToken
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	if idToken.Nonce != nonce {
		return nil, ErrNonceMismatch
	}

	var claims identity.Claims
	if err = idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	// userinfo is optional, the ID token alone is enough to sign in
	userInfo, err := p.UserInfo(ctx, oauth2.StaticTokenSource(oauth2Token))
	if err != nil {
		log.Warn().Err(err).Str("sub", idToken.Subject).Msg("failed to load OIDC userinfo, using ID token claims only")
	} else {
		claims = claims.Merge(userInfo)
	}

	return &Tokens{Claims: claims}, nil
}

// UserInfo fetches the claims of the UserInfo endpoint.
func (p *OIDCProvider) UserInfo(ctx context.Context, ts oauth2.TokenSource) (identity.Claims, error) {
	userInfo, err := p.provider.UserInfo(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	var claims identity.Claims
	if err = userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse user info claims: %w", err)
	}

	return claims, nil
}
