// Package authtest provides an in-process OIDC provider for tests.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"
)

const (
	// ClientID is the client the issuer signs ID tokens for.
	ClientID = "386tpl138o1vibtrlbs5ajrn0j"

	keyID = "test-key"
)

// Issuer is a minimal OIDC provider serving discovery, keys, token and userinfo.
type Issuer struct {
	*httptest.Server

	t   testing.TB
	key *rsa.PrivateKey

	mu       sync.Mutex
	nonce    string
	idClaims map[string]any
	userInfo map[string]any
}

// NewIssuer starts an issuer that is closed with the test.
func NewIssuer(t testing.TB) *Issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048) //nolint:mnd
	require.NoError(t, err)

	iss := &Issuer{
		t:        t,
		key:      key,
		idClaims: map[string]any{"sub": "user-1", "preferred_username": "johnny"},
		userInfo: map[string]any{"sub": "user-1", "username": "John Smith"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"issuer":                                iss.URL,
			"authorization_endpoint":                iss.URL + "/oauth2/authorize",
			"token_endpoint":                        iss.URL + "/oauth2/token",
			"jwks_uri":                              iss.URL + "/.well-known/jwks.json",
			"userinfo_endpoint":                     iss.URL + "/oauth2/userInfo",
			"end_session_endpoint":                  iss.URL + "/logout",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("/.well-known/jwks.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
			Key:       &iss.key.PublicKey,
			KeyID:     keyID,
			Algorithm: string(jose.RS256),
			Use:       "sig",
		}}})
	})
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"access_token": "access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     iss.idToken(),
		})
	})
	mux.HandleFunc("/oauth2/userInfo", func(w http.ResponseWriter, _ *http.Request) {
		iss.mu.Lock()
		defer iss.mu.Unlock()

		writeJSON(w, iss.userInfo)
	})

	iss.Server = httptest.NewServer(mux)
	t.Cleanup(iss.Close)

	return iss
}

// SetNonce sets the nonce put into issued ID tokens.
func (iss *Issuer) SetNonce(nonce string) {
	iss.mu.Lock()
	defer iss.mu.Unlock()

	iss.nonce = nonce
}

// SetIDClaims replaces the extra claims of issued ID tokens.
func (iss *Issuer) SetIDClaims(claims map[string]any) {
	iss.mu.Lock()
	defer iss.mu.Unlock()

	iss.idClaims = claims
}

// SetUserInfo replaces the userinfo response.
func (iss *Issuer) SetUserInfo(claims map[string]any) {
	iss.mu.Lock()
	defer iss.mu.Unlock()

	iss.userInfo = claims
}

func (iss *Issuer) idToken() string {
	iss.mu.Lock()
	defer iss.mu.Unlock()

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: iss.key},
		(&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", keyID),
	)
	require.NoError(iss.t, err)

	now := time.Now()
	claims := map[string]any{
		"sub": "user-1",
	}
	maps.Copy(claims, iss.idClaims)
	maps.Copy(claims, map[string]any{
		"iss":   iss.URL,
		"aud":   ClientID,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"nonce": iss.nonce,
	})

	payload, err := json.Marshal(claims)
	require.NoError(iss.t, err)

	obj, err := signer.Sign(payload)
	require.NoError(iss.t, err)

	raw, err := obj.CompactSerialize()
	require.NoError(iss.t, err)

	return raw
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
