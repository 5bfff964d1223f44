package navbar

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/identity"
	component "github.com/navportal/navportal/internal/navbar"
	sessionmiddleware "github.com/navportal/navportal/internal/web/middleware/session"
	"github.com/navportal/navportal/internal/web/session"
)

const testSessionID = "0b6b3a53-2c4e-4a53-9f3e-5b7c0c1d2e3f"

// testStorage is a minimal in-memory implementation of fiber.Storage for tests.
type testStorage struct {
	mu        sync.RWMutex
	data      map[string][]byte
	deleteErr error
}

var _ fiber.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	if v == nil {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil

	return nil
}

func (s *testStorage) Close() error { return nil }

// fakeAuthorizers records the authorization requests instead of redirecting.
type fakeAuthorizers struct {
	err       error
	sessionID string
	returnTo  string
}

func (f *fakeAuthorizers) Authorizer(c *fiber.Ctx, sessionID, returnTo string) component.Authorizer {
	f.sessionID = sessionID
	f.returnTo = returnTo

	return authorizeFunc(func(context.Context) error {
		if f.err != nil {
			return f.err
		}

		return c.Redirect("https://idp.example.com/authorize", fiber.StatusSeeOther)
	})
}

type authorizeFunc func(context.Context) error

func (f authorizeFunc) Authorize(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	app         *fiber.App
	storage     *testStorage
	registry    *session.Registry
	authorizers *fakeAuthorizers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	storage := &testStorage{}
	session.Init(storage)

	cfg := &config.Config{
		OIDC:    config.OIDC{ClientID: "abc", Domain: "https://x"},
		Session: config.Session{ExpiryTime: time.Minute},
	}

	registry := session.NewRegistry(context.Background(), 10, time.Minute,
		component.LogoutConfig{ClientID: cfg.OIDC.ClientID, Domain: cfg.OIDC.Domain}, nil)
	t.Cleanup(registry.Close)

	env := &testEnv{
		app:         fiber.New(),
		storage:     storage,
		registry:    registry,
		authorizers: &fakeAuthorizers{},
	}

	env.app.Use(sessionmiddleware.New(cfg))

	s := &Service{}
	s.Init(env.app, cfg, registry, env.authorizers)

	return env
}

func (env *testEnv) do(t *testing.T, method, target string, header map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: testSessionID})

	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeView(t *testing.T, resp *http.Response) component.View {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v component.View
	require.NoError(t, json.Unmarshal(body, &v))

	return v
}

func TestGet_SignedOut(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodGet, Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	v := decodeView(t, resp)
	assert.False(t, v.IsAuthenticated)
	assert.Empty(t, v.Username)
	assert.Empty(t, v.UsernameInitials)
}

func TestGet_SignedIn(t *testing.T) {
	env := newTestEnv(t)

	env.registry.Get(testSessionID).Client.SignIn(identity.Claims{"username": "John Smith"})

	assert.Eventually(t, func() bool {
		v := decodeView(t, env.do(t, fiber.MethodGet, Path, nil))
		return v.IsAuthenticated && v.Username == "John Smith" && v.UsernameInitials == "JS"
	}, time.Second, 10*time.Millisecond)
}

func TestSidebarToggle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodPost, SidebarPath, map[string]string{fiber.HeaderAccept: fiber.MIMEApplicationJSON})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	v := decodeView(t, resp)
	assert.True(t, v.SidebarVisible)
	assert.Equal(t, component.NavOpenClass, v.BodyClass)

	resp = env.do(t, fiber.MethodPost, SidebarPath, map[string]string{fiber.HeaderReferer: "http://example.com/?tab=1"})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?tab=1", resp.Header.Get(fiber.HeaderLocation))

	v = decodeView(t, env.do(t, fiber.MethodGet, Path, nil))
	assert.False(t, v.SidebarVisible)
	assert.Empty(t, v.BodyClass)
}

func TestSidebarToggle_SchemeRelativeReferer(t *testing.T) {
	env := newTestEnv(t)

	for _, ref := range []string{"http://example.com//evil.com", "http://example.com/\\evil.com/"} {
		resp := env.do(t, fiber.MethodPost, SidebarPath, map[string]string{fiber.HeaderReferer: ref})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation), ref)
	}
}

func TestLogin_ForeignReturn(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"?return=//evil.com", "?return=/%5Cevil.com", "?return=https://evil.com/"} {
		resp := env.do(t, fiber.MethodGet, LoginPath+target, nil)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", env.authorizers.returnTo, target)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodGet, LoginPath+"?return=/reports", nil)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://idp.example.com/authorize", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, testSessionID, env.authorizers.sessionID)
	assert.Equal(t, "/reports", env.authorizers.returnTo)
}

func TestLogin_Disabled(t *testing.T) {
	env := newTestEnv(t)
	env.authorizers.err = auth.ErrOIDCDisabled

	resp := env.do(t, fiber.MethodGet, LoginPath, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&session.Data{Authenticated: true}).Write(testSessionID, time.Minute))
	entry := env.registry.Get(testSessionID)
	require.True(t, entry.Client.IsAuthenticated())

	resp := env.do(t, fiber.MethodPost, LogoutPath, nil)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t,
		"https://x/logout?client_id=abc&logout_uri=http://example.com/logout",
		resp.Header.Get(fiber.HeaderLocation),
	)

	err := new(session.Data).Read(testSessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, live := env.registry.Peek(testSessionID)
	assert.False(t, live)
	assert.False(t, entry.Client.IsAuthenticated())
}

func TestLogout_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.storage.deleteErr = errors.New("storage down")

	resp := env.do(t, fiber.MethodGet, LogoutPath, nil)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderLocation))
}
