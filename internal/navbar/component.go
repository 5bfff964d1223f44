package navbar

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/navportal/navportal/internal/dom"
	"github.com/navportal/navportal/internal/identity"
)

// NavOpenClass is the root element class marking a visible sidebar.
const NavOpenClass = "nav-open"

// IdentityService exposes the authentication state of a session as streams.
// Both channels close when ctx is done.
type IdentityService interface {
	AuthStatus(ctx context.Context) <-chan identity.AuthStatus
	UserData(ctx context.Context) <-chan identity.UserDataResult
}

// Authorizer is the identity client's authorization entry point.
type Authorizer interface {
	Authorize(ctx context.Context) error
}

// SessionStorage is the session scoped storage the application controls.
type SessionStorage interface {
	Clear(ctx context.Context) error
}

// Browser is the runtime environment of the current request.
type Browser interface {
	// Origin returns the scheme and host the browser is currently on.
	Origin() string
	// SessionStorage returns nil when no session storage is available.
	SessionStorage() SessionStorage
	// Navigate sends the browser to target.
	Navigate(target string) error
}

// View is the navbar state bound to the templates.
type View struct {
	IsAuthenticated  bool   `json:"isAuthenticated"`
	Username         string `json:"username,omitempty"`
	UsernameInitials string `json:"usernameInitials,omitempty"`
	SidebarVisible   bool   `json:"sidebarVisible"`
	BodyClass        string `json:"bodyClass"`
}

// Component is the navbar of one browser session.
type Component struct {
	identity IdentityService
	logout   LogoutConfig
	root     *dom.ClassList

	ready     chan struct{}
	readyOnce sync.Once

	mu              sync.RWMutex
	isAuthenticated bool
	display         identity.Display
	sidebarVisible  bool
}

// New creates a navbar component. A nil root gets a fresh, empty class list.
func New(svc IdentityService, logout LogoutConfig, root *dom.ClassList) *Component {
	if root == nil {
		root = dom.NewClassList()
	}

	return &Component{
		identity: svc,
		logout:   logout,
		root:     root,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the first status, and for a signed in session the
// first profile, has been applied.
func (c *Component) Ready() <-chan struct{} {
	return c.ready
}

func (c *Component) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

// Run subscribes to the authentication status stream and keeps the displayed
// identity up to date until ctx is done. It returns nil when ctx ends and
// ErrStatusStreamClosed if the status stream ends first.
func (c *Component) Run(ctx context.Context) error {
	var (
		statusCh  = c.identity.AuthStatus(ctx)
		profileCh <-chan identity.UserDataResult
		profile   profileSubscription
	)

	defer profile.stop()
	defer c.markReady()

	for {
		select {
		case <-ctx.Done():
			return nil

		case status, ok := <-statusCh:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}

				return ErrStatusStreamClosed
			}

			// any running profile subscription belongs to the previous status
			profile.stop()
			profileCh = nil

			if status.IsAuthenticated {
				profileCh = profile.start(ctx, c.identity)
			}

			c.setAuthenticated(status.IsAuthenticated)

			if !status.IsAuthenticated {
				c.markReady()
			}

			log.Debug().Bool("authenticated", status.IsAuthenticated).Msg("navbar authentication status changed")

		case result, ok := <-profileCh:
			if !ok {
				profileCh = nil
				c.markReady()

				continue
			}

			c.setProfile(result.UserData)
			c.markReady()
		}
	}
}

// profileSubscription is the user data subscription of the current status.
type profileSubscription struct {
	cancel context.CancelFunc
}

func (p *profileSubscription) start(ctx context.Context, svc IdentityService) <-chan identity.UserDataResult {
	ctx, p.cancel = context.WithCancel(ctx)

	return svc.UserData(ctx)
}

func (p *profileSubscription) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (c *Component) setAuthenticated(authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isAuthenticated = authenticated

	if !authenticated {
		c.display = identity.Display{}
	}
}

func (c *Component) setProfile(claims identity.Claims) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.display = identity.Project(identity.AuthStatus{IsAuthenticated: c.isAuthenticated}, claims)
	if c.display.IsZero() {
		log.Debug().Bool("authenticated", c.isAuthenticated).Msg("navbar shows no identity")
		return
	}

	log.Debug().Str("username", c.display.Username).Msg("navbar user data loaded")
}

// Snapshot returns the current navbar state.
func (c *Component) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return View{
		IsAuthenticated:  c.isAuthenticated,
		Username:         c.display.Username,
		UsernameInitials: c.display.Initials,
		SidebarVisible:   c.sidebarVisible,
		BodyClass:        c.root.String(),
	}
}

// SidebarToggle flips the sidebar visibility and mirrors it onto the root
// element's nav-open class. It returns the new visibility.
func (c *Component) SidebarToggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sidebarVisible = !c.sidebarVisible
	c.root.Toggle(NavOpenClass, c.sidebarVisible)

	actions.WithLabelValues(actionSidebar).Inc()

	if c.sidebarVisible {
		log.Debug().Msg("making sidebar visible")
	}

	return c.sidebarVisible
}

// Login hands over to the identity client's authorization flow.
func (c *Component) Login(ctx context.Context, a Authorizer) error {
	if a == nil {
		return ErrNoAuthorizer
	}

	actions.WithLabelValues(actionLogin).Inc()

	return a.Authorize(ctx)
}

// Logout clears the session storage and sends the browser to the identity
// provider's logout endpoint. The origin is read from b at call time.
func (c *Component) Logout(ctx context.Context, b Browser) error {
	if storage := b.SessionStorage(); storage != nil {
		if err := storage.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear session storage: %w", err)
		}
	}

	target, err := LogoutURL(c.logout, b.Origin())
	if err != nil {
		return err
	}

	actions.WithLabelValues(actionLogout).Inc()

	return b.Navigate(target)
}
