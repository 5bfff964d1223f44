package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/navportal/navportal/internal/auth"
	"github.com/navportal/navportal/internal/dom"
	"github.com/navportal/navportal/internal/navbar"
)

const (
	// DefaultRegistrySize bounds the number of live sessions.
	DefaultRegistrySize = 4096

	// DefaultRegistryTTL is the idle lifetime of a live session.
	DefaultRegistryTTL = 30 * time.Minute

	readyTimeout = time.Second
)

// Entry is the live state of one browser session.
type Entry struct {
	ID     string
	Client *auth.Client
	Navbar *navbar.Component

	cancel context.CancelFunc
	done   chan struct{}
}

// Done is closed once the navbar event loop has returned.
func (e *Entry) Done() <-chan struct{} {
	return e.done
}

func (e *Entry) stop() {
	e.cancel()
	<-e.done
	e.Client.Close()
}

// Registry maps session IDs to their identity client and navbar component.
// Entries expire when idle; an evicted entry has its navbar stopped.
type Registry struct {
	ctx         context.Context //nolint:containedctx // parent of all navbar lifetimes
	logout      navbar.LogoutConfig
	bodyClasses []string

	mu       sync.Mutex
	entries  *expirable.LRU[string, *Entry]
	starting singleflight.Group
}

// NewRegistry creates a registry. Navbars run until they are evicted or ctx is done.
// Non-positive size and ttl select the defaults.
func NewRegistry(
	ctx context.Context,
	size int,
	ttl time.Duration,
	logout navbar.LogoutConfig,
	bodyClasses []string,
) *Registry {
	if size <= 0 {
		size = DefaultRegistrySize
	}

	if ttl <= 0 {
		ttl = DefaultRegistryTTL
	}

	r := &Registry{
		ctx:         ctx,
		logout:      logout,
		bodyClasses: bodyClasses,
	}

	r.entries = expirable.NewLRU[string, *Entry](size, func(id string, e *Entry) {
		log.Debug().Str("session", shortID(id)).Msg("stopping navbar of evicted session")
		go e.stop()
	}, ttl)

	return r
}

// Get returns the live entry of a session, creating it on first use. A new
// entry restores its sign in state from the stored session data.
func (r *Registry) Get(sessionID string) *Entry {
	e, started := r.getOrStart(sessionID)
	if started {
		waitReady(e)
	}

	return e
}

// Restart replaces the live entry of a session with one restored from the
// stored session data. It returns once the new navbar shows that state.
func (r *Registry) Restart(sessionID string) *Entry {
	r.mu.Lock()
	old, ok := r.entries.Peek(sessionID)
	r.entries.Remove(sessionID)
	r.mu.Unlock()

	if ok {
		select {
		case <-old.Done():
		case <-time.After(readyTimeout):
			log.Warn().Str("session", shortID(sessionID)).Msg("previous navbar did not stop in time")
		}
	}

	e, _ := r.getOrStart(sessionID)
	waitReady(e)

	return e
}

func waitReady(e *Entry) {
	select {
	case <-e.Navbar.Ready():
	case <-time.After(readyTimeout):
		log.Warn().Str("session", shortID(e.ID)).Msg("navbar not ready in time")
	}
}

func (r *Registry) getOrStart(sessionID string) (*Entry, bool) {
	if e, ok := r.lookup(sessionID); ok {
		return e, false
	}

	// concurrent first requests of a session share one restore
	v, _, _ := r.starting.Do(sessionID, func() (any, error) {
		client := auth.NewClient()
		restore(sessionID, client)

		r.mu.Lock()
		defer r.mu.Unlock()

		if e, ok := r.entries.Get(sessionID); ok {
			client.Close()
			return e, nil
		}

		// an expired entry may still be held until the next cleanup tick
		r.entries.Remove(sessionID)

		e := r.start(sessionID, client)
		r.entries.Add(sessionID, e)

		return e, nil
	})

	return v.(*Entry), true //nolint:forcetypeassert
}

// lookup returns a live entry and refreshes its idle timeout.
func (r *Registry) lookup(sessionID string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries.Get(sessionID)
	if ok {
		r.entries.Add(sessionID, e)
	}

	return e, ok
}

// Peek returns the live entry of a session without creating it.
func (r *Registry) Peek(sessionID string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.entries.Peek(sessionID)
}

// Remove stops and forgets the entry of a session.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries.Remove(sessionID)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.entries.Len()
}

// Close stops all live sessions and waits for their navbars to return.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries.Values()
	r.entries.Purge()
	r.mu.Unlock()

	for _, e := range entries {
		<-e.Done()
	}
}

func (r *Registry) start(sessionID string, client *auth.Client) *Entry {
	ctx, cancel := context.WithCancel(r.ctx)

	e := &Entry{
		ID:     sessionID,
		Client: client,
		Navbar: navbar.New(client, r.logout, dom.NewClassList(r.bodyClasses...)),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(e.done)

		if err := e.Navbar.Run(ctx); err != nil {
			log.Error().Err(err).Str("session", shortID(sessionID)).Msg("navbar stopped")
		}
	}()

	return e
}

// restore signs the client in when the stored session data says so.
func restore(sessionID string, client *auth.Client) {
	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("session", shortID(sessionID)).Msg("failed to restore session data")
		}

		return
	}

	if data.Authenticated {
		client.SignIn(data.UserData)
	}
}

func shortID(id string) string {
	if len(id) > 8 { //nolint:mnd
		return id[:8]
	}

	return id
}
