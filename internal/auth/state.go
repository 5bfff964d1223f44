package auth

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultStateTTL is how long an authorization request may take.
	DefaultStateTTL = 5 * time.Minute

	// DefaultStateSize bounds the number of pending authorization requests.
	DefaultStateSize = 10000
)

// Pending is an authorization request waiting for its callback.
type Pending struct {
	Nonce     string
	SessionID string
	ReturnTo  string
}

// StateStore keeps pending authorization requests keyed by state token.
// Entries expire after the configured TTL and can be taken only once.
type StateStore struct {
	mu      sync.Mutex
	pending *expirable.LRU[string, Pending]
}

// NewStateStore creates a state store. Non-positive arguments select the defaults.
func NewStateStore(size int, ttl time.Duration) *StateStore {
	if size <= 0 {
		size = DefaultStateSize
	}

	if ttl <= 0 {
		ttl = DefaultStateTTL
	}

	return &StateStore{
		pending: expirable.NewLRU[string, Pending](size, nil, ttl),
	}
}

// Put registers a pending request under state.
func (s *StateStore) Put(state string, p Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending.Add(state, p)
}

// Take returns and removes the pending request for state.
func (s *StateStore) Take(state string) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending.Peek(state)
	if !ok {
		return Pending{}, ErrUnknownState
	}

	s.pending.Remove(state)

	return p, nil
}

// Len returns the number of pending requests.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending.Len()
}
