// Package session keeps the server side state of a browser session: the
// stored session data, the session cookie and the live navbar components.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/navportal/navportal/internal/identity"
)

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

var (
	// ErrNotFound is returned when no data is stored for a session ID.
	ErrNotFound = errors.New("session data not found")

	// ErrNotInitialized is returned when the session store was never initialized.
	ErrNotInitialized = errors.New("session store not initialized")
)

// Data represents the session data structure.
type Data struct {
	Authenticated bool            `json:"authenticated"`
	UserData      identity.Claims `json:"userData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	if Store == nil {
		return ErrNotInitialized
	}

	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNotFound
	}

	return json.Unmarshal(byteData, s)
}

// Clear deletes the stored data of a session.
func Clear(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage fiber.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage:        storage,
		KeyLookup:      "cookie:" + CookieName,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GenerateSessionID generates a new random session ID.
func GenerateSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
