package auth

import (
	"context"

	"github.com/navportal/navportal/internal/identity"
	"github.com/navportal/navportal/internal/stream"
)

// Client is the identity client of one browser session. It publishes the
// authentication status and user profile as streams, the way a browser OIDC
// client library does for a single page application.
type Client struct {
	status   *stream.Subject[identity.AuthStatus]
	userData *stream.Subject[identity.UserDataResult]
}

// NewClient creates a signed out client.
func NewClient() *Client {
	c := &Client{
		status:   stream.NewSubject[identity.AuthStatus](),
		userData: stream.NewSubject[identity.UserDataResult](),
	}

	c.status.Publish(identity.AuthStatus{IsAuthenticated: false})

	return c
}

// AuthStatus streams the authentication status, starting with the current one.
func (c *Client) AuthStatus(ctx context.Context) <-chan identity.AuthStatus {
	return c.status.Subscribe(ctx)
}

// UserData streams the user profile, starting with the current one.
func (c *Client) UserData(ctx context.Context) <-chan identity.UserDataResult {
	return c.userData.Subscribe(ctx)
}

// SignIn publishes the profile and then the authenticated status, so a
// profile subscription opened on the status change sees the new profile.
func (c *Client) SignIn(claims identity.Claims) {
	c.userData.Publish(identity.UserDataResult{UserData: claims})
	c.status.Publish(identity.AuthStatus{IsAuthenticated: true})
}

// SignOut publishes the unauthenticated status and drops the profile.
func (c *Client) SignOut() {
	c.status.Publish(identity.AuthStatus{IsAuthenticated: false})
	c.userData.Publish(identity.UserDataResult{})
}

// IsAuthenticated returns the latest published status.
func (c *Client) IsAuthenticated() bool {
	s, _ := c.status.Latest()
	return s.IsAuthenticated
}

// Close ends all streams of the client.
func (c *Client) Close() {
	c.status.Close()
	c.userData.Close()
}
