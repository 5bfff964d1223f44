package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navportal/navportal/internal/identity"
)

func TestClient_StartsSignedOut(t *testing.T) {
	c := NewClient()
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case s := <-c.AuthStatus(ctx):
		assert.False(t, s.IsAuthenticated)
	case <-time.After(time.Second):
		t.Fatal("no initial status")
	}

	assert.False(t, c.IsAuthenticated())
}

func TestClient_SignInSignOut(t *testing.T) {
	c := NewClient()
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.SignIn(identity.Claims{"username": "john"})
	assert.True(t, c.IsAuthenticated())

	// a profile subscription opened after sign in sees the profile
	profile := <-c.UserData(ctx)
	assert.Equal(t, "john", profile.UserData["username"])

	c.SignOut()
	assert.False(t, c.IsAuthenticated())

	profile = <-c.UserData(ctx)
	assert.Empty(t, profile.UserData)
}

func TestClient_Close(t *testing.T) {
	c := NewClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statusCh := c.AuthStatus(ctx)
	<-statusCh

	c.Close()

	_, ok := <-statusCh
	require.False(t, ok)
}
