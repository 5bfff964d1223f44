package identity

import (
	"strings"
)

// ClaimChain is an ordered list of claim names. The first claim holding a
// non-empty string wins.
type ClaimChain []string

// UsernameClaims resolves the display name: username, then preferred_username.
var UsernameClaims = ClaimChain{ClaimUsername, ClaimPreferredUsername} //nolint:gochecknoglobals

// Resolve walks the chain and returns the first usable claim value.
func (cc ClaimChain) Resolve(claims Claims) (string, bool) {
	for _, name := range cc {
		if v, ok := claims.String(name); ok {
			return v, true
		}
	}

	return "", false
}

// Display is the identity rendered in the navigation bar.
type Display struct {
	Username string
	Initials string
}

// IsZero reports whether no identity is shown.
func (d Display) IsZero() bool {
	return d.Username == "" && d.Initials == ""
}

// Project derives the display identity of a session. An unauthenticated
// session never shows an identity, whatever claims are still around.
func Project(status AuthStatus, claims Claims) Display {
	if !status.IsAuthenticated {
		return Display{}
	}

	return FromClaims(claims)
}

// FromClaims resolves the username through UsernameClaims and computes its initials.
func FromClaims(claims Claims) Display {
	name, ok := UsernameClaims.Resolve(claims)
	if !ok {
		return Display{}
	}

	return Display{
		Username: name,
		Initials: Initials(name),
	}
}

// Initials returns the upper-cased first letter of every space separated part
// of name. Empty parts, as produced by leading, trailing or repeated spaces,
// contribute nothing.
func Initials(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder

	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}

	return strings.ToUpper(b.String())
}
