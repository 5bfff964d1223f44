package identity

// Standard claim names used for the display name.
const (
	ClaimUsername          = "username"
	ClaimPreferredUsername = "preferred_username"
	ClaimSubject           = "sub"
	ClaimEmail             = "email"
)

// Claims maps claim names to the values found in the ID token or userinfo response.
type Claims map[string]any

// AuthStatus is one emission of the authentication status stream.
type AuthStatus struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// UserDataResult is one emission of the user profile stream.
type UserDataResult struct {
	UserData Claims `json:"userData"`
}

// String returns the claim value when it is a non-empty string.
func (c Claims) String(name string) (string, bool) {
	if c == nil {
		return "", false
	}

	s, ok := c[name].(string)
	if !ok || s == "" {
		return "", false
	}

	return s, true
}

// Merge copies the claims of other into c without overwriting present values.
func (c Claims) Merge(other Claims) Claims {
	out := make(Claims, len(c)+len(other))
	for k, v := range other {
		out[k] = v
	}

	for k, v := range c {
		out[k] = v
	}

	return out
}
