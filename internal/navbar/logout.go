package navbar

import (
	"fmt"
	"strings"
)

// LandingPath is the application path the identity provider returns to after logout.
const LandingPath = "/logout"

// LogoutConfig holds the static identity provider settings used for logout.
type LogoutConfig struct {
	// ClientID is the OIDC client identifier.
	ClientID string
	// Domain is the base URL of the identity provider's hosted UI.
	Domain string
}

// LogoutURL builds the identity provider logout redirect:
//
//	{domain}/logout?client_id={clientID}&logout_uri={origin}/logout
//
// Values are inserted as configured, trailing slashes of domain and origin are dropped.
func LogoutURL(cfg LogoutConfig, origin string) (string, error) {
	switch {
	case cfg.Domain == "":
		return "", ErrMissingDomain
	case cfg.ClientID == "":
		return "", ErrMissingClientID
	case origin == "":
		return "", ErrMissingOrigin
	}

	return fmt.Sprintf("%s/logout?client_id=%s&logout_uri=%s%s",
		strings.TrimRight(cfg.Domain, "/"),
		cfg.ClientID,
		strings.TrimRight(origin, "/"),
		LandingPath,
	), nil
}
