// Package navbar implements the navigation bar of the portal.
//
// A Component belongs to one browser session. It projects the session's
// authentication and profile streams into the identity shown in the bar,
// keeps the sidebar state in sync with the nav-open class of the page root
// element, and drives login and logout redirects.
//
// All stream handling happens in Run, a single event loop. Every profile
// subscription is bound to a child context that is cancelled when the session
// signs out, when a new profile subscription replaces it, and when Run
// returns, so no callbacks outlive the component.
//
// Example:
//
//	comp := navbar.New(client, navbar.LogoutConfig{ClientID: id, Domain: domain}, nil)
//	go comp.Run(ctx)
//
//	view := comp.Snapshot()
package navbar
