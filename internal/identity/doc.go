// Package identity projects OpenID Connect profile claims into the identity
// shown in the navigation bar.
//
// The identity provider hands out a claim map per signed in user. The
// navigation bar only needs a display name and its initials, so this package
// resolves the name through an ordered claim fallback (see UsernameClaims)
// and derives the initials from it:
//
//	name, ok := identity.UsernameClaims.Resolve(claims)
//	initials := identity.Initials(name)
//
// Display values are empty strings when absent. A Display is only ever
// populated for an authenticated session, see Project.
package identity
