// Package main provides the entry point of navportal, a web portal whose
// navigation bar follows the OpenID Connect sign in state of each browser
// session. It runs a Fiber web server that renders the pages, keeps the
// navbar state per session and redirects to the identity provider for
// login and logout.
package main
