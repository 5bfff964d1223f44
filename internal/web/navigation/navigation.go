// Package navigation describes the sidebar menu and the active page.
package navigation

import "github.com/samber/lo"

// Sections of the sidebar menu.
const (
	SectionHome    = "home"
	SectionSession = "session"
)

// Item is a single sidebar link.
type Item struct {
	Title   string
	URL     string
	Section string
	// Authenticated items are only listed for signed in users.
	Authenticated bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	Items         []Item
}

// Menu is the sidebar menu of the portal.
var Menu = []Item{ //nolint:gochecknoglobals
	{Title: "Home", URL: "/", Section: SectionHome},
	{Title: "Session", URL: "/navbar", Section: SectionSession, Authenticated: true},
}

// NewContext creates a new navigation context for the menu visible to the user.
func NewContext(pageTitle, activeSection string, authenticated bool) *Context {
	items := lo.Filter(Menu, func(item Item, _ int) bool {
		return authenticated || !item.Authenticated
	})

	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Items:         items,
	}
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
