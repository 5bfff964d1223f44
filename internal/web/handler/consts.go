package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilFatalLogMsg is used if app, cfg or registry var pointer is nil.
	ErrNilFatalLogMsg = "app, cfg or registry is nil"
)
