package navbar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	actionLogin   = "login"
	actionLogout  = "logout"
	actionSidebar = "sidebar_toggle"
)

// actions counts user triggered navbar actions.
var actions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "navportal",
		Subsystem: "navbar",
		Name:      "actions_total",
		Help:      "Number of navbar actions, differentiated by action.",
	},
	[]string{"action"},
)
