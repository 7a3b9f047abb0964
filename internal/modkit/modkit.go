// Package modkit wires api modules: the shared deps, the build options every
// module accepts and a registry that mounts them in order
package modkit

import (
	"net/http"

	"crimestats/internal/modkit/httpkit"
	"crimestats/internal/modkit/repokit"
	"crimestats/internal/platform/config"
	"crimestats/internal/platform/logger"
	"crimestats/internal/platform/store"
	str "crimestats/internal/platform/strings"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil when the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Module is the surface the api composes
type Module interface {
	Name() string
	// MountRoutes attaches the module under its prefix on r
	MountRoutes(r httpkit.Router)
	// Ports is the module's port bundle for cross wiring, or nil
	Ports() any
}

// Base carries the mount state modules share; embed it and implement Ports
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
}

// NewBase applies opts over the module defaults
// routes registers the module's own endpoints; a WithRegister hook runs after it
func NewBase(name, prefix string, routes func(httpkit.Router), opts ...Option) Base {
	c := buildCfg{name: name, prefix: prefix}
	for _, o := range opts {
		o(&c)
	}
	return Base{
		name:   str.MustString(c.name, "module name"),
		prefix: str.MustPrefix(c.prefix),
		mws:    append([]func(http.Handler) http.Handler(nil), c.mw...),
		routes: func(r httpkit.Router) {
			if routes != nil {
				routes(r)
			}
			if c.register != nil {
				c.register(r)
			}
		},
	}
}

// Name returns the module name
func (b Base) Name() string { return b.name }

// Prefix returns the normalized mount prefix
func (b Base) Prefix() string { return b.prefix }

// Middlewares returns the per module middleware in order
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }

// MountRoutes mounts the module routes under its prefix
func (b Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.prefix, b.mws, b.routes)
}
