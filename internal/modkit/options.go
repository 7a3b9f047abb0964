package modkit

import (
	"net/http"

	"crimestats/internal/modkit/httpkit"
)

// Option overrides a module default at construction
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// WithName renames the module in logs and the registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix mounts the module under another path
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithRegister attaches extra endpoints after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}
