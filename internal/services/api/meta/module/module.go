// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"crimestats/internal/core/category"
	"crimestats/internal/core/version"
	modkit "crimestats/internal/modkit"
	"crimestats/internal/modkit/httpkit"

	metahttp "crimestats/internal/services/api/meta/http"
)

// Module serves health, readiness and the dashboard form metadata
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module
// a nil catalog means the embedded default; mods lists the mounted modules for /service
func New(deps modkit.Deps, cat *category.Catalog, mods func() []string, opts ...modkit.Option) *Module {
	m := &Module{startedAt: time.Now()}
	m.Base = modkit.NewBase("meta", "/meta", func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.ServiceName,
			StartedAt:   m.startedAt,
			Catalog:     cat,
			PG:          deps.PG,
			CH:          deps.CH,
			Modules:     mods,
		})
	}, opts...)
	return m
}

// Ports implements modkit.Module; meta exposes none
func (m *Module) Ports() any { return nil }
