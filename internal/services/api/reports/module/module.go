// Package module wires reports into the API using modkit
package module

import (
	modkit "crimestats/internal/modkit"
	"crimestats/internal/modkit/httpkit"
	"crimestats/internal/platform/logger"
	reportshttp "crimestats/internal/services/api/reports/http"
	reportsrepo "crimestats/internal/services/api/reports/repo"
	reportssvc "crimestats/internal/services/api/reports/service"
)

// Module implements the reports module
type Module struct {
	modkit.Base

	ports Ports
	svc   reportssvc.Service
}

// New constructs the reports module; it panics when the selected backend is
// missing from deps or the catalog cannot be loaded
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	cat, err := o.Catalog()
	if err != nil {
		logger.Named("reports").Panic().Err(err).Str("path", o.CatalogPath).Msg("catalog load failed")
	}

	svc := reportssvc.New(newRepo(deps, o), reportssvc.Options{
		Catalog:       cat,
		Fallback:      o.Fallback,
		LongTermFloor: o.LongTermFloor,
		Strict:        o.Strict,
		Timeout:       o.Timeout,
		EchoSQL:       o.EchoSQL,
		Breaker: reportssvc.BreakerOptions{
			Failures: uint32(max(o.BreakerFailures, 0)),
			Cooldown: o.BreakerCooldown,
		},
	})

	m := &Module{svc: svc, ports: Ports{Reports: adaptReportsPort{svc: svc}}}
	m.Base = modkit.NewBase("reports", "/reports", func(r httpkit.Router) {
		reportshttp.Register(r, m.svc)
	}, opts...)
	return m
}

func newRepo(deps modkit.Deps, o Options) reportsrepo.Repo {
	switch o.Backend {
	case BackendCH:
		if deps.CH == nil {
			panic("reports: clickhouse backend selected but not configured")
		}
		return reportsrepo.NewCH(deps.CH)
	default:
		if deps.PG == nil {
			panic("reports: postgres backend selected but not configured")
		}
		return reportsrepo.InTx(deps.PG, reportsrepo.NewPG(),
			reportsrepo.ReadOnly, reportsrepo.StatementTimeout(o.Timeout))
	}
}
