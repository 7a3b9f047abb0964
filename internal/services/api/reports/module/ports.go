package module

import (
	"context"

	"crimestats/internal/core/criteria"
	"crimestats/internal/services/api/reports/domain"
	reportssvc "crimestats/internal/services/api/reports/service"
)

// Ports is what the reports module exposes to other modules and tools
type Ports struct {
	Reports domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptReportsPort struct{ svc reportssvc.Service }

// Run builds and executes one report
func (a adaptReportsPort) Run(ctx context.Context, report string, p criteria.Params) (domain.Report, error) {
	return a.svc.Run(ctx, report, p)
}
