package domain

import (
	"context"

	"crimestats/internal/core/criteria"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Run builds and executes one report; a failed execution returns the
	// failed Report alongside the error so callers can still render it
	Run(ctx context.Context, report string, p criteria.Params) (Report, error)
}
