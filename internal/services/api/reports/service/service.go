// Package service runs dashboard reports: normalize, plan, render, execute
package service

import (
	"context"
	"errors"
	"time"

	"crimestats/internal/core/category"
	"crimestats/internal/core/criteria"
	"crimestats/internal/core/queryplan"
	"crimestats/internal/core/window"
	perr "crimestats/internal/platform/errors"
	"crimestats/internal/platform/logger"
	"crimestats/internal/platform/metrics"
	"crimestats/internal/platform/store"
	"crimestats/internal/services/api/reports/domain"
	"crimestats/internal/services/api/reports/repo"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// BreakerOptions tune the executor circuit breaker
type BreakerOptions struct {
	// Failures is the consecutive failure count that opens the breaker
	Failures uint32
	// Cooldown is how long the breaker stays open before probing
	Cooldown time.Duration
}

// Options configure a Svc
type Options struct {
	Catalog       *category.Catalog
	Fallback      window.Fallback
	LongTermFloor time.Time
	Strict        bool
	// Timeout bounds one executor call; zero disables it
	Timeout time.Duration
	// EchoSQL adds the rendered statement to every payload
	EchoSQL bool
	Breaker BreakerOptions
	// Now is the clock used for the default event window
	Now func() time.Time
}

// Svc implements the reports service
type Svc struct {
	Repo repo.Repo
	opt  Options
	cb   *gobreaker.CircuitBreaker[store.Result]
}

// New constructs a reports service
func New(r repo.Repo, opt Options) *Svc {
	if r == nil {
		panic("reports.Service requires a non nil Repo")
	}
	if opt.Catalog == nil {
		opt.Catalog = category.Default()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Breaker.Failures == 0 {
		opt.Breaker.Failures = 5
	}
	if opt.Breaker.Cooldown <= 0 {
		opt.Breaker.Cooldown = 30 * time.Second
	}
	return &Svc{Repo: r, opt: opt, cb: newBreaker(string(r.Dialect()), opt.Breaker)}
}

func newBreaker(name string, o BreakerOptions) *gobreaker.CircuitBreaker[store.Result] {
	metrics.BreakerState.WithLabelValues(name).Set(0)
	return gobreaker.NewCircuitBreaker[store.Result](gobreaker.Settings{
		Name:        "reports-" + name,
		MaxRequests: 1,
		Timeout:     o.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= o.Failures
		},
		// a caller walking away is not an executor fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			logger.Named("reports").Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("executor breaker state change")
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}

// Run builds and executes one report
func (s *Svc) Run(ctx context.Context, report string, p criteria.Params) (domain.Report, error) {
	r, ok := queryplan.ParseReport(report)
	if !ok {
		return domain.Report{}, perr.WithField(perr.NotFoundf("unknown report %q", report), "report")
	}

	id := uuid.NewString()
	ctx = logger.WithField(logger.WithField(ctx, "report", string(r)), "report_id", id)
	log := logger.C(ctx)

	out := domain.Report{
		ReportID:   id,
		Report:     string(r),
		FormParams: p,
		Warnings:   []criteria.Issue{},
		Result:     domain.EmptyResult(),
	}

	c, err := criteria.Build(p, criteria.Options{
		Catalog:  s.opt.Catalog,
		Fallback: s.opt.Fallback,
		Now:      s.opt.Now(),
		Strict:   s.opt.Strict,
	})
	for _, is := range c.Issues {
		metrics.NormalizationIssues.WithLabelValues(string(is.Kind)).Inc()
	}
	if err != nil {
		return domain.Report{}, err
	}
	out.Criteria = c.View()
	if len(c.Issues) > 0 {
		out.Warnings = c.Issues
	}

	plan, err := queryplan.Build(r, c, queryplan.Options{LongTermFloor: s.opt.LongTermFloor})
	if err != nil {
		return domain.Report{}, err
	}
	log.Debug().
		Int("predicates", len(plan.Predicates)).
		Int("params", len(plan.Params)).
		Bool("empty", plan.Empty).
		Msg("report built")

	if plan.Empty {
		out.State = domain.StateEmpty
		metrics.ReportsTotal.WithLabelValues(string(r), string(out.State)).Inc()
		return out, nil
	}

	sql, args, err := queryplan.Render(plan, s.Repo.Dialect())
	if err != nil {
		return domain.Report{}, err
	}
	if s.opt.EchoSQL {
		out.Query = &domain.Query{Dialect: string(s.Repo.Dialect()), SQL: sql, Args: args}
	}

	start := time.Now()
	res, err := s.execute(ctx, sql, args)
	elapsed := time.Since(start)
	metrics.QueryDuration.WithLabelValues(string(r), string(s.Repo.Dialect())).Observe(elapsed.Seconds())

	if err != nil {
		out.State = domain.StateFailed
		metrics.ReportsTotal.WithLabelValues(string(r), string(out.State)).Inc()
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("report failed")
		return out, executorError(err)
	}

	out.State = domain.StateOK
	out.Result = domain.Result{Rows: res.Rows, RowsAffected: len(res.Rows), Columns: res.Columns}
	if out.Result.Columns == nil {
		out.Result.Columns = []string{}
	}
	if out.Result.Rows == nil {
		out.Result.Rows = []map[string]any{}
	}
	metrics.ReportsTotal.WithLabelValues(string(r), string(out.State)).Inc()
	metrics.QueryRows.WithLabelValues(string(r)).Observe(float64(len(res.Rows)))
	log.Info().Int("rows", len(res.Rows)).Dur("elapsed", elapsed).Msg("report executed")
	return out, nil
}

func (s *Svc) execute(ctx context.Context, sql string, args []any) (store.Result, error) {
	return s.cb.Execute(func() (store.Result, error) {
		if s.opt.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opt.Timeout)
			defer cancel()
		}
		return s.Repo.Fetch(ctx, sql, args)
	})
}

// executorError maps executor failures onto the api error taxonomy
func executorError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "report executor unavailable")
	}
	return perr.FromExecutor(err, "report query")
}
