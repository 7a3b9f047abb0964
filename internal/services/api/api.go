// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"crimestats/internal/core/version"
	"crimestats/internal/platform/config"
	"crimestats/internal/platform/logger"
	"crimestats/internal/platform/metrics"
	phttp "crimestats/internal/platform/net/http"
	"crimestats/internal/platform/store"

	"crimestats/internal/modkit"
	"crimestats/internal/modkit/httpkit"
	"crimestats/internal/modkit/swaggerkit"

	metamod "crimestats/internal/services/api/meta/module"
	reportsmod "crimestats/internal/services/api/reports/module"
)

func init() {
	// the served document carries the build version
	swaggerkit.Register(func(spec map[string]any) {
		if info, ok := spec["info"].(map[string]any); ok {
			info["version"] = version.Info().Version
		}
	})
}

// Options are the API options
type Options struct {
	// Config is the root config; modules apply their own prefixes
	Config         config.Conf
	Store          *store.Store
	Reports        reportsmod.Options
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	// RateLimit is requests per minute per client ip; zero disables it
	RateLimit int
	Origins   []string
	Timeout   time.Duration
}

// FromConfig reads CORE_API_* and the reports settings
func FromConfig(cfg config.Conf, st *store.Store) Options {
	api := cfg.Prefix("CORE_API_")
	return Options{
		Config:         cfg,
		Store:          st,
		Reports:        reportsmod.FromConfig(cfg),
		EnableSwagger:  api.MayBool("SWAGGER", true),
		EnableProfiler: api.MayBool("PROFILER", false),
		EnableMetrics:  api.MayBool("METRICS", true),
		RateLimit:      api.MayInt("RATE_LIMIT", 120),
		Origins:        api.MayCSV("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Timeout:        api.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Log: *logger.Named("api"), Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG, deps.CH = opt.Store.PG, opt.Store.CH
	}

	// one catalog shared by the form metadata and the report planner
	cat, err := opt.Reports.Catalog()
	if err != nil {
		logger.Named("api").Panic().Err(err).Str("path", opt.Reports.CatalogPath).Msg("catalog load failed")
	}
	opt.Reports.Loaded = cat

	reg := modkit.NewRegistry()
	reg.MustAdd(
		metamod.New(deps, cat, reg.Names),
		reportsmod.New(deps, opt.Reports),
	)

	stack := httpkit.Stack(httpkit.StackOptions{
		Origins:   opt.Origins,
		RateLimit: opt.RateLimit,
		Metrics:   opt.EnableMetrics,
		Timeout:   opt.Timeout,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, reg.Mount)
	logger.Named("api").Info().Strs("modules", reg.Names()).Msg("api mounted")

	// Swagger + profiler + metrics outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/v1/meta/health", http.StatusTemporaryRedirect)
	})
}
