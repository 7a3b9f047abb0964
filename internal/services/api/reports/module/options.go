package module

import (
	"strings"
	"time"

	"crimestats/internal/core/category"
	"crimestats/internal/core/window"
	"crimestats/internal/platform/config"
	ptime "crimestats/internal/platform/time"
)

// Backends
const (
	BackendPG = "pg"
	BackendCH = "ch"
)

// Options configure the reports module
type Options struct {
	// Backend selects the executor, pg or ch
	Backend string

	// CatalogPath overrides the embedded label catalog when set
	CatalogPath string

	// Loaded short circuits Catalog when the caller already holds one
	Loaded *category.Catalog

	Fallback        window.Fallback
	LongTermFloor   time.Time
	Strict          bool
	Timeout         time.Duration
	EchoSQL         bool
	BreakerFailures int
	BreakerCooldown time.Duration
}

// FromConfig reads SERVICE_REPORTS_* and CORE_API_ECHO_SQL from the root config
// an event bound set to "none" clears the fallback so the last full quarter applies
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SERVICE_REPORTS_")
	return Options{
		Backend:     strings.ToLower(c.MayEnum("BACKEND", BackendPG, BackendPG, BackendCH)),
		CatalogPath: c.MayString("CATALOG", ""),
		Fallback: window.Fallback{
			Start: dateOrNone(c, "EVENT_START", ptime.Date(2024, time.January, 1)),
			End:   dateOrNone(c, "EVENT_END", ptime.Date(2024, time.March, 31)),
		},
		LongTermFloor:   c.MayDate("LONGTERM_FLOOR", ptime.Date(2020, time.January, 1)),
		Strict:          c.MayBool("STRICT", false),
		Timeout:         c.MayDuration("TIMEOUT", 15*time.Second),
		EchoSQL:         cfg.Prefix("CORE_API_").MayBool("ECHO_SQL", false),
		BreakerFailures: c.MayInt("BREAKER_FAILURES", 5),
		BreakerCooldown: c.MayDuration("BREAKER_COOLDOWN", 30*time.Second),
	}
}

// Catalog loads the configured catalog or the embedded default
func (o Options) Catalog() (*category.Catalog, error) {
	if o.Loaded != nil {
		return o.Loaded, nil
	}
	if o.CatalogPath == "" {
		return category.Default(), nil
	}
	return category.LoadFile(o.CatalogPath)
}

func dateOrNone(c config.Conf, key string, def time.Time) time.Time {
	if strings.EqualFold(c.MayString(key, ""), "none") {
		return time.Time{}
	}
	return c.MayDate(key, def)
}
