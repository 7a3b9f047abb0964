// Package config reads application settings from environment variables.
// Readers never fail: a missing or malformed value falls back to the default
// and malformed ones are logged. MustString is the one exception.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"crimestats/internal/platform/logger"
	pstrings "crimestats/internal/platform/strings"
	ptime "crimestats/internal/platform/time"
)

// Conf is a namespaced view over the environment, e.g. New().Prefix("REPORTS_")
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (name, val string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// may parses key with parse, falling back to def when unset or invalid
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Err(err).Msg("invalid config value; using default")
		return def
	}
	return v
}

// MustString panics when key is unset
func (c Conf) MustString(key string) string {
	name, v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go durations such as 250ms or 2m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayDate takes a YYYY-MM-DD calendar date
func (c Conf) MayDate(key string, def time.Time) time.Time { return may(c, key, def, ptime.Parse) }

// MayCSV splits a comma separated list, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	_, v := c.lookup(key)
	if out := pstrings.Fields([]string{v}, ","); len(out) > 0 {
		return out
	}
	return def
}

// MayEnum returns the allowed spelling matching key case-insensitively, or
// def when unset. Any other value is a startup error and panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	name, v := c.lookup(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", name).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return def
}
