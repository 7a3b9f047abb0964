// Package strings holds the small string helpers shared by config, routing and
// request parsing
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s when it has non whitespace content and panics naming
// the missing value otherwise
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path such as "reports/" to "/reports"
// the bare root is rejected
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Fields splits every value on sep, trims the pieces and drops blanks
// repeated keys and comma lists therefore read the same way
func Fields(vals []string, sep string) []string {
	var out []string
	for _, raw := range vals {
		for _, s := range std.Split(raw, sep) {
			if s = std.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
