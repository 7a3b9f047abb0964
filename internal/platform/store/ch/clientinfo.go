package ch

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process to the server so report queries can be
// told apart in system.query_log. role is "api" or "explain".
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	var ci clickhouse.ClientInfo
	add := func(name, v string) {
		if v = strings.TrimSpace(v); v != "" {
			ci.Products = append(ci.Products, struct{ Name, Version string }{name, v})
		}
	}
	add("crimestats", tag)
	add("role", role)
	add("go", runtime.Version())
	add("commit", revision())
	return ci
}

func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value[:min(7, len(s.Value))]
		}
	}
	return ""
}
