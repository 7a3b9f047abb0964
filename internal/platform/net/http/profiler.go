package http

import (
	stdhttp "net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves net/http/pprof under prefix, for example "/debug"
// it is a no-op unless enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	h := stdhttp.StripPrefix(prefix, chimw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
