package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder routes prefix to a subrouter, applies mw to it, then lets mount
// register endpoints
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI is MountUnder at /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), registry.Mount)
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
