// Package swaggerkit mounts the Swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "crimestats/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives
const DocsPath = "/docs"

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
