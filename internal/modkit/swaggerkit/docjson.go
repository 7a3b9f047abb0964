package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"crimestats/internal/platform/config"
	perr "crimestats/internal/platform/errors"
	pnet "crimestats/internal/platform/net"

	docs "crimestats/internal/services/api/docs"
)

// SpecMutator adjusts the decoded document before it is served
type SpecMutator func(map[string]any)

var (
	mutators  []SpecMutator
	docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
)

// Register adds a mutator; call it from init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

const exampleRequestID = "api-7f3c/000001"

// defaults are responses every operation documents unless it says otherwise
var defaults = []struct {
	status string
	desc   string
	err    error
}{
	{"400", "Bad Request", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "crimeCategories must be at most 16"), "crimeCategories")},
	{"500", "Internal Server Error", perr.PanicErrf("panic recovered")},
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		if suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				info["title"] = strings.TrimSpace(str(info["title"]) + " " + suffix)
			}
		}
		ensureErrorSchema(spec)
		for _, d := range defaults {
			_, wire := pnet.Error(d.err, exampleRequestID)
			resp := map[string]any{
				"description": d.desc,
				"content": map[string]any{"application/json": map[string]any{
					"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
					"example": wire,
				}},
			}
			eachOperation(spec, func(responses map[string]any) {
				if _, ok := responses[d.status]; !ok {
					responses[d.status] = resp
				}
			})
		}
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// ensureServers pins the document to OAS 3.0.3, which the bundled UI renders,
// and adds a server entry for the api base path
func ensureServers(spec map[string]any, base string) {
	delete(spec, "swagger")
	if v := str(spec["openapi"]); v == "" || strings.HasPrefix(v, "2") || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema adds the error envelope schema when the document lacks it
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status"},
	}
}

// eachOperation calls fn with the responses object of every operation
func eachOperation(spec map[string]any, fn func(responses map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range item {
			if op, ok := o.(map[string]any); ok {
				fn(child(op, "responses"))
			}
		}
	}
}
