// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"crimestats/internal/core/agerange"
	"crimestats/internal/core/category"
	"crimestats/internal/core/criteria"
	"crimestats/internal/core/queryplan"
	"crimestats/internal/core/seasonal"
	"crimestats/internal/core/version"
	"crimestats/internal/modkit/httpkit"
	perr "crimestats/internal/platform/errors"
	ptime "crimestats/internal/platform/time"

	"golang.org/x/sync/errgroup"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Catalog     *category.Catalog
	PG          any
	CH          any
	// Modules lists the mounted api modules; nil reports none
	Modules func() []string
	// Now is the clock for health and calendar defaults
	Now func() time.Time
}

const readyTimeout = 2 * time.Second

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Catalog == nil {
		d.Catalog = category.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/catalog", h.catalog)
	httpkit.Get(r, "/calendar", h.calendar)
	httpkit.Get(r, "/regions", h.regions)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"crimestats-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name      string `json:"name"   example:"pg"`
	Status    string `json:"status" example:"ok"` // ok fail skipped unknown
	Error     string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
	LatencyMs int64  `json:"latency_ms,omitempty" example:"3"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"    example:"crimestats-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"meta,reports"`
}

// CatalogResponse lists every filter label the dashboard form offers
type CatalogResponse struct {
	Reports         []string             `json:"reports"`
	CrimeCategories []string             `json:"crimeCategories"`
	Regions         []string             `json:"laRegions"`
	Descent         []string             `json:"descent"`
	Genders         []string             `json:"genders"`
	AgeRanges       []string             `json:"ageRanges"`
	Seasons         []string             `json:"seasons"`
	Holidays        []string             `json:"holidays"`
	Granularities   []string             `json:"timeGranularities"`
	ChartColors     []string             `json:"chartColors"`
	ColorScale      []category.ColorStep `json:"colorScale"`
}

// CalendarResponse classifies one day
type CalendarResponse struct {
	Date    string `json:"date"    example:"2024-11-28"`
	Season  string `json:"season"  example:"Fall"`
	Holiday string `json:"holiday" example:"Thanksgiving"`
}

// Region is one map region with its geometry
type Region struct {
	Label    string           `json:"label"    example:"North"`
	Areas    []string         `json:"areas"`
	Center   category.Point   `json:"center"`
	Boundary []category.Point `json:"boundary"`
}

// RegionsResponse carries the map regions and colour scale
type RegionsResponse struct {
	Regions    []Region             `json:"regions"`
	ColorScale []category.ColorStep `json:"colorScale"`
	ColorFloor string               `json:"colorFloor" example:"#bfdbfe"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with executor checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} httpkit.Envelope "an executor is unreachable"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	deps := []struct {
		name string
		dep  any
	}{{"pg", h.deps.PG}, {"ch", h.deps.CH}}

	checks := make([]ReadyCheck, len(deps))
	g, ctx := errgroup.WithContext(r.Context())
	for i, d := range deps {
		g.Go(func() error {
			checks[i] = probe(ctx, d.name, d.dep)
			return nil
		})
	}
	_ = g.Wait()

	resp := ReadyResponse{Status: "ok", Checks: checks, Now: h.deps.Now().UTC().Format(time.RFC3339)}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			resp.Status = "fail"
		case c.Status == "unknown" && resp.Status == "ok":
			resp.Status = "degraded"
		}
	}
	if resp.Status == "fail" {
		return httpkit.Failed(perr.Unavailablef("executor not ready"), resp), nil
	}
	return resp, nil
}

// probe pings one executor under its own deadline
func probe(ctx stdctx.Context, name string, dep any) ReadyCheck {
	if dep == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := dep.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	ctx, cancel := stdctx.WithTimeout(ctx, readyTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	rc := ReadyCheck{Name: name, Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		rc.Status, rc.Error = "fail", err.Error()
	}
	return rc
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Now().Sub(h.deps.StartedAt)
	mods := []string{}
	if h.deps.Modules != nil {
		mods = append(mods, h.deps.Modules()...)
	}
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
		Modules: mods,
	}, nil
}

// swagger:route GET /meta/catalog Meta metaCatalog
// @Summary Filter labels for the report form
// @Tags Meta
// @Produce json
// @Success 200 {object} CatalogResponse "ok"
// @Router /meta/catalog [get]
func (h *handlers) catalog(_ *http.Request) (any, error) {
	c := h.deps.Catalog
	out := CatalogResponse{
		CrimeCategories: c.CrimeLabels,
		Regions:         c.RegionLabels,
		Descent:         c.DescentLabels,
		Genders:         c.Genders,
		AgeRanges:       agerange.Labels(),
		ChartColors:     c.ChartColors(),
		ColorScale:      c.ColorScale(),
	}
	for _, r := range queryplan.Reports() {
		out.Reports = append(out.Reports, string(r))
	}
	for _, s := range seasonal.Seasons() {
		out.Seasons = append(out.Seasons, string(s))
	}
	for _, hd := range seasonal.Holidays() {
		out.Holidays = append(out.Holidays, string(hd))
	}
	for _, g := range criteria.Granularities() {
		out.Granularities = append(out.Granularities, string(g))
	}
	return out, nil
}

// swagger:route GET /meta/calendar Meta metaCalendar
// @Summary Season and holiday of a date
// @Tags Meta
// @Produce json
// @Param date query string false "Day as YYYY-MM-DD, defaults to today"
// @Success 200 {object} CalendarResponse "ok"
// @Failure 400 {object} httpkit.Envelope "bad date"
// @Router /meta/calendar [get]
func (h *handlers) calendar(r *http.Request) (any, error) {
	d := ptime.Day(h.deps.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := ptime.Parse(raw)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "date must be YYYY-MM-DD"), "date")
		}
		d = parsed
	}
	return CalendarResponse{
		Date:    ptime.Format(d),
		Season:  string(seasonal.SeasonOf(d)),
		Holiday: string(seasonal.HolidayOf(d)),
	}, nil
}

// swagger:route GET /meta/regions Meta metaRegions
// @Summary Map regions with centers, outlines and colour scale
// @Tags Meta
// @Produce json
// @Success 200 {object} RegionsResponse "ok"
// @Router /meta/regions [get]
func (h *handlers) regions(_ *http.Request) (any, error) {
	c := h.deps.Catalog
	out := RegionsResponse{
		Regions:    make([]Region, 0, len(c.RegionLabels)),
		ColorScale: c.ColorScale(),
		ColorFloor: c.RegionColor(0),
	}
	for _, label := range c.RegionLabels {
		areas := c.Regions[label]
		out.Regions = append(out.Regions, Region{
			Label:    label,
			Areas:    areas,
			Center:   c.RegionCenter(label),
			Boundary: c.RegionBoundary(areas),
		})
	}
	return out, nil
}
