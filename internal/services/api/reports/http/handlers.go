// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"crimestats/internal/core/criteria"
	"crimestats/internal/modkit/httpkit"
	"crimestats/internal/platform/net/http/bind"
	"crimestats/internal/services/api/reports/domain"
	svc "crimestats/internal/services/api/reports/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// dashboard form submission as query string
	httpkit.Get(r, "/{report}", h.query)

	// same parameters as a JSON body
	httpkit.PostJSON[criteria.Params](r, "/{report}", h.body)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /reports/{report} Reports runReport
// @Summary Run a dashboard report from query parameters
// @Tags Reports
// @Produce json
// @Param report path string true "Report type" Enums(crime-type, geographic, demographic, external-events, long-term, seasonal)
// @Param crimeCategories query []string false "Crime category labels" collectionFormat(multi)
// @Param laRegions query []string false "Region labels" collectionFormat(multi)
// @Param startDate query string false "Range start, YYYY-MM-DD"
// @Param endDate query string false "Range end, YYYY-MM-DD"
// @Param ageRange query string false "Age bucket"
// @Param gender query string false "Victim gender"
// @Param descent query []string false "Descent labels" collectionFormat(multi)
// @Param eventPeriodStart query string false "Event start, YYYY-MM-DD"
// @Param eventPeriodEnd query string false "Event end, YYYY-MM-DD"
// @Param monthsBeforeEvent query string false "Months before the event"
// @Param monthsAfterEvent query string false "Months after the event"
// @Param season query string false "Calendar filter mode" Enums(season, holiday)
// @Param seasons query []string false "Season labels" collectionFormat(multi)
// @Param holidays query []string false "Holiday labels" collectionFormat(multi)
// @Param timeGranularity query string false "Trend bucket" Enums(Year, Quarter, Month)
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "bad request"
// @Failure 404 {object} httpkit.Envelope "unknown report"
// @Failure 502 {object} httpkit.Envelope "executor failure"
// @Failure 503 {object} httpkit.Envelope "executor unavailable"
// @Router /reports/{report} [get]
func (h *handlers) query(r *stdhttp.Request) (any, error) {
	p := criteria.FromValues(r.URL.Query())
	if err := bind.Validate(p); err != nil {
		return nil, err
	}
	return h.run(r, p)
}

// swagger:route POST /reports/{report} Reports runReportJSON
// @Summary Run a dashboard report from a JSON body
// @Tags Reports
// @Accept json
// @Produce json
// @Param report path string true "Report type" Enums(crime-type, geographic, demographic, external-events, long-term, seasonal)
// @Param payload body criteria.Params true "Filters"
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "bad request"
// @Failure 404 {object} httpkit.Envelope "unknown report"
// @Failure 502 {object} httpkit.Envelope "executor failure"
// @Failure 503 {object} httpkit.Envelope "executor unavailable"
// @Router /reports/{report} [post]
func (h *handlers) body(r *stdhttp.Request, p criteria.Params) (any, error) {
	return h.run(r, p)
}

func (h *handlers) run(r *stdhttp.Request, p criteria.Params) (any, error) {
	rep, err := h.svc.Run(r.Context(), chi.URLParam(r, "report"), p)
	if err != nil {
		// a failed execution still echoes the request so the form can re-render
		if rep.State == domain.StateFailed {
			return httpkit.Failed(err, rep), nil
		}
		return nil, err
	}
	return rep, nil
}
