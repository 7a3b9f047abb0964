// Package criteria normalizes raw report parameters into FilterCriteria
// malformed values degrade to "no filter" and are reported as issues; strict
// mode turns those issues into a validation error instead
package criteria

import (
	"strconv"
	"strings"
	"time"

	"crimestats/internal/core/agerange"
	"crimestats/internal/core/category"
	"crimestats/internal/core/seasonal"
	"crimestats/internal/core/window"
	perr "crimestats/internal/platform/errors"
	ptime "crimestats/internal/platform/time"
)

// MaxMonths bounds the event lookback and lookahead
const MaxMonths = 240

// Options tune a Build
type Options struct {
	Catalog  *category.Catalog
	Fallback window.Fallback
	// Now anchors the fallback window when none is configured
	Now    time.Time
	Strict bool
}

// DateRange is the primary report range; nil bounds are open
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Criteria is the normalized filter set for one report request
type Criteria struct {
	Crime     category.CodeSet
	Areas     category.CodeSet
	Ethnicity category.CodeSet
	Gender    string
	Age       *agerange.Range
	Range     DateRange

	Granularity string

	// Events always holds a structurally valid window set. Narrow holds the
	// report range bounds that did not stand in for an event date; event
	// reports apply them on top of the window span.
	Events     window.EventSet
	EventStart bool
	EventEnd   bool
	Narrow     DateRange

	Seasons  []seasonal.Season
	Holidays []seasonal.Holiday

	Issues []Issue
}

// Build normalizes p
// the only error outside strict mode is a missing catalog
func Build(p Params, opt Options) (Criteria, error) {
	if opt.Catalog == nil {
		return Criteria{}, perr.Internalf("criteria: catalog is required")
	}
	b := builder{}
	c := Criteria{
		Crime:       b.expand("crimeCategories", p.CrimeCategories, opt.Catalog.Crime),
		Areas:       b.expand("laRegions", p.LARegions, opt.Catalog.Regions),
		Ethnicity:   b.expand("descent", p.Descent, opt.Catalog.Descent),
		Gender:      strings.TrimSpace(p.Gender),
		Age:         b.age(p.AgeRange),
		Range:       DateRange{Start: b.date("startDate", p.StartDate), End: b.date("endDate", p.EndDate)},
		Granularity: strings.TrimSpace(p.TimeGranularity),
	}

	// event dates fall back to the report range, then to the configured window
	evStart := b.date("eventPeriodStart", p.EventPeriodStart)
	if evStart == nil {
		evStart = c.Range.Start
	} else {
		c.Narrow.Start = c.Range.Start
	}
	evEnd := b.date("eventPeriodEnd", p.EventPeriodEnd)
	if evEnd == nil {
		evEnd = c.Range.End
	} else {
		c.Narrow.End = c.Range.End
	}
	c.EventStart, c.EventEnd = evStart != nil, evEnd != nil
	during := opt.Fallback.Resolve(evStart, evEnd, opt.Now)
	c.Events = window.Compute(during.Start, during.End,
		b.months("monthsBeforeEvent", p.MonthsBeforeEvent),
		b.months("monthsAfterEvent", p.MonthsAfterEvent))

	mode := strings.ToLower(strings.TrimSpace(p.FilterBy))
	if mode == "" || mode == "season" || mode == "seasons" {
		c.Seasons = b.seasons(p.Seasons)
	}
	if mode == "" || mode == "holiday" || mode == "holidays" {
		c.Holidays = b.holidays(p.Holidays)
	}

	c.Issues = b.issues
	if opt.Strict && len(b.issues) > 0 {
		return c, b.issues[0].Err()
	}
	return c, nil
}

type builder struct{ issues []Issue }

func (b *builder) note(kind IssueKind, field, value string) {
	b.issues = append(b.issues, Issue{Kind: kind, Field: field, Value: value})
}

func (b *builder) expand(field string, labels []string, t category.Table) category.CodeSet {
	codes, unknown := category.ExpandReport(labels, t)
	for _, u := range unknown {
		b.note(UnrecognizedCategoryLabel, field, u)
	}
	return codes
}

func (b *builder) age(label string) *agerange.Range {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	r := agerange.Resolve(label)
	if r == nil {
		b.note(UnrecognizedCategoryLabel, "ageRange", label)
	}
	return r
}

func (b *builder) date(field, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := ptime.Parse(raw)
	if err != nil {
		b.note(InvalidDateFormat, field, raw)
		return nil
	}
	return &d
}

func (b *builder) months(field, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > MaxMonths {
		b.note(InvalidNumber, field, raw)
		return 0
	}
	return n
}

func (b *builder) seasons(labels []string) []seasonal.Season {
	var out []seasonal.Season
	seen := map[seasonal.Season]bool{}
	for _, l := range labels {
		s, ok := seasonal.ParseSeason(l)
		if !ok {
			b.note(UnrecognizedCategoryLabel, "seasons", l)
			continue
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (b *builder) holidays(labels []string) []seasonal.Holiday {
	var out []seasonal.Holiday
	seen := map[seasonal.Holiday]bool{}
	for _, l := range labels {
		h, ok := seasonal.ParseHoliday(l)
		if !ok {
			b.note(UnrecognizedCategoryLabel, "holidays", l)
			continue
		}
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}
