package queryplan

import (
	"time"

	"crimestats/internal/core/criteria"
	"crimestats/internal/core/seasonal"
	perr "crimestats/internal/platform/errors"
)

// Options carries report wide constants
type Options struct {
	// LongTermFloor is the earliest incident date a trend report reads; zero disables it
	LongTermFloor time.Time
}

var (
	joinCrimeType = []Join{
		{Table: "crime_incident_crime_type", Alias: "cict", On: "ci.incident_id = cict.incident_id"},
		{Table: "crime_type", Alias: "ct", On: "cict.crime_code = ct.crime_code"},
	}
	joinLocation = Join{Table: "location", Alias: "l", On: "ci.incident_id = l.incident_id"}
	joinVictim   = Join{Table: "victim", Alias: "v", On: "ci.incident_id = v.incident_id"}
	joinWeapon   = []Join{
		{Table: "crime_incident_weapon", Alias: "ciw", On: "ci.incident_id = ciw.incident_id", Outer: true},
		{Table: "weapon", Alias: "w", On: "ciw.weapon_id = w.weapon_id", Outer: true},
	}
	count = Column{Expr: Expr{Kind: ExprCount}, As: "incident_count"}
)

// Build produces the plan for report r
// LongTerm granularity is checked before anything else so a bad value never
// reaches an executor; a criteria set with no required dimension yields an Empty plan
func Build(r Report, c criteria.Criteria, opt Options) (Plan, error) {
	switch r {
	case CrimeType, Geographic, Demographic, ExternalEvents, LongTerm, Seasonal:
	default:
		return Plan{}, perr.WithField(perr.InvalidArgf("unknown report %q", string(r)), "report")
	}
	var gran criteria.Granularity
	if r == LongTerm {
		g, err := criteria.ParseGranularity(c.Granularity)
		if err != nil {
			return Plan{}, err
		}
		gran = g
	}

	p := Plan{Report: r}
	if !c.AnyOf(Required(r)...) {
		p.Empty = true
		return p, nil
	}

	victim := r == Demographic || c.AnyOf(victimDims...)
	p.Joins = append(append([]Join(nil), joinCrimeType...), joinLocation)

	switch r {
	case CrimeType:
		p.Select = []Column{{col(ColCrimeCode), "crime_code"}, {col(ColCrimeDesc), "crime_type"}, count}
		p.GroupBy = []Expr{col(ColCrimeCode), col(ColCrimeDesc)}
		p.OrderBy = []Order{{By: "incident_count", Desc: true}, {By: "crime_code"}}
		p.base(c)

	case Geographic:
		p.Joins = append(p.Joins, joinWeapon...)
		month := Expr{Kind: ExprMonthBucket, Col: ColIncidentDate}
		p.Select = []Column{
			{col(ColArea), "area"}, {month, "time_period"},
			{col(ColCrimeDesc), "crime_type"}, {col(ColWeapon), "weapon_type"}, count,
		}
		p.GroupBy = []Expr{col(ColArea), month, col(ColCrimeDesc), col(ColWeapon)}
		p.OrderBy = []Order{{By: "time_period"}, {By: "area"}}
		p.base(c)

	case Demographic:
		p.Joins = append(p.Joins, joinVictim)
		age := Expr{Kind: ExprAgeGroup, Col: ColAge}
		p.Select = []Column{{col(ColDescent), "descent"}, {col(ColSex), "sex"}, {age, "age_group"}, count}
		p.GroupBy = []Expr{col(ColDescent), col(ColSex), age}
		p.OrderBy = []Order{{By: "incident_count", Desc: true}, {By: "descent"}, {By: "sex"}, {By: "age_group"}}
		p.base(c)
		p.victim(c)

	case ExternalEvents:
		if victim {
			p.Joins = append(p.Joins, joinVictim)
		}
		p.crimeAndArea(c)
		span := c.Events.Span()
		lo, hi := p.param(span.Start), p.param(span.End)
		p.Predicates = append(p.Predicates, Predicate{Dim: DimEventSpan, Op: OpBetween, Col: ColIncidentDate, Args: []int{lo, hi}})
		p.dateRange(c.Narrow)
		period := Expr{Kind: ExprEventPeriod, Col: ColIncidentDate}
		for _, w := range c.Events.Windows() {
			period.Periods = append(period.Periods, PeriodRef{Period: w.Period, Start: p.param(w.Window.Start), End: p.param(w.Window.End)})
		}
		p.Select = []Column{
			{col(ColCrimeCode), "crime_code"}, {col(ColCrimeDesc), "crime_type"},
			{col(ColIncidentDate), "incident_date"}, {col(ColArea), "area"}, {period, "event_period"}, count,
		}
		p.GroupBy = []Expr{col(ColCrimeCode), col(ColCrimeDesc), col(ColIncidentDate), col(ColArea), period}
		p.OrderBy = []Order{{By: "incident_date"}, {By: "incident_count", Desc: true}}
		p.victim(c)

	case LongTerm:
		if victim {
			p.Joins = append(p.Joins, joinVictim)
		}
		bucket := Expr{Kind: ExprTrendBucket, Col: ColIncidentDate, Granularity: gran}
		p.Select = []Column{{col(ColCrimeCode), "crime_code"}, {col(ColCrimeDesc), "crime_type"}, {bucket, "time_period"}, count}
		p.GroupBy = []Expr{col(ColCrimeCode), col(ColCrimeDesc), bucket}
		p.OrderBy = []Order{{By: "time_period"}, {By: "incident_count", Desc: true}}
		if !opt.LongTermFloor.IsZero() {
			p.Predicates = append(p.Predicates, Predicate{Dim: DimFloor, Op: OpGte, Col: ColIncidentDate, Args: []int{p.param(opt.LongTermFloor)}})
		}
		p.base(c)
		p.victim(c)

	case Seasonal:
		season := Expr{Kind: ExprSeason, Col: ColIncidentDate}
		holiday := Expr{Kind: ExprHoliday, Col: ColIncidentDate}
		p.Select = []Column{
			{col(ColCrimeCode), "crime_code"}, {col(ColCrimeDesc), "crime_type"},
			{col(ColIncidentDate), "incident_date"}, {col(ColArea), "area"},
			{season, "season"}, {holiday, "holiday"}, count,
		}
		p.GroupBy = []Expr{col(ColCrimeCode), col(ColCrimeDesc), col(ColIncidentDate), col(ColArea), season, holiday}
		p.OrderBy = []Order{{By: "incident_count", Desc: true}, {By: "incident_date"}}
		p.base(c)
		p.calendar(c)
	}
	return p, nil
}

// base adds the crime, area and report range predicates
func (p *Plan) base(c criteria.Criteria) {
	p.crimeAndArea(c)
	p.dateRange(c.Range)
}

func (p *Plan) dateRange(r criteria.DateRange) {
	if r.Start != nil {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimStart, Op: OpGte, Col: ColIncidentDate, Args: []int{p.param(*r.Start)}})
	}
	if r.End != nil {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimEnd, Op: OpLte, Col: ColIncidentDate, Args: []int{p.param(*r.End)}})
	}
}

func (p *Plan) crimeAndArea(c criteria.Criteria) {
	if !c.Crime.Empty() {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimCrime, Op: OpIn, Col: ColCrimeCode, Args: []int{p.param(c.Crime.Strings())}})
	}
	if !c.Areas.Empty() {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimRegion, Op: OpIn, Col: ColArea, Args: []int{p.param(c.Areas.Strings())}})
	}
}

// victim adds ethnicity, gender and age predicates; the victim join must be present
func (p *Plan) victim(c criteria.Criteria) {
	if !c.Ethnicity.Empty() {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimEthnicity, Op: OpIn, Col: ColDescent, Args: []int{p.param(c.Ethnicity.Strings())}})
	}
	if c.Gender != "" {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimGender, Op: OpEq, Col: ColSex, Args: []int{p.param(c.Gender)}})
	}
	if c.Age != nil {
		if lo, hi, ok := c.Age.Bounds(); ok {
			p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimAge, Op: OpBetween, Col: ColAge, Args: []int{p.param(lo), p.param(hi)}})
		} else {
			p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimAge, Op: OpIsNull, Col: ColAge})
		}
	}
}

// calendar adds season and holiday selections
func (p *Plan) calendar(c criteria.Criteria) {
	if len(c.Seasons) > 0 {
		var months []int
		for _, s := range c.Seasons {
			for _, m := range seasonal.Months(s) {
				months = append(months, int(m))
			}
		}
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimSeason, Op: OpMonthIn, Col: ColIncidentDate, Args: []int{p.param(months)}})
	}
	if len(c.Holidays) > 0 {
		p.Predicates = append(p.Predicates, Predicate{Dim: criteria.DimHoliday, Op: OpHolidayIn, Col: ColIncidentDate, Holidays: c.Holidays})
	}
}
