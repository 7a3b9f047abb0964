// Package queryplan turns FilterCriteria into a report query plan
// a plan is a dialect free description of predicates, grouping and ordering;
// every user supplied value travels in Params and is referenced by index
package queryplan

import (
	"strconv"

	"crimestats/internal/core/criteria"
	"crimestats/internal/core/seasonal"
	"crimestats/internal/core/window"
)

// Col is a qualified schema column
type Col string

// Columns used by report plans
const (
	ColIncidentDate Col = "ci.incident_date"
	ColCrimeCode    Col = "cict.crime_code"
	ColCrimeDesc    Col = "ct.description"
	ColArea         Col = "l.area"
	ColWeapon       Col = "w.description"
	ColAge          Col = "v.age"
	ColSex          Col = "v.sex"
	ColDescent      Col = "v.descent"
)

// Dimensions of fixed predicates that do not come from a user filter
const (
	DimFloor     criteria.Dimension = "floor"
	DimEventSpan criteria.Dimension = "eventSpan"
)

// ExprKind enumerates the expressions a plan can select or group by
type ExprKind int

// Expression kinds
const (
	ExprColumn ExprKind = iota
	ExprCount
	ExprMonthBucket
	ExprTrendBucket
	ExprSeason
	ExprHoliday
	ExprEventPeriod
	ExprAgeGroup
)

// Expr is a select or grouping expression
type Expr struct {
	Kind        ExprKind
	Col         Col
	Granularity criteria.Granularity
	Periods     []PeriodRef
}

// PeriodRef labels the days between two date params
type PeriodRef struct {
	Period     window.Period
	Start, End int
}

// Column is a selected expression and its output name
type Column struct {
	Expr Expr
	As   string
}

// Op is a predicate operator
type Op int

// Predicate operators
const (
	OpIn Op = iota
	OpEq
	OpGte
	OpLte
	OpBetween
	OpIsNull
	OpMonthIn
	OpHolidayIn
)

var opNames = [...]string{"in", "eq", "gte", "lte", "between", "is null", "month in", "holiday in"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
	return opNames[o]
}

// Predicate is one conjunct of the WHERE clause
// Args index into Plan.Params; holiday sets are a closed enum and stay inline
type Predicate struct {
	Dim      criteria.Dimension
	Op       Op
	Col      Col
	Args     []int
	Holidays []seasonal.Holiday
}

// Join attaches a table to the incident row
type Join struct {
	Table string
	Alias string
	On    string
	Outer bool
}

// Order is an ORDER BY term over an output column name
type Order struct {
	By   string
	Desc bool
}

// Plan is a complete report query description
type Plan struct {
	Report     Report
	Empty      bool
	Select     []Column
	Joins      []Join
	Predicates []Predicate
	GroupBy    []Expr
	OrderBy    []Order
	Params     []any
}

// Columns returns the output column names in select order
func (p Plan) Columns() []string {
	out := make([]string, 0, len(p.Select))
	for _, c := range p.Select {
		out = append(out, c.As)
	}
	return out
}

// Dims returns the dimension of each predicate in order
func (p Plan) Dims() []criteria.Dimension {
	out := make([]criteria.Dimension, 0, len(p.Predicates))
	for _, pr := range p.Predicates {
		out = append(out, pr.Dim)
	}
	return out
}

func (p *Plan) param(v any) int {
	p.Params = append(p.Params, v)
	return len(p.Params) - 1
}

func col(c Col) Expr { return Expr{Kind: ExprColumn, Col: c} }
