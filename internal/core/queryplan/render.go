package queryplan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"crimestats/internal/core/agerange"
	"crimestats/internal/core/criteria"
	"crimestats/internal/core/seasonal"
	perr "crimestats/internal/platform/errors"
)

// Dialect selects the SQL flavour a plan renders to
type Dialect string

// Dialects
const (
	Postgres   Dialect = "pg"
	ClickHouse Dialect = "ch"
)

// ParseDialect matches a dialect name
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pg", "postgres", "postgresql":
		return Postgres, nil
	case "ch", "clickhouse":
		return ClickHouse, nil
	}
	return "", perr.InvalidArgf("unknown dialect %q", s)
}

// Render writes p as SQL for d and returns the positional args in placeholder order
// Postgres reuses $n placeholders so args equal p.Params; ClickHouse binds one ?
// per occurrence so a param used twice is passed twice
func Render(p Plan, d Dialect) (string, []any, error) {
	if p.Empty {
		return "", nil, perr.Internalf("queryplan: empty plan has no query")
	}
	if d != Postgres && d != ClickHouse {
		return "", nil, perr.InvalidArgf("unknown dialect %q", string(d))
	}
	r := &renderer{d: d, p: p}

	sel := make([]string, 0, len(p.Select))
	for _, c := range p.Select {
		sel = append(sel, "\t"+r.expr(c.Expr)+" AS "+c.As)
	}
	lines := []string{"SELECT", strings.Join(sel, ",\n"), "FROM crime_incident ci"}
	for _, j := range p.Joins {
		kw := "JOIN"
		if j.Outer {
			kw = "LEFT JOIN"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s ON %s", kw, j.Table, j.Alias, j.On))
	}
	if len(p.Predicates) > 0 {
		where := make([]string, 0, len(p.Predicates))
		for _, pr := range p.Predicates {
			s, err := r.predicate(pr)
			if err != nil {
				return "", nil, err
			}
			where = append(where, s)
		}
		lines = append(lines, "WHERE "+strings.Join(where, "\n\tAND "))
	}
	if len(p.GroupBy) > 0 {
		grp := make([]string, 0, len(p.GroupBy))
		for _, e := range p.GroupBy {
			grp = append(grp, r.expr(e))
		}
		lines = append(lines, "GROUP BY "+strings.Join(grp, ",\n\t"))
	}
	if len(p.OrderBy) > 0 {
		ord := make([]string, 0, len(p.OrderBy))
		for _, o := range p.OrderBy {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			ord = append(ord, o.By+" "+dir)
		}
		lines = append(lines, "ORDER BY "+strings.Join(ord, ", "))
	}

	if d == Postgres {
		r.args = append([]any(nil), p.Params...)
	}
	return strings.Join(lines, "\n"), r.args, nil
}

type renderer struct {
	d    Dialect
	p    Plan
	args []any
}

// ph emits the placeholder for param i
func (r *renderer) ph(i int) string {
	if r.d == Postgres {
		return "$" + strconv.Itoa(i+1)
	}
	r.args = append(r.args, r.p.Params[i])
	return "?"
}

func (r *renderer) expr(e Expr) string {
	c := string(e.Col)
	switch e.Kind {
	case ExprCount:
		if r.d == ClickHouse {
			return "count()"
		}
		return "COUNT(*)"
	case ExprMonthBucket:
		return r.bucket(criteria.Month, c)
	case ExprTrendBucket:
		return r.bucket(e.Granularity, c)
	case ExprSeason:
		var b strings.Builder
		b.WriteString("CASE")
		for _, s := range seasonal.Seasons()[:3] {
			fmt.Fprintf(&b, " WHEN %s IN (%s) THEN %s", r.month(c), monthList(seasonal.Months(s)), quote(string(s)))
		}
		fmt.Fprintf(&b, " ELSE %s END", quote(string(seasonal.Winter)))
		return b.String()
	case ExprHoliday:
		var b strings.Builder
		b.WriteString("CASE")
		for _, h := range seasonal.Holidays() {
			fmt.Fprintf(&b, " WHEN %s THEN %s", r.holiday(h, c), quote(string(h)))
		}
		fmt.Fprintf(&b, " ELSE %s END", quote(string(seasonal.RegularDay)))
		return b.String()
	case ExprEventPeriod:
		if len(e.Periods) == 0 {
			return "NULL"
		}
		var b strings.Builder
		b.WriteString("CASE")
		for _, pr := range e.Periods {
			fmt.Fprintf(&b, " WHEN %s BETWEEN %s AND %s THEN %s", c, r.ph(pr.Start), r.ph(pr.End), quote(string(pr.Period)))
		}
		b.WriteString(" END")
		return b.String()
	case ExprAgeGroup:
		var b strings.Builder
		fmt.Fprintf(&b, "CASE WHEN %s IS NULL THEN %s", c, quote(agerange.Unknown))
		br := agerange.Brackets()
		for _, k := range br[:len(br)-1] {
			fmt.Fprintf(&b, " WHEN %s <= %d THEN %s", c, k.Max, quote(k.Label))
		}
		fmt.Fprintf(&b, " ELSE %s END", quote(br[len(br)-1].Label))
		return b.String()
	}
	return c
}

// bucket formats a date column for a closed granularity
func (r *renderer) bucket(g criteria.Granularity, c string) string {
	if r.d == ClickHouse {
		switch g {
		case criteria.Quarter:
			return fmt.Sprintf("concat(toString(toYear(%s)), '-Q', toString(toQuarter(%s)))", c, c)
		case criteria.Month:
			return fmt.Sprintf("formatDateTime(%s, '%%Y-%%m')", c)
		default:
			return fmt.Sprintf("toString(toYear(%s))", c)
		}
	}
	switch g {
	case criteria.Quarter:
		return fmt.Sprintf(`to_char(%s, 'YYYY-"Q"Q')`, c)
	case criteria.Month:
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", c)
	default:
		return fmt.Sprintf("to_char(%s, 'YYYY')", c)
	}
}

func (r *renderer) month(c string) string {
	if r.d == ClickHouse {
		return "toMonth(" + c + ")"
	}
	return "CAST(EXTRACT(MONTH FROM " + c + ") AS integer)"
}

func (r *renderer) day(c string) string {
	if r.d == ClickHouse {
		return "toDayOfMonth(" + c + ")"
	}
	return "CAST(EXTRACT(DAY FROM " + c + ") AS integer)"
}

// isoDow is Monday=1 through Sunday=7 in both dialects
func (r *renderer) isoDow(c string) string {
	if r.d == ClickHouse {
		return "toDayOfWeek(" + c + ")"
	}
	return "CAST(EXTRACT(ISODOW FROM " + c + ") AS integer)"
}

func (r *renderer) monthDay(c string, m, d int) string {
	return fmt.Sprintf("(%s = %d AND %s = %d)", r.month(c), m, r.day(c), d)
}

// holiday renders the match condition for one holiday
// Thanksgiving is the only Thursday from Nov 22 through Nov 28, whatever the year
func (r *renderer) holiday(h seasonal.Holiday, c string) string {
	switch h {
	case seasonal.StPatricksDay:
		return r.monthDay(c, 3, 17)
	case seasonal.July4th:
		return r.monthDay(c, 7, 4)
	case seasonal.Christmas:
		return r.monthDay(c, 12, 25)
	case seasonal.NewYears:
		return "(" + r.monthDay(c, 12, 31) + " OR " + r.monthDay(c, 1, 1) + ")"
	case seasonal.Thanksgiving:
		return fmt.Sprintf("(%s = 11 AND %s BETWEEN 22 AND 28 AND %s = 4)", r.month(c), r.day(c), r.isoDow(c))
	}
	return "FALSE"
}

func (r *renderer) predicate(pr Predicate) (string, error) {
	c := string(pr.Col)
	need := map[Op]int{OpIn: 1, OpEq: 1, OpGte: 1, OpLte: 1, OpBetween: 2, OpMonthIn: 1}
	if n, ok := need[pr.Op]; ok {
		if len(pr.Args) != n {
			return "", perr.Internalf("queryplan: predicate on %s wants %d args, has %d", c, n, len(pr.Args))
		}
		for _, a := range pr.Args {
			if a < 0 || a >= len(r.p.Params) {
				return "", perr.Internalf("queryplan: param %d out of range", a)
			}
		}
	}
	switch pr.Op {
	case OpIn:
		return r.in(c, pr.Args[0]), nil
	case OpEq:
		return c + " = " + r.ph(pr.Args[0]), nil
	case OpGte:
		return c + " >= " + r.ph(pr.Args[0]), nil
	case OpLte:
		return c + " <= " + r.ph(pr.Args[0]), nil
	case OpBetween:
		return c + " BETWEEN " + r.ph(pr.Args[0]) + " AND " + r.ph(pr.Args[1]), nil
	case OpIsNull:
		return c + " IS NULL", nil
	case OpMonthIn:
		return r.in(r.month(c), pr.Args[0]), nil
	case OpHolidayIn:
		if len(pr.Holidays) == 0 {
			return "", perr.Internalf("queryplan: holiday predicate without holidays")
		}
		parts := make([]string, 0, len(pr.Holidays))
		for _, h := range pr.Holidays {
			parts = append(parts, r.holiday(h, c))
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}
	return "", perr.Internalf("queryplan: unknown operator %d", pr.Op)
}

// in renders set membership against a slice param
func (r *renderer) in(lhs string, arg int) string {
	if r.d == Postgres {
		return lhs + " = ANY(" + r.ph(arg) + ")"
	}
	return lhs + " IN " + r.ph(arg)
}

func monthList(ms []time.Month) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, strconv.Itoa(int(m)))
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
