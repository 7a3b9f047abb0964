package explain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"crimestats/internal/core/criteria"
	"crimestats/internal/core/queryplan"
	ptime "crimestats/internal/platform/time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPlanCommand(e *env) *cobra.Command {
	var (
		params  []string
		dialect string
		now     string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "plan <report>",
		Short: "Normalize parameters and print the report plan and SQL",
		Example: `  crimestats-explain plan long-term --param crimeCategories=Violent --param timeGranularity=Quarter
  crimestats-explain plan external-events --param eventPeriodStart=2024-01-01 --param laRegions=North --dialect ch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := queryplan.ParseReport(args[0])
			if !ok {
				return fmt.Errorf("unknown report %q (want one of %s)", args[0], reportList())
			}
			d, err := queryplan.ParseDialect(dialect)
			if err != nil {
				return err
			}
			at := e.now()
			if now != "" {
				if at, err = ptime.Parse(now); err != nil {
					return fmt.Errorf("--now: %w", err)
				}
			}
			vals, err := parseParams(params)
			if err != nil {
				return err
			}
			return e.plan(r, d, criteria.FromValues(vals), at, strict || e.opts.Strict)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "report parameter as key=value, repeatable")
	cmd.Flags().StringVar(&dialect, "dialect", string(queryplan.Postgres), "SQL dialect: pg or ch")
	cmd.Flags().StringVar(&now, "now", "", "clock for the default event window, YYYY-MM-DD")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed parameters instead of dropping them")
	return cmd
}

func (e *env) plan(r queryplan.Report, d queryplan.Dialect, p criteria.Params, now time.Time, strict bool) error {
	c, err := criteria.Build(p, criteria.Options{
		Catalog:  e.catalog,
		Fallback: e.opts.Fallback,
		Now:      now,
		Strict:   strict,
	})
	if err != nil {
		return err
	}

	if len(c.Issues) > 0 {
		t := e.table("Warnings", table.Row{"Kind", "Field", "Value"})
		for _, is := range c.Issues {
			t.AppendRow(table.Row{is.Kind, is.Field, is.Value})
		}
		t.Render()
	}

	plan, err := queryplan.Build(r, c, queryplan.Options{LongTermFloor: e.opts.LongTermFloor})
	if err != nil {
		return err
	}
	if plan.Empty {
		fmt.Fprintf(e.out, "%s: no filter selected, the report short circuits to an empty result\n", r)
		return nil
	}

	sql, _, err := queryplan.Render(plan, d)
	if err != nil {
		return err
	}

	t := e.table("Predicates", table.Row{"Dimension", "Column", "Op", "Params"})
	for _, pr := range plan.Predicates {
		refs := make([]string, 0, len(pr.Args))
		for _, a := range pr.Args {
			refs = append(refs, fmt.Sprintf("#%d", a+1))
		}
		for _, h := range pr.Holidays {
			refs = append(refs, string(h))
		}
		t.AppendRow(table.Row{pr.Dim, pr.Col, pr.Op, strings.Join(refs, " ")})
	}
	t.Render()

	t = e.table("Params", table.Row{"#", "Value"})
	for i, a := range plan.Params {
		t.AppendRow(table.Row{i + 1, formatArg(a)})
	}
	t.Render()

	fmt.Fprintf(e.out, "\n-- %s (%s)\n%s\n", r, d, sql)
	return nil
}

// parseParams turns key=value pairs into query values, keeping repeats
func parseParams(kvs []string) (url.Values, error) {
	v := url.Values{}
	for _, kv := range kvs {
		k, val, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("--param %q: want key=value", kv)
		}
		v.Add(strings.TrimSpace(k), val)
	}
	return v, nil
}

func formatArg(a any) string {
	switch x := a.(type) {
	case time.Time:
		return ptime.Format(x)
	case []string:
		return strings.Join(x, ", ")
	}
	return fmt.Sprint(a)
}

func reportList() string {
	names := make([]string, 0, 6)
	for _, r := range queryplan.Reports() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
