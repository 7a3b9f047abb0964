package explain

import (
	"fmt"
	"strings"

	"crimestats/internal/core/agerange"
	"crimestats/internal/core/category"
	"crimestats/internal/core/seasonal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCatalogCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the filter label tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.catalogTables()
			return nil
		},
	}
}

func (e *env) catalogTables() {
	c := e.catalog
	labelTable := func(title string, labels []string, t category.Table) {
		w := e.table(title, table.Row{"Label", "Codes"})
		for _, l := range labels {
			w.AppendRow(table.Row{l, strings.Join(quoteEmpty(t[l]), ", ")})
		}
		w.Render()
	}
	labelTable("Crime categories", c.CrimeLabels, c.Crime)
	labelTable("Regions", c.RegionLabels, c.Regions)
	labelTable("Descent", c.DescentLabels, c.Descent)

	w := e.table("Age ranges", table.Row{"Label", "Min", "Max"})
	for _, b := range agerange.Brackets() {
		w.AppendRow(table.Row{b.Label, b.Min, b.Max})
	}
	w.Render()

	w = e.table("Calendar", table.Row{"Kind", "Value", "Months"})
	for _, s := range seasonal.Seasons() {
		ms := make([]string, 0, 3)
		for _, m := range seasonal.Months(s) {
			ms = append(ms, m.String()[:3])
		}
		w.AppendRow(table.Row{"season", s, strings.Join(ms, " ")})
	}
	for _, h := range seasonal.Holidays() {
		w.AppendRow(table.Row{"holiday", h, ""})
	}
	w.Render()

	fmt.Fprintf(e.out, "genders: %s\n", strings.Join(c.Genders, ", "))
}

// quoteEmpty makes an empty code visible in the table
func quoteEmpty(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c == "" {
			c = `""`
		}
		out[i] = c
	}
	return out
}
