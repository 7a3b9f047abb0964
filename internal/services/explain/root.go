// Package explain implements the crimestats-explain command line: it shows how
// dashboard parameters normalize, which windows an event produces and what SQL
// a report renders, without touching a database
package explain

import (
	"io"
	"time"

	"crimestats/internal/core/category"
	"crimestats/internal/core/version"
	"crimestats/internal/platform/config"
	reportsmod "crimestats/internal/services/api/reports/module"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// env carries what every subcommand needs
type env struct {
	out     io.Writer
	opts    reportsmod.Options
	catalog *category.Catalog
	now     func() time.Time
}

// NewRootCommand builds the command tree writing to out
// report defaults (fallback window, floor, catalog) come from SERVICE_REPORTS_*
func NewRootCommand(out io.Writer) *cobra.Command {
	e := &env{out: out, now: time.Now}
	var catalogPath string

	root := &cobra.Command{
		Use:           "crimestats-explain",
		Short:         "Explain report filters, event windows and rendered SQL",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			e.opts = reportsmod.FromConfig(config.New())
			if catalogPath != "" {
				e.opts.CatalogPath = catalogPath
			}
			cat, err := e.opts.Catalog()
			if err != nil {
				return err
			}
			e.catalog = cat
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "label catalog YAML (default: embedded)")

	root.AddCommand(newPlanCommand(e), newWindowsCommand(e), newCatalogCommand(e))
	return root
}

func (e *env) table(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(e.out)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(header)
	return t
}
