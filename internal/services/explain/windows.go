package explain

import (
	"fmt"
	"time"

	"crimestats/internal/core/window"
	ptime "crimestats/internal/platform/time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newWindowsCommand(e *env) *cobra.Command {
	var start, end string
	var before, after int
	cmd := &cobra.Command{
		Use:     "windows",
		Short:   "Print the before, during and after windows around an event",
		Example: "  crimestats-explain windows --start 2024-01-31 --end 2024-02-29 --before 1 --after 3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var s, en *time.Time
			if start != "" {
				d, err := ptime.Parse(start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				s = &d
			}
			if end != "" {
				d, err := ptime.Parse(end)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
				en = &d
			}
			during := e.opts.Fallback.Resolve(s, en, e.now())
			e.windows(window.Compute(during.Start, during.End, before, after))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "event start, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "event end, YYYY-MM-DD")
	cmd.Flags().IntVar(&before, "before", 0, "months before the event")
	cmd.Flags().IntVar(&after, "after", 0, "months after the event")
	return cmd
}

func (e *env) windows(set window.EventSet) {
	t := e.table("Event windows", table.Row{"Period", "Start", "End", "Days"})
	// the span row reads as a label, not a column heading
	t.Style().Format.Footer = text.FormatDefault
	for _, lw := range []window.Labeled{
		{Period: window.Before, Window: set.Before},
		{Period: window.During, Window: set.During},
		{Period: window.After, Window: set.After},
	} {
		days := "empty"
		if !lw.Window.Degenerate() {
			days = fmt.Sprint(lw.Window.Days())
		}
		t.AppendRow(table.Row{lw.Period, ptime.Format(lw.Window.Start), ptime.Format(lw.Window.End), days})
	}
	span := set.Span()
	t.AppendFooter(table.Row{"Span", ptime.Format(span.Start), ptime.Format(span.End), span.Days()})
	t.Render()
}
