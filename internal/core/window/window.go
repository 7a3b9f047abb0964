// Package window derives the before, during and after calendar windows used by
// event impact reports
package window

import (
	"time"

	ptime "crimestats/internal/platform/time"
)

// Window is an inclusive range of calendar days
// a window whose start is after its end holds no days
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Degenerate reports whether the window holds no days
func (w Window) Degenerate() bool { return w.Start.After(w.End) }

// Contains reports whether day d falls inside the window
func (w Window) Contains(d time.Time) bool {
	d = ptime.Day(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days counts the days in the window, zero when degenerate
func (w Window) Days() int {
	if w.Degenerate() {
		return 0
	}
	// unix seconds, since a Duration overflows past ~292 years
	return int((ptime.Day(w.End).Unix()-ptime.Day(w.Start).Unix())/86400) + 1
}

// Period labels a day relative to an event
type Period string

// Period labels as they appear in report rows
const (
	Before Period = "Before Event"
	During Period = "During Event"
	After  Period = "After Event"
)

// EventSet is the contiguous before, during and after triplet around an event
type EventSet struct {
	Before Window `json:"before"`
	During Window `json:"during"`
	After  Window `json:"after"`
}

// Compute builds the event windows around [duringStart, duringEnd]
// the before window starts monthsBefore calendar months ahead of duringStart and
// the after window ends monthsAfter calendar months past the day after duringEnd
// negative month counts are treated as zero; a zero monthsBefore leaves before degenerate
func Compute(duringStart, duringEnd time.Time, monthsBefore, monthsAfter int) EventSet {
	duringStart, duringEnd = ptime.Day(duringStart), ptime.Day(duringEnd)
	monthsBefore, monthsAfter = max(monthsBefore, 0), max(monthsAfter, 0)

	afterStart := ptime.AddDays(duringEnd, 1)
	return EventSet{
		Before: Window{Start: ShiftMonths(duringStart, -monthsBefore), End: ptime.AddDays(duringStart, -1)},
		During: Window{Start: duringStart, End: duringEnd},
		After:  Window{Start: afterStart, End: ShiftMonths(afterStart, monthsAfter)},
	}
}

// ShiftMonths moves d by n calendar months keeping the day of month
// the day is clamped to the length of the target month: Jan 31 plus one month and
// Mar 31 minus one month both land on the last day of February
func ShiftMonths(d time.Time, n int) time.Time {
	// absolute zero based month index keeps year rollover exact in both directions
	idx := d.Year()*12 + int(d.Month()) - 1 + n
	y, m := floorDiv(idx, 12), time.Month(floorMod(idx, 12)+1)
	day := min(d.Day(), ptime.DaysIn(y, m))
	return ptime.Date(y, m, day)
}

// Span is the outer range covered by the set
// degenerate sub windows do not widen it
func (s EventSet) Span() Window {
	out := s.During
	if !s.Before.Degenerate() && s.Before.Start.Before(out.Start) {
		out.Start = s.Before.Start
	}
	if !s.After.Degenerate() && s.After.End.After(out.End) {
		out.End = s.After.End
	}
	return out
}

// PeriodOf labels day d, returning "" when it is outside every window
func (s EventSet) PeriodOf(d time.Time) Period {
	switch {
	case !s.Before.Degenerate() && s.Before.Contains(d):
		return Before
	case s.During.Contains(d):
		return During
	case !s.After.Degenerate() && s.After.Contains(d):
		return After
	}
	return ""
}

// Windows returns the non degenerate windows with their labels, in time order
func (s EventSet) Windows() []Labeled {
	out := make([]Labeled, 0, 3)
	for _, lw := range []Labeled{{Before, s.Before}, {During, s.During}, {After, s.After}} {
		if !lw.Window.Degenerate() {
			out = append(out, lw)
		}
	}
	return out
}

// Labeled pairs a window with its period label
type Labeled struct {
	Period Period
	Window Window
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int { return a - floorDiv(a, b)*b }
