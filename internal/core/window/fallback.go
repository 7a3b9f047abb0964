package window

import (
	"time"

	ptime "crimestats/internal/platform/time"
)

// Fallback is the during window used when a request names no event dates
// a zero Fallback means the last complete calendar quarter before now
type Fallback struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no explicit fallback is configured
func (f Fallback) IsZero() bool { return f.Start.IsZero() || f.End.IsZero() }

// Resolve fills missing during bounds; now is only consulted when f is zero
// a lone bound that would invert the window gets a one quarter partner instead,
// and two explicit bounds given in the wrong order are swapped
func (f Fallback) Resolve(start, end *time.Time, now time.Time) Window {
	def := Window{Start: f.Start, End: f.End}
	if f.IsZero() {
		def = LastQuarter(now)
	}

	switch {
	case start != nil && end != nil:
		w := Window{Start: ptime.Day(*start), End: ptime.Day(*end)}
		if w.Degenerate() {
			w.Start, w.End = w.End, w.Start
		}
		return w
	case start != nil:
		w := Window{Start: ptime.Day(*start), End: def.End}
		if w.Degenerate() {
			w.End = ptime.AddDays(ShiftMonths(w.Start, 3), -1)
		}
		return w
	case end != nil:
		w := Window{Start: def.Start, End: ptime.Day(*end)}
		if w.Degenerate() {
			w.Start = ShiftMonths(ptime.AddDays(w.End, 1), -3)
		}
		return w
	}
	return def
}

// LastQuarter returns the last calendar quarter that ended before now
func LastQuarter(now time.Time) Window {
	now = ptime.Day(now)
	q := (int(now.Month()) - 1) / 3
	thisQ := ptime.Date(now.Year(), time.Month(q*3+1), 1)
	return Window{Start: ShiftMonths(thisQ, -3), End: ptime.AddDays(thisQ, -1)}
}
