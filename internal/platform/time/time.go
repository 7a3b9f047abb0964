// Package time contains calendar date helpers
// dates are civil days represented as time.Time at UTC midnight
package time

import (
	"strings"
	"time"
)

// Layout is the wire format for calendar dates
const Layout = "2006-01-02"

// Date returns the civil date y-m-d at UTC midnight
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its civil date, dropping clock and zone
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Parse reads a YYYY-MM-DD string; surrounding whitespace is ignored
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD; the zero time is 0001-01-01 like any other day
func Format(t time.Time) string { return t.Format(Layout) }

// AddDays moves t by n calendar days
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// DaysIn returns the number of days in month m of year y
func DaysIn(y int, m time.Month) int {
	// day 0 of the next month is the last day of m
	return Date(y, m+1, 0).Day()
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
