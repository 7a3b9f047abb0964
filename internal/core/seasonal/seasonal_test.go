package seasonal

import (
	"testing"
	"time"

	ptime "crimestats/internal/platform/time"
)

func TestSeasonTotal(t *testing.T) {
	t.Parallel()
	want := map[time.Month]Season{
		time.January: Winter, time.February: Winter, time.March: Spring,
		time.April: Spring, time.May: Spring, time.June: Summer,
		time.July: Summer, time.August: Summer, time.September: Fall,
		time.October: Fall, time.November: Fall, time.December: Winter,
	}
	// every day of a leap year maps to exactly the month's season
	for d := ptime.Date(2024, 1, 1); d.Year() == 2024; d = ptime.AddDays(d, 1) {
		if got := SeasonOf(d); got != want[d.Month()] {
			t.Fatalf("SeasonOf(%s) = %s, want %s", ptime.Format(d), got, want[d.Month()])
		}
	}
	for _, s := range Seasons() {
		for _, m := range Months(s) {
			if want[m] != s {
				t.Fatalf("Months(%s) includes %s", s, m)
			}
		}
	}
}

func TestThanksgivingPerYear(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		2020: "2020-11-26",
		2021: "2021-11-25",
		2022: "2022-11-24",
		2023: "2023-11-23",
		2024: "2024-11-28",
		2025: "2025-11-27",
		2026: "2026-11-26",
	}
	for y, want := range cases {
		got := ThanksgivingOn(y)
		if ptime.Format(got) != want {
			t.Fatalf("ThanksgivingOn(%d) = %s, want %s", y, ptime.Format(got), want)
		}
		if got.Weekday() != time.Thursday || got.Day() < 22 || got.Day() > 28 {
			t.Fatalf("ThanksgivingOn(%d) = %s is not the fourth Thursday", y, ptime.Format(got))
		}
	}
}

func TestHolidayOf(t *testing.T) {
	t.Parallel()
	cases := []struct {
		day  string
		want Holiday
	}{
		{"2024-03-17", StPatricksDay},
		{"2024-07-04", July4th},
		{"2024-12-25", Christmas},
		{"2024-12-31", NewYears},
		{"2025-01-01", NewYears},
		{"2024-11-28", Thanksgiving},
		{"2023-11-23", Thanksgiving},
		// 2023's date is a regular day in 2024 and vice versa
		{"2024-11-23", RegularDay},
		{"2023-11-28", RegularDay},
		{"2024-03-18", RegularDay},
		{"2024-02-29", RegularDay},
	}
	for _, c := range cases {
		d, _ := ptime.Parse(c.day)
		if got := HolidayOf(d); got != c.want {
			t.Fatalf("HolidayOf(%s) = %s, want %s", c.day, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	if s, ok := ParseSeason(" summer "); !ok || s != Summer {
		t.Fatalf("ParseSeason = %q %v", s, ok)
	}
	if _, ok := ParseSeason("Monsoon"); ok {
		t.Fatalf("ParseSeason(Monsoon) ok")
	}
	if h, ok := ParseHoliday("thanksgiving"); !ok || h != Thanksgiving {
		t.Fatalf("ParseHoliday = %q %v", h, ok)
	}
	if _, ok := ParseHoliday("RegularDay"); ok {
		t.Fatalf("RegularDay is not selectable")
	}
}
