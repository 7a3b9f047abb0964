// Package seasonal classifies calendar days by meteorological season and holiday
package seasonal

import (
	"strings"
	"time"

	ptime "crimestats/internal/platform/time"
)

// Season is a northern hemisphere meteorological season
type Season string

// Seasons
const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Holiday is a named day, or RegularDay
type Holiday string

// Holidays
const (
	StPatricksDay Holiday = "StPatricksDay"
	July4th       Holiday = "July4th"
	Thanksgiving  Holiday = "Thanksgiving"
	Christmas     Holiday = "Christmas"
	NewYears      Holiday = "NewYears"
	RegularDay    Holiday = "RegularDay"
)

// Seasons lists the seasons in calendar order starting with spring
func Seasons() []Season { return []Season{Spring, Summer, Fall, Winter} }

// Holidays lists the selectable holidays, RegularDay excluded
func Holidays() []Holiday {
	return []Holiday{StPatricksDay, July4th, Thanksgiving, Christmas, NewYears}
}

// SeasonOf returns the season of d; only the month matters
func SeasonOf(d time.Time) Season {
	switch d.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Fall
	default:
		return Winter
	}
}

// Months returns the months of a season in calendar order
func Months(s Season) []time.Month {
	switch s {
	case Spring:
		return []time.Month{time.March, time.April, time.May}
	case Summer:
		return []time.Month{time.June, time.July, time.August}
	case Fall:
		return []time.Month{time.September, time.October, time.November}
	case Winter:
		return []time.Month{time.January, time.February, time.December}
	}
	return nil
}

// HolidayOf returns the holiday falling on d, or RegularDay
func HolidayOf(d time.Time) Holiday {
	m, day := d.Month(), d.Day()
	switch {
	case m == time.March && day == 17:
		return StPatricksDay
	case m == time.July && day == 4:
		return July4th
	case m == time.December && day == 25:
		return Christmas
	case (m == time.December && day == 31) || (m == time.January && day == 1):
		return NewYears
	case m == time.November && day == ThanksgivingOn(d.Year()).Day():
		return Thanksgiving
	}
	return RegularDay
}

// ThanksgivingOn returns the fourth Thursday of November in year y
func ThanksgivingOn(y int) time.Time {
	first := ptime.Date(y, time.November, 1)
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	return ptime.AddDays(first, offset+21)
}

// ParseSeason matches a season name ignoring case
func ParseSeason(s string) (Season, bool) {
	for _, v := range Seasons() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}

// ParseHoliday matches a selectable holiday name ignoring case
func ParseHoliday(s string) (Holiday, bool) {
	for _, v := range Holidays() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}
