package criteria

import (
	"time"

	"crimestats/internal/core/agerange"
	ptime "crimestats/internal/platform/time"
)

// View is the JSON echo of a Criteria for the UI
type View struct {
	CrimeCodes  []string        `json:"crimeCodes"`
	Areas       []string        `json:"areas"`
	Ethnicities []string        `json:"ethnicities"`
	Gender      string          `json:"gender,omitempty"`
	Age         *agerange.Range `json:"age,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	Events      EventsView      `json:"events"`
	Seasons     []string        `json:"seasons,omitempty"`
	Holidays    []string        `json:"holidays,omitempty"`
	Granularity string          `json:"timeGranularity,omitempty"`
}

// EventsView is the YYYY-MM-DD rendering of the event windows
type EventsView struct {
	Before [2]string `json:"before"`
	During [2]string `json:"during"`
	After  [2]string `json:"after"`
}

// View renders c with calendar dates as strings
func (c Criteria) View() View {
	v := View{
		CrimeCodes:  nonNil(c.Crime.Strings()),
		Areas:       nonNil(c.Areas.Strings()),
		Ethnicities: nonNil(c.Ethnicity.Strings()),
		Gender:      c.Gender,
		Age:         c.Age,
		StartDate:   fmtPtr(c.Range.Start),
		EndDate:     fmtPtr(c.Range.End),
		Granularity: c.Granularity,
		Events: EventsView{
			Before: [2]string{ptime.Format(c.Events.Before.Start), ptime.Format(c.Events.Before.End)},
			During: [2]string{ptime.Format(c.Events.During.Start), ptime.Format(c.Events.During.End)},
			After:  [2]string{ptime.Format(c.Events.After.Start), ptime.Format(c.Events.After.End)},
		},
	}
	for _, s := range c.Seasons {
		v.Seasons = append(v.Seasons, string(s))
	}
	for _, h := range c.Holidays {
		v.Holidays = append(v.Holidays, string(h))
	}
	return v
}

func fmtPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return ptime.Format(*t)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
