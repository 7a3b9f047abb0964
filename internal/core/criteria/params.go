package criteria

import (
	"net/url"
	"strings"

	pstrings "crimestats/internal/platform/strings"
)

// Params is the flat request record, one field per recognised query key
// list fields accept repeated keys; everything else takes the first value
type Params struct {
	CrimeCategories   []string `json:"crimeCategories,omitempty"   validate:"max=16,dive,max=64"  example:"Violent"`
	LARegions         []string `json:"laRegions,omitempty"         validate:"max=16,dive,max=64"  example:"North"`
	StartDate         string   `json:"startDate,omitempty"         validate:"max=32"              example:"2024-01-01"`
	EndDate           string   `json:"endDate,omitempty"           validate:"max=32"              example:"2024-03-31"`
	AgeRange          string   `json:"ageRange,omitempty"          validate:"max=16"              example:"19-30"`
	Gender            string   `json:"gender,omitempty"            validate:"max=32"              example:"Female"`
	Descent           []string `json:"descent,omitempty"           validate:"max=16,dive,max=64"  example:"Asian"`
	EventPeriodStart  string   `json:"eventPeriodStart,omitempty"  validate:"max=32"              example:"2024-01-01"`
	EventPeriodEnd    string   `json:"eventPeriodEnd,omitempty"    validate:"max=32"              example:"2024-03-31"`
	MonthsBeforeEvent string   `json:"monthsBeforeEvent,omitempty" validate:"max=8"               example:"3"`
	MonthsAfterEvent  string   `json:"monthsAfterEvent,omitempty"  validate:"max=8"               example:"3"`
	FilterBy          string   `json:"season,omitempty"            validate:"max=16"              example:"season"`
	Seasons           []string `json:"seasons,omitempty"           validate:"max=8,dive,max=32"   example:"Summer"`
	Holidays          []string `json:"holidays,omitempty"          validate:"max=8,dive,max=32"   example:"July4th"`
	TimeGranularity   string   `json:"timeGranularity,omitempty"   validate:"max=16"              example:"Quarter"`
}

// FromValues reads a Params record out of URL query values
func FromValues(v url.Values) Params {
	return Params{
		CrimeCategories:   list(v, "crimeCategories"),
		LARegions:         list(v, "laRegions"),
		StartDate:         one(v, "startDate"),
		EndDate:           one(v, "endDate"),
		AgeRange:          one(v, "ageRange"),
		Gender:            one(v, "gender"),
		Descent:           list(v, "descent"),
		EventPeriodStart:  one(v, "eventPeriodStart"),
		EventPeriodEnd:    one(v, "eventPeriodEnd"),
		MonthsBeforeEvent: one(v, "monthsBeforeEvent"),
		MonthsAfterEvent:  one(v, "monthsAfterEvent"),
		FilterBy:          one(v, "season"),
		Seasons:           list(v, "seasons"),
		Holidays:          list(v, "holidays"),
		TimeGranularity:   one(v, "timeGranularity"),
	}
}

// Values renders p back into query values, the inverse of FromValues
func (p Params) Values() url.Values {
	v := url.Values{}
	add := func(k string, vals ...string) {
		for _, s := range vals {
			if s != "" {
				v.Add(k, s)
			}
		}
	}
	add("crimeCategories", p.CrimeCategories...)
	add("laRegions", p.LARegions...)
	add("startDate", p.StartDate)
	add("endDate", p.EndDate)
	add("ageRange", p.AgeRange)
	add("gender", p.Gender)
	add("descent", p.Descent...)
	add("eventPeriodStart", p.EventPeriodStart)
	add("eventPeriodEnd", p.EventPeriodEnd)
	add("monthsBeforeEvent", p.MonthsBeforeEvent)
	add("monthsAfterEvent", p.MonthsAfterEvent)
	add("season", p.FilterBy)
	add("seasons", p.Seasons...)
	add("holidays", p.Holidays...)
	add("timeGranularity", p.TimeGranularity)
	return v
}

// list collects repeated keys and comma separated values, dropping blanks
func list(v url.Values, key string) []string { return pstrings.Fields(v[key], ",") }

func one(v url.Values, key string) string { return strings.TrimSpace(v.Get(key)) }
