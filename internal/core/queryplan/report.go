package queryplan

import (
	"strings"

	"crimestats/internal/core/criteria"
)

// Report is a dashboard report type
type Report string

// Reports
const (
	CrimeType      Report = "crime-type"
	Geographic     Report = "geographic"
	Demographic    Report = "demographic"
	ExternalEvents Report = "external-events"
	LongTerm       Report = "long-term"
	Seasonal       Report = "seasonal"
)

// Reports lists every report type
func Reports() []Report {
	return []Report{CrimeType, Geographic, Demographic, ExternalEvents, LongTerm, Seasonal}
}

// ParseReport matches a report slug such as "long-term" ignoring case
func ParseReport(s string) (Report, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Reports() {
		if s == string(r) {
			return r, true
		}
	}
	return "", false
}

var (
	baseDims   = []criteria.Dimension{criteria.DimCrime, criteria.DimRegion, criteria.DimStart, criteria.DimEnd}
	victimDims = []criteria.Dimension{criteria.DimEthnicity, criteria.DimGender, criteria.DimAge}
)

// Required lists the dimensions of which at least one must be active for r to
// run; with none active the plan short circuits to an empty result
func Required(r Report) []criteria.Dimension {
	switch r {
	case Demographic, LongTerm:
		return append(append([]criteria.Dimension(nil), baseDims...), victimDims...)
	case ExternalEvents:
		return append([]criteria.Dimension{criteria.DimCrime, criteria.DimRegion,
			criteria.DimEventStart, criteria.DimEventEnd}, victimDims...)
	default:
		return append([]criteria.Dimension(nil), baseDims...)
	}
}
