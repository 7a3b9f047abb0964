package criteria

import (
	"strings"

	perr "crimestats/internal/platform/errors"
)

// Granularity selects the long term trend bucket
type Granularity string

// Granularities
const (
	Year    Granularity = "Year"
	Quarter Granularity = "Quarter"
	Month   Granularity = "Month"
)

// DefaultGranularity applies when the request names none
const DefaultGranularity = Year

// ErrInvalidGranularity is matched with errors.Is for any value outside the enum
var ErrInvalidGranularity = perr.New(perr.ErrorCodeValidation, "invalid time granularity")

// Granularities lists the accepted values
func Granularities() []Granularity { return []Granularity{Year, Quarter, Month} }

// ParseGranularity checks s against the closed enum, case insensitively
func ParseGranularity(s string) (Granularity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultGranularity, nil
	}
	for _, g := range Granularities() {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", perr.WithField(perr.Wrap(ErrInvalidGranularity, perr.ErrorCodeValidation,
		"time granularity must be one of Year, Quarter, Month"), "timeGranularity")
}
