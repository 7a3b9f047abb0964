// Package agerange resolves victim age bracket labels
package agerange

import "strings"

// Upper stands in for an unbounded top bracket
const Upper = 999

// Unknown is the bracket label for records without an age
const Unknown = "Unknown"

// Range is an inclusive age range
// both bounds nil means the age is absent on the record
type Range struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// IsUnknown reports whether r selects records with no age
func (r Range) IsUnknown() bool { return r.Min == nil && r.Max == nil }

// Bounds returns the numeric bounds; ok is false for the unknown range
func (r Range) Bounds() (lo, hi int, ok bool) {
	if r.Min == nil || r.Max == nil {
		return 0, 0, false
	}
	return *r.Min, *r.Max, true
}

// Bracket is a labelled inclusive age band
type Bracket struct {
	Label    string
	Min, Max int
}

var brackets = []Bracket{
	{"0-18", 0, 18},
	{"19-30", 19, 30},
	{"31-50", 31, 50},
	{"51+", 51, Upper},
}

// Brackets returns the numeric brackets in ascending order, Unknown excluded
func Brackets() []Bracket { return append([]Bracket(nil), brackets...) }

// Labels lists the selectable brackets in display order, Unknown last
func Labels() []string {
	out := make([]string, 0, len(brackets)+1)
	for _, b := range brackets {
		out = append(out, b.Label)
	}
	return append(out, Unknown)
}

// Resolve maps a bracket label to its range
// an absent or unrecognised label yields nil, meaning no age filter
func Resolve(label string) *Range {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	if label == Unknown {
		return &Range{}
	}
	for _, b := range brackets {
		if b.Label == label {
			lo, hi := b.Min, b.Max
			return &Range{Min: &lo, Max: &hi}
		}
	}
	return nil
}

// Known reports whether label is a recognised bracket
func Known(label string) bool {
	label = strings.TrimSpace(label)
	return label == Unknown || Resolve(label) != nil
}

// GroupOf buckets a recorded age into its bracket label
func GroupOf(age *int) string {
	if age == nil {
		return Unknown
	}
	for _, b := range brackets {
		if *age <= b.Max {
			return b.Label
		}
	}
	return brackets[len(brackets)-1].Label
}
