// Package category expands human facing filter labels into canonical code sets
// crime categories become crime codes, regions become area names and descent
// labels become the victim descent strings stored with each incident
package category

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Table maps a label to the codes it stands for
type Table map[string][]string

// CodeSet is a sorted, de-duplicated set of codes
// an empty set means the dimension is not restricted
type CodeSet []string

// Empty reports whether the set carries no codes
func (c CodeSet) Empty() bool { return len(c) == 0 }

// Contains reports whether code is in the set
func (c CodeSet) Contains(code string) bool {
	_, ok := slices.BinarySearch(c, code)
	return ok
}

// Strings returns the codes as a plain slice for query parameters
func (c CodeSet) Strings() []string { return []string(c) }

// Expand unions the codes of every known label in labels
// unknown and blank labels contribute nothing
func Expand(labels []string, t Table) CodeSet {
	out, _ := ExpandReport(labels, t)
	return out
}

// ExpandReport is Expand that also returns the labels it could not resolve
// in the order they were given
func ExpandReport(labels []string, t Table) (CodeSet, []string) {
	if len(labels) == 0 || len(t) == 0 {
		return nil, unknownAll(labels)
	}
	seen := make(map[string]struct{})
	var unknown []string
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		codes, ok := t.lookup(l)
		if !ok {
			unknown = append(unknown, l)
			continue
		}
		for _, c := range codes {
			seen[c] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, unknown
	}
	out := make(CodeSet, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out, unknown
}

// Labels returns the table labels in lexical order
func (t Table) Labels() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// lookup matches exactly first, then ignoring case
func (t Table) lookup(label string) ([]string, bool) {
	label = strings.TrimSpace(label)
	if codes, ok := t[label]; ok {
		return codes, true
	}
	fold := cases.Fold()
	want := fold.String(label)
	for k, codes := range t {
		if fold.String(k) == want {
			return codes, true
		}
	}
	return nil, false
}

func unknownAll(labels []string) []string {
	var out []string
	for _, l := range labels {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
