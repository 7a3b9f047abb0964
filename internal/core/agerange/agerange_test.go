package agerange

import (
	"reflect"
	"testing"
)

func ip(v int) *int { return &v }

func TestResolve(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want *Range
	}{
		{"0-18", &Range{Min: ip(0), Max: ip(18)}},
		{"19-30", &Range{Min: ip(19), Max: ip(30)}},
		{"31-50", &Range{Min: ip(31), Max: ip(50)}},
		{" 51+ ", &Range{Min: ip(51), Max: ip(Upper)}},
		{"Unknown", &Range{}},
		{"", nil},
		{"65+", nil},
		{"unknown", nil},
	}
	for _, c := range cases {
		got := Resolve(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Resolve(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestResolveDistinctAndUnknown(t *testing.T) {
	t.Parallel()
	if reflect.DeepEqual(Resolve("0-18"), Resolve("19-30")) {
		t.Fatalf("0-18 and 19-30 resolve to the same range")
	}
	u := Resolve("Unknown")
	if u == nil || !u.IsUnknown() {
		t.Fatalf("Unknown should be a present range with nil bounds, got %+v", u)
	}
	if _, _, ok := u.Bounds(); ok {
		t.Fatalf("Unknown has no bounds")
	}
	lo, hi, ok := Resolve("31-50").Bounds()
	if !ok || lo != 31 || hi != 50 {
		t.Fatalf("Bounds = %d %d %v", lo, hi, ok)
	}
}

func TestGroupOf(t *testing.T) {
	t.Parallel()
	cases := []struct {
		age  *int
		want string
	}{
		{nil, "Unknown"},
		{ip(0), "0-18"},
		{ip(18), "0-18"},
		{ip(19), "19-30"},
		{ip(30), "19-30"},
		{ip(50), "31-50"},
		{ip(51), "51+"},
		{ip(1200), "51+"},
	}
	for _, c := range cases {
		if got := GroupOf(c.age); got != c.want {
			t.Fatalf("GroupOf(%v) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestLabelsAndKnown(t *testing.T) {
	t.Parallel()
	want := []string{"0-18", "19-30", "31-50", "51+", "Unknown"}
	if got := Labels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels = %v", got)
	}
	for _, l := range want {
		if !Known(l) {
			t.Fatalf("Known(%q) = false", l)
		}
	}
	if Known("teen") {
		t.Fatalf("Known(teen) = true")
	}
}
