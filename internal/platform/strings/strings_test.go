package strings

import (
	"reflect"
	"testing"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()
	if got := IfEmpty([]string{"GET"}, []string{"POST"}); !reflect.DeepEqual(got, []string{"GET"}) {
		t.Fatalf("got %v", got)
	}
	if got := IfEmpty(nil, []int{1}); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("got %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()
	if MustString("reports", "module name") != "reports" {
		t.Fatal("value not returned")
	}
	defer func() {
		if r := recover(); r != "module name is required" {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustString(" \t", "module name")
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"/reports":   "/reports",
		"reports/":   "/reports",
		" /meta/ ":   "/meta",
		"/api/v1/x/": "/api/v1/x",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("MustPrefix(%q) did not panic", in)
				}
			}()
			MustPrefix(in)
		}()
	}
}

func TestFields(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"repeated keys", []string{"Violent", "Fraud"}, []string{"Violent", "Fraud"}},
		{"comma list", []string{"North, South,,"}, []string{"North", "South"}},
		{"mixed", []string{" Asian ", "Black,White"}, []string{"Asian", "Black", "White"}},
		{"blanks only", []string{" , ", ""}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fields(tc.in, ","); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}
