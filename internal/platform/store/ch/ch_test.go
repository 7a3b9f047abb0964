package ch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type colType struct {
	name string
	typ  reflect.Type
}

func (c colType) Name() string             { return c.name }
func (c colType) Nullable() bool           { return c.typ.Kind() == reflect.Pointer }
func (c colType) ScanType() reflect.Type   { return c.typ }
func (c colType) DatabaseTypeName() string { return c.typ.String() }

// fakeRows yields a single row of fixed values
type fakeRows struct {
	types  []driver.ColumnType
	values []any
	done   bool
}

func (f *fakeRows) Next() bool {
	if f.done {
		return false
	}
	f.done = true
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if len(dest) != len(f.values) {
		return errors.New("arity")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(f.values[i]))
	}
	return nil
}

func (f *fakeRows) ColumnTypes() []driver.ColumnType { return f.types }
func (f *fakeRows) Columns() []string {
	out := make([]string, len(f.types))
	for i, t := range f.types {
		out[i] = t.Name()
	}
	return out
}
func (f *fakeRows) Err() error   { return nil }
func (f *fakeRows) Close() error { return nil }

func TestRowsScanIntoAny(t *testing.T) {
	t.Parallel()
	var nilStr *string
	r := &Rows{r: &fakeRows{
		types: []driver.ColumnType{
			colType{"area", reflect.TypeOf("")},
			colType{"incident_count", reflect.TypeOf(uint64(0))},
			colType{"weapon_type", reflect.TypeOf(nilStr)},
		},
		values: []any{"Hollywood", uint64(42), nilStr},
	}}
	if !r.Next() {
		t.Fatalf("expected a row")
	}
	var a, b, c any
	if err := r.Scan(&a, &b, &c); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if a != "Hollywood" || b != uint64(42) || c != nil {
		t.Fatalf("scanned %#v %#v %#v", a, b, c)
	}
	if got := r.Columns(); !reflect.DeepEqual(got, []string{"area", "incident_count", "weapon_type"}) {
		t.Fatalf("Columns = %v", got)
	}
	if r.Next() {
		t.Fatalf("expected one row")
	}
}

func TestRowsScanTypedPassesThrough(t *testing.T) {
	t.Parallel()
	r := &Rows{r: &fakeRows{
		types:  []driver.ColumnType{colType{"n", reflect.TypeOf(uint64(0))}},
		values: []any{uint64(7)},
	}}
	r.Next()
	var n uint64
	if err := r.Scan(&n); err != nil || n != 7 {
		t.Fatalf("Scan typed = %d, %v", n, err)
	}
	var x, y any
	if err := r.Scan(&x, &y); err == nil {
		t.Fatalf("arity mismatch should fail")
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("empty url should fail")
	}
	if _, err := Open(context.Background(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("bad dsn should fail")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()
	ci := BuildClientInfo(" api ", "v1.2.3")
	if len(ci.Products) < 3 || ci.Products[0].Name != "crimestats" || ci.Products[0].Version != "v1.2.3" {
		t.Fatalf("products = %+v", ci.Products)
	}
	if ci.Products[1].Version != "api" {
		t.Fatalf("role not trimmed: %+v", ci.Products[1])
	}

	// blank entries are left out
	if ci := BuildClientInfo("", ""); ci.Products[0].Name != "go" {
		t.Fatalf("products = %+v", ci.Products)
	}
}
