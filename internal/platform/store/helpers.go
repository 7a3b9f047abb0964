package store

import (
	"context"
	"time"
)

// Querier is the read surface shared by the sql seam and the clickhouse seam
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Result is a fully drained result set with column order preserved
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Table runs a query and drains every row into column keyed maps
// Columns is never nil so callers can serialise an empty result as []
func Table(ctx context.Context, q Querier, sql string, args ...any) (Result, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	res := Result{Columns: append([]string{}, rows.Columns()...), Rows: []map[string]any{}}
	for rows.Next() {
		m, err := scanMap(rows, res.Columns)
		if err != nil {
			return Result{}, err
		}
		res.Rows = append(res.Rows, m)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// scanMap builds map[string]any for the current row
func scanMap(rows Rows, cols []string) (map[string]any, error) {
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = deref(vals[i])
	}
	return m, nil
}

func deref(v any) any {
	switch x := v.(type) {
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		return string(x)
	default:
		return v
	}
}
