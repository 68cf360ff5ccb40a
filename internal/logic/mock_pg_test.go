package logic

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	Queries      []string
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.Queries = append(m.Queries, sql)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.Queries = append(m.Queries, sql)
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{Err: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

// MockPgRows implements pgx.Rows over fixed data
type MockPgRows struct {
	pgx.Rows
	Data    [][]any
	Index   int
	ScanErr error
	RowsErr error
	Closed  bool
}

func (m *MockPgRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockPgRows) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockPgRows) Close()     { m.Closed = true }
func (m *MockPgRows) Err() error { return m.RowsErr }

// MockPgRow implements pgx.Row
type MockPgRow struct {
	Values []any
	Err    error
}

func (m *MockPgRow) Scan(dest ...any) error {
	if m.Err != nil {
		return m.Err
	}
	for i, val := range m.Values {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

// setDest assigns val through a Scan destination. nil clears the target and
// plain values are boxed when the target is a pointer field.
func setDest(dest interface{}, val interface{}) {
	v := reflect.ValueOf(dest).Elem()
	if val == nil {
		v.Set(reflect.Zero(v.Type()))
		return
	}
	valV := reflect.ValueOf(val)
	if v.Kind() == reflect.Ptr && valV.Kind() != reflect.Ptr {
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(valV.Convert(v.Type().Elem()))
		v.Set(p)
		return
	}
	// Handle type conversion if needed (e.g. int to int64)
	if valV.Type().ConvertibleTo(v.Type()) {
		v.Set(valV.Convert(v.Type()))
	} else {
		v.Set(valV)
	}
}

// seasonRow lays out values by column name in SELECT order. Missing columns
// scan as NULL.
func seasonRow(values map[string]any) []any {
	row := make([]any, len(seasonColumns))
	for i, c := range seasonColumns {
		row[i] = values[c.name]
	}
	return row
}
