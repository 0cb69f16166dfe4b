package storage_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourist-routes/internal/route"
	"github.com/neexbeast/tourist-routes/internal/storage"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows   [][]any
	idx    int
	rowErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	return scanInto(f.rows[f.idx-1], dest...)
}

// scanInto copies a row of test values into scan destinations, covering
// the column types of the routes table.
func scanInto(row []any, dest ...any) error {
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *int:
			*v = row[i].(int)
		case *string:
			*v = row[i].(string)
		case **string:
			if row[i] == nil {
				*v = nil
			} else {
				s := row[i].(string)
				*v = &s
			}
		case *time.Time:
			*v = row[i].(time.Time)
		case **time.Time:
			if row[i] == nil {
				*v = nil
			} else {
				t := row[i].(time.Time)
				*v = &t
			}
		}
	}
	return nil
}

var (
	testInicio  = time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	testCreated = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
)

// routeRow builds a full routes row in column order.
func routeRow(id int, nome string, pontosJSON string) []any {
	return []any{id, nome, nil, testInicio, nil, pontosJSON, 1, testCreated, testCreated}
}

// ---- CreateRoute ----

func TestCreateRoute_AssignsID(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			assert.Contains(t, sql, "INSERT INTO routes")
			assert.Equal(t, "Rota Teste", args[0])
			assert.JSONEq(t, `[{"id":1,"nome":"Cristo Redentor"}]`, args[4].(string))
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*int) = 42
				return nil
			}}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	rt := &route.Route{
		Nome:       "Rota Teste",
		DataInicio: testInicio,
		Pontos:     []route.Point{{"id": float64(1), "nome": "Cristo Redentor"}},
		UserID:     1,
	}
	created, err := repo.CreateRoute(context.Background(), rt)

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, 0, rt.ID, "input must not be mutated")
}

func TestCreateRoute_InsertError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return fmt.Errorf("connection reset") }}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	_, err := repo.CreateRoute(context.Background(), &route.Route{Nome: "Rota"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

// ---- GetRoute ----

func TestGetRoute_Found(t *testing.T) {
	row := routeRow(7, "Rota do Rio", `[{"id":1,"nome":"Cristo Redentor"},{"id":2,"nome":"Pão de Açúcar"}]`)
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			assert.Contains(t, sql, "FROM routes WHERE id = $1")
			assert.Equal(t, 7, args[0])
			return &fakeRow{scanFn: func(dest ...any) error { return scanInto(row, dest...) }}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	rt, err := repo.GetRoute(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, 7, rt.ID)
	assert.Equal(t, "Rota do Rio", rt.Nome)
	assert.Nil(t, rt.Descricao)
	require.Len(t, rt.Pontos, 2)
	assert.Equal(t, "Pão de Açúcar", rt.Pontos[1].Nome())
}

func TestGetRoute_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	rt, err := repo.GetRoute(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestGetRoute_MalformedStops(t *testing.T) {
	row := routeRow(7, "Rota", `{corrupt`)
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error { return scanInto(row, dest...) }}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	_, err := repo.GetRoute(context.Background(), 7)
	assert.Error(t, err)
}

func TestGetRoute_EmptyStopsColumn(t *testing.T) {
	row := routeRow(7, "Rota", "")
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error { return scanInto(row, dest...) }}
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	rt, err := repo.GetRoute(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, rt.Pontos)
	assert.Empty(t, rt.Pontos)
}

// ---- ListRoutes ----

func TestListRoutes_ReturnsAll(t *testing.T) {
	rows := &fakeRows{rows: [][]any{
		routeRow(1, "Primeira", `[]`),
		routeRow(2, "Segunda", `[{"id":1,"nome":"Maracanã"}]`),
	}}
	q := &mockQuerier{
		queryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			assert.Contains(t, sql, "WHERE user_id = $1")
			assert.Contains(t, sql, "ORDER BY created_at DESC")
			assert.Equal(t, 1, args[0])
			return rows, nil
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	routes, err := repo.ListRoutes(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "Primeira", routes[0].Nome)
	assert.Len(t, routes[1].Pontos, 1)
}

func TestListRoutes_QueryError(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return nil, fmt.Errorf("timeout")
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	_, err := repo.ListRoutes(context.Background(), 1)
	assert.Error(t, err)
}

// ---- UpdateRoute ----

func TestUpdateRoute_WritesAllFields(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL = sql
			gotArgs = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	err := repo.UpdateRoute(context.Background(), &route.Route{
		ID:         7,
		Nome:       "Rota Nova",
		DataInicio: testInicio,
		Pontos:     []route.Point{},
	})

	require.NoError(t, err)
	assert.Contains(t, gotSQL, "UPDATE routes")
	assert.Equal(t, 7, gotArgs[0])
	assert.Equal(t, "Rota Nova", gotArgs[1])
	assert.Equal(t, "[]", gotArgs[5])
}

// ---- DeleteRoute ----

func TestDeleteRoute_Found(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			assert.Contains(t, sql, "DELETE FROM routes")
			assert.Equal(t, 7, args[0])
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	found, err := repo.DeleteRoute(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, found)
}

func TestDeleteRoute_Missing(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	found, err := repo.DeleteRoute(context.Background(), 99)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteRoute_ExecError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("deadlock detected")
		},
	}
	repo := storage.NewRepositoryWithQuerier(q)

	_, err := repo.DeleteRoute(context.Background(), 7)
	assert.Error(t, err)
}
