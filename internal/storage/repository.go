package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/tourist-routes/internal/route"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides database access for route records. Stops are
// stored as serialized JSON text in the pontos_turisticos column.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

const routeColumns = `id, nome, descricao, data_inicio, data_fim, pontos_turisticos, user_id, created_at, updated_at`

// CreateRoute inserts a validated route and returns it with the
// server-assigned id.
func (r *Repository) CreateRoute(ctx context.Context, rt *route.Route) (*route.Route, error) {
	pontosJSON, err := json.Marshal(rt.Pontos)
	if err != nil {
		return nil, fmt.Errorf("marshaling stops for route %q: %w", rt.Nome, err)
	}

	const q = `
		INSERT INTO routes (nome, descricao, data_inicio, data_fim, pontos_turisticos, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	created := *rt
	err = r.q.QueryRow(ctx, q,
		rt.Nome, rt.Descricao, rt.DataInicio, rt.DataFim,
		string(pontosJSON), rt.UserID, rt.CreatedAt, rt.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting route %q: %w", rt.Nome, err)
	}

	return &created, nil
}

// GetRoute retrieves a route by id. Returns nil, nil when not found.
func (r *Repository) GetRoute(ctx context.Context, id int) (*route.Route, error) {
	q := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	rt, err := scanRoute(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying route %d: %w", id, err)
	}
	return rt, nil
}

// ListRoutes retrieves all routes owned by userID, newest first.
func (r *Repository) ListRoutes(ctx context.Context, userID int) ([]*route.Route, error) {
	q := `SELECT ` + routeColumns + ` FROM routes WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying routes for user %d: %w", userID, err)
	}
	defer rows.Close()

	var results []*route.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning route row: %w", err)
		}
		results = append(results, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating route rows: %w", err)
	}

	return results, nil
}

// UpdateRoute writes all mutable fields of rt in a single statement,
// so a failure leaves the stored record untouched.
func (r *Repository) UpdateRoute(ctx context.Context, rt *route.Route) error {
	pontosJSON, err := json.Marshal(rt.Pontos)
	if err != nil {
		return fmt.Errorf("marshaling stops for route %d: %w", rt.ID, err)
	}

	const q = `
		UPDATE routes
		SET nome = $2,
		    descricao = $3,
		    data_inicio = $4,
		    data_fim = $5,
		    pontos_turisticos = $6,
		    updated_at = $7
		WHERE id = $1
	`

	if _, err := r.q.Exec(ctx, q,
		rt.ID, rt.Nome, rt.Descricao, rt.DataInicio, rt.DataFim,
		string(pontosJSON), rt.UpdatedAt,
	); err != nil {
		return fmt.Errorf("updating route %d: %w", rt.ID, err)
	}

	return nil
}

// DeleteRoute removes a route permanently. Returns false when no row
// matched the id.
func (r *Repository) DeleteRoute(ctx context.Context, id int) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting route %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanRoute reads one route row, deserializing the stop list.
func scanRoute(row pgx.Row) (*route.Route, error) {
	var rt route.Route
	var descricao *string
	var dataFim *time.Time
	var pontosJSON string

	if err := row.Scan(
		&rt.ID,
		&rt.Nome,
		&descricao,
		&rt.DataInicio,
		&dataFim,
		&pontosJSON,
		&rt.UserID,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rt.Descricao = descricao
	rt.DataFim = dataFim

	if pontosJSON != "" {
		if err := json.Unmarshal([]byte(pontosJSON), &rt.Pontos); err != nil {
			return nil, fmt.Errorf("unmarshaling stops for route %d: %w", rt.ID, err)
		}
	}
	if rt.Pontos == nil {
		rt.Pontos = []route.Point{}
	}

	return &rt, nil
}
