package backend

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool used by Postgres.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// Postgres executes queries directly against a Postgres database.
type Postgres struct {
	pool Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool Pool) *Postgres {
	return &Postgres{pool: pool}
}

var _ Pool = (*pgxpool.Pool)(nil)

// Select runs q and collects every row into a column-keyed map.
func (p *Postgres) Select(ctx context.Context, q Query) ([]Row, error) {
	if p == nil || p.pool == nil {
		return nil, fmt.Errorf("backend: postgres pool not configured")
	}
	sql, args, err := q.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]Row, 0, len(maps))
	for _, m := range maps {
		row := make(Row, len(m))
		for k, v := range m {
			row[k] = plainValue(v)
		}
		out = append(out, row)
	}
	return out, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
