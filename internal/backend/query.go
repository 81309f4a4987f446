// Package backend talks to the remote table/view store behind the dashboard.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidQuery is returned when a Query cannot be rendered.
var ErrInvalidQuery = errors.New("backend: invalid query")

// Filter restricts rows to those where Column equals Value.
type Filter struct {
	Column string
	Value  any
}

// Order sorts the result set by Column.
type Order struct {
	Column     string
	Descending bool
}

// Query is a filtered select with ordering against one table or view.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   []Order
	Limit   int
}

// Row is a single backend record keyed by column name.
type Row map[string]any

// Querier executes queries against the backend.
type Querier interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Close()
}

// From starts a query against table.
func From(table string) Query {
	return Query{Table: table}
}

// Select sets the projected columns.
func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string(nil), columns...)
	return q
}

// Eq adds an equality filter.
func (q Query) Eq(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

// OrderBy adds a sort key.
func (q Query) OrderBy(column string, descending bool) Query {
	q.Order = append(append([]Order(nil), q.Order...), Order{Column: column, Descending: descending})
	return q
}

// WithLimit caps the number of returned rows. Zero means unlimited.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// SQL renders the query as a parameterised Postgres statement.
func (q Query) SQL() (string, []any, error) {
	if strings.TrimSpace(q.Table) == "" {
		return "", nil, fmt.Errorf("%w: table required", ErrInvalidQuery)
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		b.WriteString("*")
	}
	for i, col := range q.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(identifier(col))
	}
	b.WriteString(" FROM ")
	b.WriteString(identifier(q.Table))

	args := make([]any, 0, len(q.Filters))
	for i, f := range q.Filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, f.Value)
		b.WriteString(identifier(f.Column))
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}
	for i, o := range q.Order {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(identifier(o.Column))
		if o.Descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}
	return b.String(), args, nil
}

// identifier quotes a possibly schema-qualified name.
func identifier(name string) string {
	return pgx.Identifier(strings.Split(strings.TrimSpace(name), ".")).Sanitize()
}
