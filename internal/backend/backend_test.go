package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySQL(t *testing.T) {
	q := From("v_kpi_finance").
		Select("mall_id", "rent_collection_pct", "overdue_sar").
		Eq("mall_id", "m-1").
		OrderBy("created_at", true).
		WithLimit(2)
	sql, args, err := q.SQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "mall_id", "rent_collection_pct", "overdue_sar" FROM "v_kpi_finance" WHERE "mall_id" = $1 ORDER BY "created_at" DESC LIMIT 2`, sql)
	assert.Equal(t, []any{"m-1"}, args)
}

func TestQuerySQLDefaults(t *testing.T) {
	sql, args, err := From("public.malls").OrderBy("name", false).SQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "public"."malls" ORDER BY "name" ASC`, sql)
	assert.Empty(t, args)

	_, _, err = From(" ").SQL()
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestQueryBuilderDoesNotAlias(t *testing.T) {
	base := From("tenants").Eq("mall_id", "a")
	first := base.Eq("status", "x")
	second := base.Eq("status", "y")
	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "x", first.Filters[1].Value)
	assert.Equal(t, "y", second.Filters[1].Value)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"missing column message", &Error{Message: `column v_kpi_finance.mall_id does not exist`}, KindSchemaMismatch},
		{"upper case", errors.New("COLUMN foo"), KindSchemaMismatch},
		{"missing relation", &Error{Message: `relation "v_kpi_ops" does not exist`}, KindSchemaMismatch},
		{"invalid reference", &Error{Message: "Invalid reference to FROM-clause entry"}, KindSchemaMismatch},
		{"schema cache code", &Error{Code: "PGRST204", Message: "Could not find the field"}, KindSchemaMismatch},
		{"pg undefined column", &pgconn.PgError{Code: "42703", Message: "undefined"}, KindSchemaMismatch},
		{"wrapped pg error", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01", Message: "x"}), KindSchemaMismatch},
		{"permission denied", &Error{Code: "42501", Message: "permission denied for table tenants"}, KindOther},
		{"network", errors.New("dial tcp: connection refused"), KindOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
	assert.True(t, IsSchemaMismatch(&Error{Message: "column x does not exist"}))
	assert.False(t, IsSchemaMismatch(&Error{Message: "JWT expired"}))
}

func TestErrorString(t *testing.T) {
	err := &Error{Code: "42501", Message: "permission denied", Details: "rls"}
	assert.Equal(t, "backend: permission denied (code 42501): rls", err.Error())
	assert.Equal(t, "permission denied", Message(fmt.Errorf("wrap: %w", err)))
	assert.Equal(t, "42501", Code(err))
}

func TestRowAccessors(t *testing.T) {
	row := Row{
		"pct":    json.Number("92.5"),
		"amount": 1200.0,
		"id":     json.Number("17"),
		"text":   "Mall A",
		"nil":    nil,
		"bad":    "abc",
		"frac":   1.5,
	}
	require.NotNil(t, row.Float("pct"))
	assert.InDelta(t, 92.5, *row.Float("pct"), 1e-9)
	assert.InDelta(t, 1200.0, *row.Float("amount"), 1e-9)
	assert.Nil(t, row.Float("missing"))
	assert.Nil(t, row.Float("nil"))
	assert.Nil(t, row.Float("bad"))

	require.NotNil(t, row.Int("id"))
	assert.EqualValues(t, 17, *row.Int("id"))
	assert.Nil(t, row.Int("frac"))

	require.NotNil(t, row.String("text"))
	assert.Equal(t, "Mall A", *row.String("text"))
	assert.Equal(t, "17", *row.String("id"))
	assert.Nil(t, row.String("nil"))
}

func TestPlainValue(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, id.String(), plainValue([16]byte(id)))
	assert.Equal(t, "2025-10-31", plainValue(time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-10-05T08:30:00Z", plainValue(time.Date(2025, 10, 5, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, int64(5), plainValue(int64(5)))
}

func TestRESTSelect(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/tenants", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Tenant One","unit":"A-101","mall_id":"m-1"}]`))
	}))
	defer srv.Close()

	client, err := NewREST(srv.URL, "secret", srv.Client())
	require.NoError(t, err)
	rows, err := client.Select(context.Background(), From("tenants").Select("id", "name", "unit", "mall_id").Eq("mall_id", "m-1").OrderBy("name", false))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, *rows[0].Int("id"))
	assert.Equal(t, "Tenant One", *rows[0].String("name"))
	assert.Equal(t, "mall_id=eq.m-1&order=name.asc&select=id%2Cname%2Cunit%2Cmall_id", gotQuery)
}

func TestRESTSelectError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"42703","message":"column v_kpi_finance.mall_id does not exist","details":null,"hint":null}`))
	}))
	defer srv.Close()

	client, err := NewREST(srv.URL+"/", "k", srv.Client())
	require.NoError(t, err)
	_, err = client.Select(context.Background(), From("v_kpi_finance").Eq("mall_id", "x").WithLimit(2))
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "42703", apiErr.Code)
	assert.Equal(t, KindSchemaMismatch, Classify(err))
}

func TestRESTSelectPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewREST(srv.URL, "k", srv.Client())
	require.NoError(t, err)
	_, err = client.Select(context.Background(), From("malls"))
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", Message(err))
	assert.Equal(t, KindOther, Classify(err))
}

func TestNewRESTKeepsExplicitPath(t *testing.T) {
	client, err := NewREST("https://example.test/api/", "k", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api", client.Endpoint)

	_, err = NewREST("ftp://example.test", "k", nil)
	require.Error(t, err)
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "mysql://localhost/db", "k")
	require.Error(t, err)

	q, err := Open(context.Background(), "https://project.example.test", "k")
	require.NoError(t, err)
	rest, ok := q.(*REST)
	require.True(t, ok)
	assert.Equal(t, "https://project.example.test/rest/v1", rest.Endpoint)

	q, err = Open(context.Background(), "postgres://reader@localhost:5432/mallops", "k")
	require.NoError(t, err)
	_, ok = q.(*Postgres)
	assert.True(t, ok)
	q.Close()
}
