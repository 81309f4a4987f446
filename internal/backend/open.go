package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mallops/mallops/internal/platform/db"
)

// Open picks a backend implementation from the endpoint scheme. Neither
// implementation dials during Open.
func Open(ctx context.Context, endpoint, key string) (Querier, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("backend: parse endpoint: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		pool, err := db.Open(ctx, endpoint, key)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool), nil
	case "http", "https":
		return NewREST(endpoint, key, nil)
	default:
		return nil, fmt.Errorf("backend: unsupported endpoint scheme %q", u.Scheme)
	}
}
