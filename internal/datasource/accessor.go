// Package datasource owns the mock/backend toggle and the shared backend client.
package datasource

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mallops/mallops/internal/backend"
)

// Settings are the two configuration values enabling backend mode.
type Settings struct {
	Endpoint string
	Key      string
}

// Configured reports whether both the endpoint and the access key are set.
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.Endpoint) != "" && strings.TrimSpace(s.Key) != ""
}

// Dialer builds a backend client from configuration.
type Dialer func(ctx context.Context, endpoint, key string) (backend.Querier, error)

// Accessor lazily builds the backend client on first demand and keeps the
// outcome, including "unavailable", for the rest of the process lifetime.
type Accessor struct {
	settings Settings
	dial     Dialer
	logger   *slog.Logger

	once   sync.Once
	mu     sync.RWMutex
	client backend.Querier
}

// NewAccessor wires an accessor. A nil dialer defaults to backend.Open.
func NewAccessor(settings Settings, dial Dialer, logger *slog.Logger) *Accessor {
	if dial == nil {
		dial = backend.Open
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{settings: settings, dial: dial, logger: logger}
}

// Client returns the shared backend client, or false when none is available.
func (a *Accessor) Client() (backend.Querier, bool) {
	if a == nil {
		return nil, false
	}
	a.once.Do(a.init)
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client, a.client != nil
}

func (a *Accessor) init() {
	if !a.settings.Configured() {
		a.logger.Info("backend not configured, serving mock data only")
		return
	}
	// The client outlives any single request, so it is not bound to one.
	client, err := a.dial(context.Background(), a.settings.Endpoint, a.settings.Key)
	if err != nil {
		a.logger.Error("build backend client", slog.Any("error", err))
		return
	}
	a.mu.Lock()
	a.client = client
	a.mu.Unlock()
}

// Close releases the client if one was built. Later calls to Client report
// the backend as unavailable.
func (a *Accessor) Close() {
	if a == nil {
		return
	}
	a.once.Do(func() {})
	a.mu.Lock()
	client := a.client
	a.client = nil
	a.mu.Unlock()
	if client != nil {
		client.Close()
	}
}
