package datasource

import (
	"sync/atomic"

	"github.com/mallops/mallops/internal/backend"
)

// Source decides whether queries are served from mock fixtures or the
// backend. It is safe for concurrent use.
type Source struct {
	configured bool
	mock       atomic.Bool
	accessor   *Accessor
}

// NewSource starts in backend mode only when settings are complete.
func NewSource(settings Settings, accessor *Accessor) *Source {
	s := &Source{configured: settings.Configured(), accessor: accessor}
	s.mock.Store(!s.configured)
	return s
}

// MockActive reports whether mock fixtures are served.
func (s *Source) MockActive() bool {
	return s.mock.Load()
}

// SetMockActive flips the toggle. In-flight queries keep their source.
func (s *Source) SetMockActive(v bool) {
	s.mock.Store(v)
}

// BackendConfigured reports whether backend settings were complete at start.
func (s *Source) BackendConfigured() bool {
	return s.configured
}

// Client returns the backend client when backend mode is usable.
func (s *Source) Client() (backend.Querier, bool) {
	if s.accessor == nil {
		return nil, false
	}
	return s.accessor.Client()
}

// Backend returns the client only when mock mode is off and a client exists.
func (s *Source) Backend() (backend.Querier, bool) {
	client, ok := s.Client()
	if s.MockActive() || !ok {
		return nil, false
	}
	return client, true
}
