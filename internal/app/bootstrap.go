package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mallops/mallops/internal/dashboard"
	"github.com/mallops/mallops/internal/datasource"
)

// DataLayer is the shared query stack used by the server, worker and CLI.
type DataLayer struct {
	Accessor *datasource.Accessor
	Source   *datasource.Source
	Service  *dashboard.Service
}

// NewDataLayer wires the lazy backend accessor, the mock toggle and the
// query service. reg may be nil to skip metric registration.
func NewDataLayer(cfg *Config, logger *slog.Logger, reg prometheus.Registerer, dial datasource.Dialer) *DataLayer {
	settings := datasource.Settings{}
	if cfg != nil {
		settings = datasource.Settings{Endpoint: cfg.BackendURL, Key: cfg.BackendKey}
	}
	accessor := datasource.NewAccessor(settings, dial, logger)
	source := datasource.NewSource(settings, accessor)
	var metrics *dashboard.Metrics
	if reg != nil {
		metrics = dashboard.NewMetrics(reg)
	}
	service := dashboard.NewService(source, dashboard.DefaultMockDataset(), logger, metrics)
	return &DataLayer{Accessor: accessor, Source: source, Service: service}
}

// Close releases the backend client if one was built.
func (d *DataLayer) Close() {
	if d != nil {
		d.Accessor.Close()
	}
}
