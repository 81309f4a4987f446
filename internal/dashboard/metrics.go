package dashboard

import "github.com/prometheus/client_golang/prometheus"

// Query outcomes recorded per entity.
const (
	outcomeMock     = "mock"
	outcomeOK       = "ok"
	outcomeEmpty    = "empty"
	outcomeFallback = "fallback"
	outcomeError    = "error"
)

// Metrics counts backend queries issued by the Service.
type Metrics struct {
	queries   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// NewMetrics registers the query counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mallops_dashboard_queries_total",
		Help: "Dashboard data requests by entity and outcome.",
	}, []string{"entity", "outcome"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mallops_dashboard_kpi_fallbacks_total",
		Help: "KPI queries retried without the mall filter after a schema mismatch.",
	}, []string{"entity"})
	if reg != nil {
		reg.MustRegister(queries, fallbacks)
	}
	return &Metrics{queries: queries, fallbacks: fallbacks}
}

func (m *Metrics) observe(entity, outcome string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(entity, outcome).Inc()
}

func (m *Metrics) fallback(entity string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(entity).Inc()
}
