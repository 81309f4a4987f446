// Package jobmetrics instruments background jobs.
package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for background jobs.
type Metrics struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tiers    *prometheus.GaugeVec
	alerts   *prometheus.CounterVec
}

// NewMetrics builds the job collectors and registers them on reg when it is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := buildMetrics()
	if reg != nil {
		reg.MustRegister(m.runs, m.failures, m.duration, m.tiers, m.alerts)
	}
	return m
}

// Run times one job execution.
type Run struct {
	metrics *Metrics
	job     string
	started time.Time
}

// Track starts timing a run of job.
func (m *Metrics) Track(job string) *Run {
	return &Run{metrics: m, job: job, started: time.Now()}
}

// End records the run outcome and passes err through.
func (r *Run) End(err error) error {
	if r == nil || r.metrics == nil {
		return err
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		r.metrics.failures.WithLabelValues(r.job).Inc()
	}
	r.metrics.runs.WithLabelValues(r.job, outcome).Inc()
	r.metrics.duration.WithLabelValues(r.job).Observe(time.Since(r.started).Seconds())
	return err
}

// SetTier stores the latest severity of one KPI for one mall. Severity 0
// means the value was absent.
func (m *Metrics) SetTier(mallID, kpi string, severity int) {
	if m == nil {
		return
	}
	m.tiers.WithLabelValues(mallID, kpi).Set(float64(severity))
}

// AddAlerts counts published critical alerts.
func (m *Metrics) AddAlerts(kpi string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.alerts.WithLabelValues(kpi).Add(float64(count))
}

func buildMetrics() *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mallops_jobs_total",
		Help: "Job runs by job name and outcome.",
	}, []string{"job", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mallops_jobs_failures_total",
		Help: "Failed job runs.",
	}, []string{"job"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mallops_job_duration_seconds",
		Help:    "Job run duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	tiers := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mallops_kpi_tier",
		Help: "Latest KPI severity per mall: 0 unknown, 1 good, 2 warning, 3 critical.",
	}, []string{"mall_id", "kpi"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mallops_kpi_alerts_total",
		Help: "Critical KPI alerts published by the scan job.",
	}, []string{"kpi"})
	return &Metrics{runs: runs, failures: failures, duration: duration, tiers: tiers, alerts: alerts}
}
