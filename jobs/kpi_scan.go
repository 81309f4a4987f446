package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mallops/mallops/internal/dashboard"
	jobmetrics "github.com/mallops/mallops/internal/jobs"
	"github.com/mallops/mallops/internal/kpi"
)

// KPIReader is the slice of the dashboard query layer the scan needs.
type KPIReader interface {
	GetMalls(ctx context.Context) []dashboard.Mall
	GetFinanceKPI(ctx context.Context, mallID string) *dashboard.FinanceKPI
	GetOpsKPI(ctx context.Context, mallID string) *dashboard.OpsKPI
}

// KPIScanJob classifies KPIs for every mall, exports the tiers as gauges and
// publishes an alert for each critical reading.
type KPIScanJob struct {
	Reader    KPIReader
	Publisher AlertPublisher
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewKPIScanJob initialises the scan handler.
func NewKPIScanJob(reader KPIReader, publisher AlertPublisher, logger *slog.Logger, metrics *jobmetrics.Metrics) *KPIScanJob {
	return &KPIScanJob{
		Reader:    reader,
		Publisher: publisher,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ScanResult summarises one run.
type ScanResult struct {
	Malls    int
	Critical []Alert
}

// Handle executes TaskKPIScan.
func (j *KPIScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("kpi scan: handler not configured")
	}
	var payload KPIScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	run := j.Metrics.Track(TaskKPIScan)
	start := j.now()
	logger := j.logger().With(slog.Int("requested_malls", len(payload.MallIDs)))
	logger.Info("starting kpi scan")

	result, err := j.Scan(ctx, payload.MallIDs)
	if err != nil {
		logger.Error("kpi scan failed", slog.Any("error", err))
		return run.End(err)
	}
	logger.Info("completed kpi scan",
		slog.Int("malls", result.Malls),
		slog.Int("critical", len(result.Critical)),
		slog.Duration("duration", j.now().Sub(start)),
	)
	return run.End(nil)
}

// Scan classifies the given malls, or all malls when ids is empty.
func (j *KPIScanJob) Scan(ctx context.Context, ids []string) (ScanResult, error) {
	if j.Reader == nil {
		return ScanResult{}, errors.New("kpi scan: reader not configured")
	}
	if len(ids) == 0 {
		for _, m := range j.Reader.GetMalls(ctx) {
			ids = append(ids, m.ID)
		}
	}

	var result ScanResult
	var publishErrs []error
	for _, mallID := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Malls++
		fin := j.Reader.GetFinanceKPI(ctx, mallID)
		ops := j.Reader.GetOpsKPI(ctx, mallID)
		for _, r := range dashboard.Readings(fin, ops) {
			j.Metrics.SetTier(mallID, string(r.Type), r.Tier.Severity())
			if r.Tier != kpi.Critical {
				continue
			}
			alert := Alert{
				MallID:     mallID,
				KPI:        string(r.Type),
				Tier:       string(r.Tier),
				Value:      *r.Value,
				DetectedAt: j.now(),
			}
			j.logger().Warn("critical kpi detected",
				slog.String("mall_id", mallID),
				slog.String("kpi", alert.KPI),
				slog.Float64("value", alert.Value),
			)
			result.Critical = append(result.Critical, alert)
			if j.Publisher == nil {
				continue
			}
			if err := j.Publisher.Publish(ctx, alert); err != nil {
				publishErrs = append(publishErrs, err)
				continue
			}
			j.Metrics.AddAlerts(alert.KPI, 1)
		}
	}
	return result, errors.Join(publishErrs...)
}

func (j *KPIScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *KPIScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
