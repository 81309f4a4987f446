// Package dashboard serves mall KPIs and operational records from either the
// live backend or the mock dataset.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mallops/mallops/internal/backend"
)

// ErrMultipleRows is reported when a per-mall KPI view yields more than one row.
var ErrMultipleRows = errors.New("dashboard: multiple kpi rows for one mall")

// Entity names used in logs and metrics.
const (
	EntityMalls      = "malls"
	EntityFinance    = "finance_kpi"
	EntityOps        = "ops_kpi"
	EntityTenants    = "tenants"
	EntityInvoices   = "invoices"
	EntityWorkOrders = "work_orders"
)

// Source hands out the backend client while backend mode is in effect.
type Source interface {
	Backend() (backend.Querier, bool)
}

// Service is the query layer behind every dashboard surface.
type Service struct {
	source  Source
	mock    MockDataset
	logger  *slog.Logger
	metrics *Metrics
}

// NewService wires the data source with the mock fixtures.
func NewService(source Source, mock MockDataset, logger *slog.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, mock: mock, logger: logger, metrics: metrics}
}

// ServingMock reports whether the next query will be served from fixtures.
func (s *Service) ServingMock() bool {
	_, ok := s.client()
	return !ok
}

func (s *Service) client() (backend.Querier, bool) {
	if s.source == nil {
		return nil, false
	}
	return s.source.Backend()
}

// GetMalls lists malls by name. Backend failures yield an empty list.
func (s *Service) GetMalls(ctx context.Context) []Mall {
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityMalls, outcomeMock)
		return append([]Mall(nil), s.mock.Malls...)
	}
	rows, err := client.Select(ctx, backend.From(tableMalls).Select(mallColumns...).OrderBy("name", false))
	if err != nil {
		s.metrics.observe(EntityMalls, outcomeError)
		s.logger.Error("list malls", slog.Any("error", err))
		return []Mall{}
	}
	s.metrics.observe(EntityMalls, outcomeOK)
	return mapRows(rows, decodeMall, normalizeMall)
}

// GetFinanceKPI returns the finance KPI record for mallID, or nil when none
// can be produced.
func (s *Service) GetFinanceKPI(ctx context.Context, mallID string) *FinanceKPI {
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityFinance, outcomeMock)
		return s.mock.finance(mallID)
	}
	row := s.kpiRow(ctx, client, EntityFinance, mallID,
		backend.From(tableFinance).Select(financeColumns...).Eq("mall_id", mallID),
		backend.From(tableFinance).Select(financeFallback...),
	)
	if row == nil {
		return nil
	}
	out := normalizeFinance(decodeFinance(row), mallID)
	return &out
}

// GetOpsKPI returns the operations KPI record for mallID, or nil when none
// can be produced.
func (s *Service) GetOpsKPI(ctx context.Context, mallID string) *OpsKPI {
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityOps, outcomeMock)
		return s.mock.ops(mallID)
	}
	row := s.kpiRow(ctx, client, EntityOps, mallID,
		backend.From(tableOps).Select(opsColumns...).Eq("mall_id", mallID),
		backend.From(tableOps).Select(opsFallback...),
	)
	if row == nil {
		return nil
	}
	out := normalizeOps(decodeOps(row), mallID)
	return &out
}

// kpiRow runs the filtered KPI query and, when the backend rejects it for
// schema reasons, one unfiltered single-row query. Failures are logged and
// reported as a nil row.
func (s *Service) kpiRow(ctx context.Context, client backend.Querier, entity, mallID string, primary, fallback backend.Query) backend.Row {
	logger := s.logger.With(slog.String("entity", entity), slog.String("mall_id", mallID))

	// Two rows are enough to detect a view that is not unique per mall.
	rows, err := client.Select(ctx, primary.WithLimit(2))
	if err == nil && len(rows) > 1 {
		err = fmt.Errorf("%w: got %d", ErrMultipleRows, len(rows))
	}
	if err != nil {
		if errors.Is(err, ErrMultipleRows) || !backend.IsSchemaMismatch(err) {
			s.metrics.observe(entity, outcomeError)
			logger.Warn("kpi query failed, returning no data", slog.Any("error", err))
			return nil
		}
		logger.Error("kpi primary query rejected, retrying without mall filter", slog.Any("error", err))
		s.metrics.fallback(entity)
		rows, err = client.Select(ctx, fallback.WithLimit(1))
		if err != nil {
			s.metrics.observe(entity, outcomeError)
			logger.Error("kpi fallback query failed", slog.Any("error", err))
			return nil
		}
		if len(rows) == 0 {
			s.metrics.observe(entity, outcomeEmpty)
			return nil
		}
		s.metrics.observe(entity, outcomeFallback)
		return rows[0]
	}
	if len(rows) == 0 {
		s.metrics.observe(entity, outcomeEmpty)
		return nil
	}
	s.metrics.observe(entity, outcomeOK)
	return rows[0]
}

// GetTenants lists the tenants of mallID by name.
func (s *Service) GetTenants(ctx context.Context, mallID string) ([]Tenant, error) {
	if blank(mallID) {
		return []Tenant{}, nil
	}
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityTenants, outcomeMock)
		return append([]Tenant(nil), s.mock.Tenants...), nil
	}
	q := backend.From(tableTenants).Select(tenantColumns...).Eq("mall_id", mallID).OrderBy("name", false)
	rows, err := s.list(ctx, client, EntityTenants, mallID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, decodeTenant, normalizeTenant), nil
}

// GetInvoices lists the invoices of mallID in backend order.
func (s *Service) GetInvoices(ctx context.Context, mallID string) ([]Invoice, error) {
	if blank(mallID) {
		return []Invoice{}, nil
	}
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityInvoices, outcomeMock)
		return append([]Invoice(nil), s.mock.Invoices...), nil
	}
	q := backend.From(tableInvoices).Select(invoiceColumns...).Eq("mall_id", mallID)
	rows, err := s.list(ctx, client, EntityInvoices, mallID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, decodeInvoice, normalizeInvoice), nil
}

// GetWorkOrders lists the work orders of mallID, newest first.
func (s *Service) GetWorkOrders(ctx context.Context, mallID string) ([]WorkOrder, error) {
	if blank(mallID) {
		return []WorkOrder{}, nil
	}
	client, ok := s.client()
	if !ok {
		s.metrics.observe(EntityWorkOrders, outcomeMock)
		return append([]WorkOrder(nil), s.mock.WorkOrders...), nil
	}
	q := backend.From(tableWorkOrders).Select(workOrderColumns...).Eq("mall_id", mallID).OrderBy("created_at", true)
	rows, err := s.list(ctx, client, EntityWorkOrders, mallID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, decodeWorkOrder, normalizeWorkOrder), nil
}

func (s *Service) list(ctx context.Context, client backend.Querier, entity, mallID string, q backend.Query) ([]backend.Row, error) {
	rows, err := client.Select(ctx, q)
	if err != nil {
		s.metrics.observe(entity, outcomeError)
		s.logger.Error("list query failed", slog.String("entity", entity), slog.String("mall_id", mallID), slog.Any("error", err))
		return nil, fmt.Errorf("dashboard: list %s: %w", entity, err)
	}
	s.metrics.observe(entity, outcomeOK)
	return rows, nil
}
