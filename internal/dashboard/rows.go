package dashboard

import (
	"strings"

	"github.com/mallops/mallops/internal/backend"
)

// Backend relations and the columns read from them.
const (
	tableMalls      = "malls"
	tableFinance    = "v_kpi_finance"
	tableOps        = "v_kpi_ops"
	tableTenants    = "tenants"
	tableInvoices   = "invoices"
	tableWorkOrders = "work_orders"
)

var (
	mallColumns      = []string{"id", "name"}
	financeColumns   = []string{"mall_id", "rent_collection_pct", "overdue_sar"}
	financeFallback  = []string{"rent_collection_pct", "overdue_sar"}
	opsColumns       = []string{"mall_id", "sla_compliance_pct", "avg_resolution_hours"}
	opsFallback      = []string{"sla_compliance_pct", "avg_resolution_hours"}
	tenantColumns    = []string{"id", "name", "unit", "mall_id"}
	invoiceColumns   = []string{"id", "tenant_id", "mall_id", "amount", "due_date", "status"}
	workOrderColumns = []string{"id", "title", "status", "created_at", "resolved_at", "mall_id"}
)

// rawFinance is a finance view row as the backend returned it. Deployments
// expose either rent_collection_pct or collection_pct.
type rawFinance struct {
	MallID            *string
	RentCollectionPct *float64
	CollectionPct     *float64
	OverdueSAR        *float64
}

type rawOps struct {
	MallID             *string
	SLACompliancePct   *float64
	AvgResolutionHours *float64
}

type rawMall struct {
	ID   *string
	Name *string
}

type rawTenant struct {
	ID     *int64
	Name   *string
	Unit   *string
	MallID *string
}

type rawInvoice struct {
	ID       *int64
	TenantID *int64
	MallID   *string
	Amount   *float64
	DueDate  *string
	Status   *string
}

type rawWorkOrder struct {
	ID         *int64
	Title      *string
	Status     *string
	CreatedAt  *string
	ResolvedAt *string
	MallID     *string
}

func decodeFinance(row backend.Row) rawFinance {
	return rawFinance{
		MallID:            row.String("mall_id"),
		RentCollectionPct: row.Float("rent_collection_pct"),
		CollectionPct:     row.Float("collection_pct"),
		OverdueSAR:        row.Float("overdue_sar"),
	}
}

func decodeOps(row backend.Row) rawOps {
	return rawOps{
		MallID:             row.String("mall_id"),
		SLACompliancePct:   row.Float("sla_compliance_pct"),
		AvgResolutionHours: row.Float("avg_resolution_hours"),
	}
}

func decodeMall(row backend.Row) rawMall {
	return rawMall{ID: row.String("id"), Name: row.String("name")}
}

func decodeTenant(row backend.Row) rawTenant {
	return rawTenant{
		ID:     row.Int("id"),
		Name:   row.String("name"),
		Unit:   row.String("unit"),
		MallID: row.String("mall_id"),
	}
}

func decodeInvoice(row backend.Row) rawInvoice {
	return rawInvoice{
		ID:       row.Int("id"),
		TenantID: row.Int("tenant_id"),
		MallID:   row.String("mall_id"),
		Amount:   row.Float("amount"),
		DueDate:  row.String("due_date"),
		Status:   row.String("status"),
	}
}

func decodeWorkOrder(row backend.Row) rawWorkOrder {
	return rawWorkOrder{
		ID:         row.Int("id"),
		Title:      row.String("title"),
		Status:     row.String("status"),
		CreatedAt:  row.String("created_at"),
		ResolvedAt: row.String("resolved_at"),
		MallID:     row.String("mall_id"),
	}
}

// normalizeFinance maps a raw row onto the stable schema. The requested mall
// id always wins over whatever the row carried.
func normalizeFinance(raw rawFinance, mallID string) FinanceKPI {
	pct := raw.RentCollectionPct
	if pct == nil {
		pct = raw.CollectionPct
	}
	return FinanceKPI{
		MallID:        mallID,
		CollectionPct: floatOr(pct, 0),
		OverdueSAR:    floatOr(raw.OverdueSAR, 0),
	}
}

func normalizeOps(raw rawOps, mallID string) OpsKPI {
	return OpsKPI{
		MallID:             mallID,
		SLACompliancePct:   floatOr(raw.SLACompliancePct, 0),
		AvgResolutionHours: floatOr(raw.AvgResolutionHours, 0),
	}
}

func normalizeMall(raw rawMall) Mall {
	return Mall{ID: stringOr(raw.ID), Name: stringOr(raw.Name)}
}

func normalizeTenant(raw rawTenant) Tenant {
	return Tenant{
		ID:     intOr(raw.ID),
		Name:   stringOr(raw.Name),
		Unit:   stringOr(raw.Unit),
		MallID: stringOr(raw.MallID),
	}
}

func normalizeInvoice(raw rawInvoice) Invoice {
	return Invoice{
		ID:       intOr(raw.ID),
		TenantID: intOr(raw.TenantID),
		Amount:   floatOr(raw.Amount, 0),
		DueDate:  stringOr(raw.DueDate),
		Status:   stringOr(raw.Status),
		MallID:   stringOr(raw.MallID),
	}
}

func normalizeWorkOrder(raw rawWorkOrder) WorkOrder {
	return WorkOrder{
		ID:         intOr(raw.ID),
		Title:      stringOr(raw.Title),
		Status:     stringOr(raw.Status),
		CreatedAt:  stringOr(raw.CreatedAt),
		ResolvedAt: stringOr(raw.ResolvedAt),
		MallID:     stringOr(raw.MallID),
	}
}

func mapRows[R, T any](rows []backend.Row, decode func(backend.Row) R, normalize func(R) T) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize(decode(row)))
	}
	return out
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func stringOr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
