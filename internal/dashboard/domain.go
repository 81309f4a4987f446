package dashboard

// Mall is a shopping centre selectable on the dashboard.
type Mall struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FinanceKPI carries rent collection and overdue balance for one mall.
type FinanceKPI struct {
	MallID        string  `json:"mall_id"`
	CollectionPct float64 `json:"collection_pct"`
	OverdueSAR    float64 `json:"overdue_sar"`
}

// OpsKPI carries maintenance SLA figures for one mall.
type OpsKPI struct {
	MallID             string  `json:"mall_id"`
	SLACompliancePct   float64 `json:"sla_compliance_pct"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

// Tenant occupies a unit in a mall.
type Tenant struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Unit   string `json:"unit,omitempty"`
	MallID string `json:"mall_id"`
}

// Invoice is a rent invoice issued to a tenant.
type Invoice struct {
	ID       int64   `json:"id"`
	TenantID int64   `json:"tenant_id"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"due_date"`
	Status   string  `json:"status"`
	MallID   string  `json:"mall_id,omitempty"`
}

// WorkOrder is a maintenance request.
type WorkOrder struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
	MallID     string `json:"mall_id,omitempty"`
}
