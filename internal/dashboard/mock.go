package dashboard

import "github.com/google/uuid"

// Stable, obviously fake mall identifiers used by the mock dataset.
var (
	MockMallA = uuid.MustParse("00000000-0000-0000-0000-000000000001").String()
	MockMallB = uuid.MustParse("00000000-0000-0000-0000-000000000002").String()
)

// MockDataset holds the fixtures served while mock mode is active.
type MockDataset struct {
	Malls      []Mall
	Finance    []FinanceKPI
	Ops        []OpsKPI
	Tenants    []Tenant
	Invoices   []Invoice
	WorkOrders []WorkOrder
}

// DefaultMockDataset returns a fresh copy of the demo fixtures. Every tenant,
// invoice and work order belongs to Mall A.
func DefaultMockDataset() MockDataset {
	return MockDataset{
		Malls: []Mall{
			{ID: MockMallA, Name: "Mall A"},
			{ID: MockMallB, Name: "Mall B"},
		},
		Finance: []FinanceKPI{
			{MallID: MockMallA, CollectionPct: 92.5, OverdueSAR: 120000},
			{MallID: MockMallB, CollectionPct: 88.1, OverdueSAR: 175000},
		},
		Ops: []OpsKPI{
			{MallID: MockMallA, SLACompliancePct: 96.3, AvgResolutionHours: 12.4},
			{MallID: MockMallB, SLACompliancePct: 91.8, AvgResolutionHours: 18.7},
		},
		Tenants: []Tenant{
			{ID: 1, Name: "Tenant One", Unit: "A-101", MallID: MockMallA},
			{ID: 2, Name: "Tenant Two", Unit: "B-203", MallID: MockMallA},
		},
		Invoices: []Invoice{
			{ID: 1001, TenantID: 1, Amount: 50000, DueDate: "2025-10-31", Status: "Due", MallID: MockMallA},
			{ID: 1002, TenantID: 2, Amount: 75000, DueDate: "2025-10-15", Status: "Overdue", MallID: MockMallA},
		},
		WorkOrders: []WorkOrder{
			{ID: 2001, Title: "AC Maintenance", Status: "Closed", CreatedAt: "2025-09-20", ResolvedAt: "2025-09-22", MallID: MockMallA},
			{ID: 2002, Title: "Lighting Issue", Status: "Open", CreatedAt: "2025-10-05", MallID: MockMallA},
		},
	}
}

func (d MockDataset) finance(mallID string) *FinanceKPI {
	for _, f := range d.Finance {
		if f.MallID == mallID {
			out := f
			return &out
		}
	}
	return nil
}

func (d MockDataset) ops(mallID string) *OpsKPI {
	for _, o := range d.Ops {
		if o.MallID == mallID {
			out := o
			return &out
		}
	}
	return nil
}
