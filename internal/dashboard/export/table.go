// Package export renders dashboard tables as CSV downloads and Gotenberg PDFs.
package export

import (
	"strconv"

	"github.com/mallops/mallops/internal/dashboard"
)

// Table is a titled grid ready for export.
type Table struct {
	Title    string
	Filename string
	Header   []string
	Rows     [][]string
}

// TenantsTable lays out tenants as ID, Name, Unit.
func TenantsTable(tenants []dashboard.Tenant) Table {
	rows := make([][]string, 0, len(tenants))
	for _, t := range tenants {
		rows = append(rows, []string{formatInt(t.ID), t.Name, t.Unit})
	}
	return Table{
		Title:    "Tenants",
		Filename: "tenants",
		Header:   []string{"ID", "Name", "Unit"},
		Rows:     rows,
	}
}

// InvoicesTable lays out invoices as ID, Tenant, Amount, Due, Status.
func InvoicesTable(invoices []dashboard.Invoice) Table {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{formatInt(inv.ID), formatInt(inv.TenantID), formatFloat(inv.Amount), inv.DueDate, inv.Status})
	}
	return Table{
		Title:    "Invoices",
		Filename: "invoices",
		Header:   []string{"ID", "Tenant", "Amount", "Due", "Status"},
		Rows:     rows,
	}
}

// WorkOrdersTable lays out work orders as ID, Title, Status, Created, Resolved.
func WorkOrdersTable(orders []dashboard.WorkOrder) Table {
	rows := make([][]string, 0, len(orders))
	for _, wo := range orders {
		rows = append(rows, []string{formatInt(wo.ID), wo.Title, wo.Status, wo.CreatedAt, wo.ResolvedAt})
	}
	return Table{
		Title:    "Work Orders",
		Filename: "work_orders",
		Header:   []string{"ID", "Title", "Status", "Created", "Resolved"},
		Rows:     rows,
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
