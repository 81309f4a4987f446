package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallops/mallops/internal/dashboard"
)

func TestWriteCSVTenants(t *testing.T) {
	table := TenantsTable(dashboard.DefaultMockDataset().Tenants)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, table))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Tenants"},
		{"ID", "Name", "Unit"},
		{"1", "Tenant One", "A-101"},
		{"2", "Tenant Two", "B-203"},
	}, records)
}

func TestInvoicesAndWorkOrdersTables(t *testing.T) {
	data := dashboard.DefaultMockDataset()

	inv := InvoicesTable(data.Invoices)
	assert.Equal(t, []string{"ID", "Tenant", "Amount", "Due", "Status"}, inv.Header)
	assert.Equal(t, []string{"1001", "1", "50000", "2025-10-31", "Due"}, inv.Rows[0])

	wo := WorkOrdersTable(data.WorkOrders)
	assert.Equal(t, "work_orders", wo.Filename)
	assert.Equal(t, []string{"2002", "Lighting Issue", "Open", "2025-10-05", ""}, wo.Rows[1])
}

func TestWriteCSVQuotesSpecialCharacters(t *testing.T) {
	table := TenantsTable([]dashboard.Tenant{{ID: 5, Name: `Cafe "Noor", Ltd`}})
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, table))
	assert.Contains(t, buf.String(), `"Cafe ""Noor"", Ltd"`)
}

func TestPDFExporterRender(t *testing.T) {
	var html string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(64<<10))
		assert.Equal(t, "true", r.FormValue("landscape"))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)
		html = string(data)
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL + "/"}
	table := TenantsTable([]dashboard.Tenant{{ID: 1, Name: "<script>x</script>"}})
	data, err := exporter.RenderTable(context.Background(), table, "ar", "rtl")
	require.NoError(t, err)
	assert.Equal(t, "PDF", string(data))
	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, "<th>Unit</th>")
	assert.NotContains(t, html, "<script>")
}

func TestPDFExporterErrors(t *testing.T) {
	var nilExporter *PDFExporter
	_, err := nilExporter.RenderTable(context.Background(), Table{}, "", "")
	assert.ErrorIs(t, err, ErrExporterDisabled)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	_, err = (&PDFExporter{Endpoint: srv.URL}).RenderTable(context.Background(), Table{Title: "x"}, "en", "ltr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
