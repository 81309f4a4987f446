package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mallops/mallops/internal/dashboard/export"
	"github.com/mallops/mallops/internal/i18n"
	"github.com/mallops/mallops/internal/platform/httpx"
)

// Export path segments, matching the dashboard entities.
const (
	exportTenants    = "tenants"
	exportInvoices   = "invoices"
	exportWorkOrders = "work-orders"
)

var exportEntities = []string{exportTenants, exportInvoices, exportWorkOrders}

func (h *Handler) exportHandler(entity, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		requested := strings.TrimSpace(r.URL.Query().Get("mall_id"))
		mallID := SelectMall(h.service.GetMalls(ctx), requested, h.defaultMallID)
		table, err := h.exportTable(ctx, entity, mallID)
		if err != nil {
			h.logError("export "+entity, err)
			httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrBadGateway, entity))
			return
		}

		switch format {
		case formatCSV:
			h.writeCSV(w, table)
		case formatPDF:
			tr := i18n.New(i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language")))
			h.writePDF(ctx, w, table, tr)
		}
	}
}

func (h *Handler) exportTable(ctx context.Context, entity, mallID string) (export.Table, error) {
	switch entity {
	case exportTenants:
		items, err := h.service.GetTenants(ctx, mallID)
		return export.TenantsTable(items), err
	case exportInvoices:
		items, err := h.service.GetInvoices(ctx, mallID)
		return export.InvoicesTable(items), err
	case exportWorkOrders:
		items, err := h.service.GetWorkOrders(ctx, mallID)
		return export.WorkOrdersTable(items), err
	default:
		return export.Table{}, fmt.Errorf("unknown export entity %q", entity)
	}
}

func (h *Handler) writeCSV(w http.ResponseWriter, table export.Table) {
	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.csvPool.Put(buf)

	if err := export.WriteCSV(buf, table); err != nil {
		h.handleServerError(w, "write csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) writePDF(ctx context.Context, w http.ResponseWriter, table export.Table, tr *i18n.Translator) {
	if h.pdf == nil {
		httpx.RespondError(w, fmt.Errorf("%w: pdf export disabled", httpx.ErrUnavailable))
		return
	}
	pdf, err := h.pdf.RenderTable(ctx, table, tr.Lang(), tr.Dir())
	if err != nil {
		if errors.Is(err, export.ErrExporterDisabled) {
			httpx.RespondError(w, fmt.Errorf("%w: pdf export disabled", httpx.ErrUnavailable))
			return
		}
		h.logError("render pdf", err)
		httpx.RespondError(w, fmt.Errorf("%w: pdf renderer", httpx.ErrBadGateway))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", table.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
