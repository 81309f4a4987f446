package dashboardhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/mallops/mallops/internal/platform/httpx"
)

// Export formats served under /export.
const (
	formatCSV = "csv"
	formatPDF = "pdf"
)

// MountRoutes registers the dashboard page, the JSON API and the exports.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), "export rate limit exceeded")
		}),
	)

	r.Get("/", h.handleDashboard)
	r.Post("/source", h.handleSourceForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/source", h.handleGetSource)
		r.Put("/source", h.handlePutSource)
		r.Get("/malls", h.handleMalls)
		r.Route("/malls/{mallID}", func(r chi.Router) {
			r.Get("/kpi", h.handleKPI)
			r.Get("/tenants", h.handleTenants)
			r.Get("/invoices", h.handleInvoices)
			r.Get("/work-orders", h.handleWorkOrders)
		})
	})

	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		for _, entity := range exportEntities {
			gr.Get("/export/"+entity+"."+formatCSV, h.exportHandler(entity, formatCSV))
			gr.Get("/export/"+entity+"."+formatPDF, h.exportHandler(entity, formatPDF))
		}
	})
}
