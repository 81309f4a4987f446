// Package dashboardhttp serves the MallOps dashboard over HTTP.
package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mallops/mallops/internal/dashboard"
	"github.com/mallops/mallops/internal/dashboard/export"
	"github.com/mallops/mallops/internal/i18n"
	"github.com/mallops/mallops/internal/kpi"
	"github.com/mallops/mallops/internal/platform/httpx"
	"github.com/mallops/mallops/internal/view"
)

const defaultRequestTimeout = 10 * time.Second

var errBackendNotConfigured = errors.New("dashboard: backend not configured")

// DashboardService is the query layer contract used by the handler.
type DashboardService interface {
	GetMalls(ctx context.Context) []dashboard.Mall
	GetFinanceKPI(ctx context.Context, mallID string) *dashboard.FinanceKPI
	GetOpsKPI(ctx context.Context, mallID string) *dashboard.OpsKPI
	GetTenants(ctx context.Context, mallID string) ([]dashboard.Tenant, error)
	GetInvoices(ctx context.Context, mallID string) ([]dashboard.Invoice, error)
	GetWorkOrders(ctx context.Context, mallID string) ([]dashboard.WorkOrder, error)
	ServingMock() bool
}

// SourceToggle reads and flips the mock/backend switch.
type SourceToggle interface {
	MockActive() bool
	SetMockActive(bool)
	BackendConfigured() bool
}

// PDFService renders export tables to PDF bytes.
type PDFService interface {
	RenderTable(ctx context.Context, table export.Table, lang, dir string) ([]byte, error)
}

// Handler coordinates HTTP requests for the dashboard.
type Handler struct {
	logger        *slog.Logger
	service       DashboardService
	source        SourceToggle
	templates     *view.Engine
	pdf           PDFService
	validate      *validator.Validate
	defaultMallID string
	timeout       time.Duration
	loads         singleflight.Group
	csvPool       sync.Pool
}

// Config carries the optional handler settings.
type Config struct {
	DefaultMallID  string
	RequestTimeout time.Duration
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService, source SourceToggle, templates *view.Engine, pdf PDFService, cfg Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	h := &Handler{
		logger:        logger,
		service:       service,
		source:        source,
		templates:     templates,
		pdf:           pdf,
		validate:      validator.New(),
		defaultMallID: strings.TrimSpace(cfg.DefaultMallID),
		timeout:       timeout,
	}
	h.csvPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// SourceState is the toggle as reported to clients.
type SourceState struct {
	Mock              bool   `json:"mock"`
	BackendConfigured bool   `json:"backend_configured"`
	Serving           string `json:"serving"`
}

func (h *Handler) sourceState() SourceState {
	state := SourceState{Mock: h.source.MockActive(), BackendConfigured: h.source.BackendConfigured()}
	state.Serving = "backend"
	if h.service.ServingMock() {
		state.Serving = "mock"
	}
	return state
}

type sourceRequest struct {
	Mock *bool `json:"mock" validate:"required"`
}

type sourceForm struct {
	Source string `validate:"required,oneof=mock backend"`
	MallID string `validate:"max=128"`
	Lang   string `validate:"omitempty,oneof=en ar"`
}

func (h *Handler) handleGetSource(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.sourceState())
}

func (h *Handler) handlePutSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, validationMessage(err)))
		return
	}
	if err := h.setMock(*req.Mock); err != nil {
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, h.sourceState())
}

func (h *Handler) handleSourceForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	form := sourceForm{
		Source: strings.TrimSpace(r.PostFormValue("source")),
		MallID: strings.TrimSpace(r.PostFormValue("mall_id")),
		Lang:   strings.TrimSpace(r.PostFormValue("lang")),
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, validationMessage(err)))
		return
	}
	if err := h.setMock(form.Source == "mock"); err != nil {
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
		return
	}
	query := url.Values{}
	if form.MallID != "" {
		query.Set("mall_id", form.MallID)
	}
	if form.Lang != "" {
		query.Set("lang", form.Lang)
	}
	target := "/"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) setMock(mock bool) error {
	if !mock && !h.source.BackendConfigured() {
		return errBackendNotConfigured
	}
	h.source.SetMockActive(mock)
	h.logger.Info("data source switched", slog.Bool("mock", mock))
	return nil
}

func (h *Handler) handleMalls(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	httpx.JSON(w, http.StatusOK, h.service.GetMalls(ctx))
}

// KPIResponse is the payload of the per-mall KPI endpoint.
type KPIResponse struct {
	MallID  string                `json:"mall_id"`
	Finance *dashboard.FinanceKPI `json:"finance"`
	Ops     *dashboard.OpsKPI     `json:"ops"`
	Tiers   map[kpi.Type]kpi.Tier `json:"tiers"`
}

func (h *Handler) handleKPI(w http.ResponseWriter, r *http.Request) {
	mallID := chi.URLParam(r, "mallID")
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := KPIResponse{MallID: mallID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp.Finance = h.service.GetFinanceKPI(gctx, mallID)
		return nil
	})
	g.Go(func() error {
		resp.Ops = h.service.GetOpsKPI(gctx, mallID)
		return nil
	})
	_ = g.Wait()
	resp.Tiers = tiers(resp.Finance, resp.Ops)
	httpx.JSON(w, http.StatusOK, resp)
}

func tiers(fin *dashboard.FinanceKPI, ops *dashboard.OpsKPI) map[kpi.Type]kpi.Tier {
	out := make(map[kpi.Type]kpi.Tier, len(kpi.Types))
	for _, r := range dashboard.Readings(fin, ops) {
		out[r.Type] = r.Tier
	}
	return out
}

func (h *Handler) handleTenants(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, h, dashboard.EntityTenants, h.service.GetTenants)
}

func (h *Handler) handleInvoices(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, h, dashboard.EntityInvoices, h.service.GetInvoices)
}

func (h *Handler) handleWorkOrders(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, h, dashboard.EntityWorkOrders, h.service.GetWorkOrders)
}

func respondList[T any](w http.ResponseWriter, r *http.Request, h *Handler, entity string, fetch func(context.Context, string) ([]T, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	items, err := fetch(ctx, chi.URLParam(r, "mallID"))
	if err != nil {
		h.logError("list "+entity, err)
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrBadGateway, entity))
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

// DashboardViewModel feeds the dashboard page template.
type DashboardViewModel struct {
	Labels     map[string]string
	Translator *i18n.Translator
	Source     SourceState
	Malls      []dashboard.Mall
	MallID     string
	Cards      []dashboard.KPICard
	Chart      template.HTML
	Tenants    []dashboard.Tenant
	Invoices   []dashboard.Invoice
	WorkOrders []dashboard.WorkOrder
	Error      string
}

// ExportLabels returns the translated export button captions.
func (vm DashboardViewModel) ExportLabels() (string, string) {
	return vm.Labels[i18n.KeyExportCSV], vm.Labels[i18n.KeyExportPDF]
}

// SelectedMall returns the mall the page is showing.
func (vm DashboardViewModel) SelectedMall() string {
	return vm.MallID
}

type dashboardData struct {
	malls      []dashboard.Mall
	mallID     string
	finance    *dashboard.FinanceKPI
	ops        *dashboard.OpsKPI
	tenants    []dashboard.Tenant
	invoices   []dashboard.Invoice
	workOrders []dashboard.WorkOrder
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tr := i18n.New(i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language")))
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	vm := DashboardViewModel{
		Labels:     tr.Labels(),
		Translator: tr,
		Source:     h.sourceState(),
	}
	data, err := h.loadDashboard(ctx, strings.TrimSpace(r.URL.Query().Get("mall_id")))
	if err != nil {
		h.logError("load dashboard", err)
		vm.Error = httpx.ErrBadGateway.Error()
	}
	vm.Malls = data.malls
	vm.MallID = data.mallID
	vm.Tenants = data.tenants
	vm.Invoices = data.invoices
	vm.WorkOrders = data.workOrders
	vm.Cards = dashboard.BuildKPICards(data.finance, data.ops, tr)
	chart, err := dashboard.KPIChart(data.finance, data.ops, tr)
	if err != nil {
		h.handleServerError(w, "render chart", err)
		return
	}
	vm.Chart = chart

	viewData := view.TemplateData{
		Title:       tr.T(i18n.KeyTitle),
		Lang:        tr.Lang(),
		Dir:         tr.Dir(),
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

// loadDashboard resolves the mall and fetches its five datasets concurrently.
// Identical loads in flight at the same time share one result. The shared
// fetch is detached from the caller that started it and bounded by the
// handler timeout; each caller still gives up on its own context.
func (h *Handler) loadDashboard(ctx context.Context, requested string) (dashboardData, error) {
	key := fmt.Sprintf("%t|%s", h.source.MockActive(), requested)
	shared := context.WithoutCancel(ctx)
	ch := h.loads.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(shared, h.timeout)
		defer cancel()
		return h.fetchDashboard(fetchCtx, requested)
	})
	select {
	case <-ctx.Done():
		return dashboardData{}, ctx.Err()
	case res := <-ch:
		data, _ := res.Val.(dashboardData)
		return data, res.Err
	}
}

func (h *Handler) fetchDashboard(ctx context.Context, requested string) (dashboardData, error) {
	var data dashboardData
	data.malls = h.service.GetMalls(ctx)
	data.mallID = SelectMall(data.malls, requested, h.defaultMallID)
	if data.mallID == "" {
		return data, nil
	}

	var tenants []dashboard.Tenant
	var invoices []dashboard.Invoice
	var orders []dashboard.WorkOrder
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.finance = h.service.GetFinanceKPI(gctx, data.mallID)
		return nil
	})
	g.Go(func() error {
		data.ops = h.service.GetOpsKPI(gctx, data.mallID)
		return nil
	})
	g.Go(func() error {
		var err error
		tenants, err = h.service.GetTenants(gctx, data.mallID)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = h.service.GetInvoices(gctx, data.mallID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = h.service.GetWorkOrders(gctx, data.mallID)
		return err
	})
	if err := g.Wait(); err != nil {
		return data, err
	}
	data.tenants, data.invoices, data.workOrders = tenants, invoices, orders
	return data, nil
}

// SelectMall keeps the requested mall when it is listed, then tries the
// configured default, then the first mall. It returns "" for an empty list.
func SelectMall(malls []dashboard.Mall, requested, fallbackID string) string {
	has := func(id string) bool {
		if id == "" {
			return false
		}
		for _, m := range malls {
			if m.ID == id {
				return true
			}
		}
		return false
	}
	switch {
	case has(requested):
		return requested
	case has(fallbackID):
		return fallbackID
	case len(malls) > 0:
		return malls[0].ID
	default:
		return ""
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	httpx.RespondError(w, err)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// HandleDashboardForTest exposes the dashboard page handler for tests.
func (h *Handler) HandleDashboardForTest(w http.ResponseWriter, r *http.Request) {
	h.handleDashboard(w, r)
}

// HandlePutSourceForTest exposes the source toggle handler for tests.
func (h *Handler) HandlePutSourceForTest(w http.ResponseWriter, r *http.Request) {
	h.handlePutSource(w, r)
}
