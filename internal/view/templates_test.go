package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelStub struct{ mall string }

func (l labelStub) ExportLabels() (string, string) { return "تصدير CSV", "تصدير PDF" }
func (l labelStub) SelectedMall() string           { return l.mall }

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestExportLinks(t *testing.T) {
	links := exportLinks("tenants", TemplateData{Lang: "ar", Data: labelStub{mall: "mall-b"}})
	assert.Equal(t, ExportLinks{Entity: "tenants", MallID: "mall-b", Lang: "ar", CSV: "تصدير CSV", PDF: "تصدير PDF"}, links)

	plain := exportLinks("invoices", TemplateData{Lang: "en"})
	assert.Equal(t, "CSV", plain.CSV)
	assert.Equal(t, "PDF", plain.PDF)
	assert.Empty(t, plain.MallID)
}

func TestRenderNilEngine(t *testing.T) {
	var engine *Engine
	err := engine.Render(httptest.NewRecorder(), "pages/dashboard.html", TemplateData{})
	require.Error(t, err)
}
