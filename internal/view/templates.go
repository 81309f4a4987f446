// Package view renders the embedded HTML templates.
package view

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/mallops/mallops/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	Lang        string
	Dir         string
	CurrentPath string
	Data        any
}

// ExportLinks feeds the export buttons partial.
type ExportLinks struct {
	Entity string
	MallID string
	Lang   string
	CSV    string
	PDF    string
}

// LabelSource exposes translated labels to the export partial.
type LabelSource interface {
	ExportLabels() (csv, pdf string)
	SelectedMall() string
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"exportLinks": exportLinks,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

func exportLinks(entity string, data TemplateData) ExportLinks {
	links := ExportLinks{Entity: entity, Lang: data.Lang, CSV: "CSV", PDF: "PDF"}
	if src, ok := data.Data.(LabelSource); ok {
		links.CSV, links.PDF = src.ExportLabels()
		links.MallID = src.SelectedMall()
	}
	return links
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
