package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// ErrExporterDisabled is returned when no Gotenberg endpoint is configured.
var ErrExporterDisabled = errors.New("export: gotenberg endpoint required")

// PDFExporter wraps Gotenberg interactions for table exports.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

var pdfTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}"><head><meta charset="utf-8"><style>
body{font-family:Tahoma,Arial,sans-serif;margin:24px;font-size:10px}
h1{font-size:16px}
table{width:100%;border-collapse:collapse}
th,td{border:1px solid #ddd;padding:4px 6px;text-align:start}
th{background:#f5f5f5}
</style></head><body>
<h1>{{.Table.Title}}</h1>
<table><thead><tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table>
</body></html>`))

// RenderTable converts table into a landscape PDF.
func (p *PDFExporter) RenderTable(ctx context.Context, table Table, lang, dir string) ([]byte, error) {
	if p == nil {
		return nil, ErrExporterDisabled
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, ErrExporterDisabled
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	var html bytes.Buffer
	if err := pdfTemplate.Execute(&html, struct {
		Lang, Dir string
		Table     Table
	}{Lang: fallback(lang, "en"), Dir: fallback(dir, "ltr"), Table: table}); err != nil {
		return nil, fmt.Errorf("export: render html: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(html.Bytes()); err != nil {
		return nil, err
	}
	if err := writer.WriteField("landscape", "true"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export: gotenberg request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("export: gotenberg response %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return io.ReadAll(resp.Body)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
