package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const restPathPrefix = "/rest/v1"

// REST queries a PostgREST compatible HTTP endpoint.
type REST struct {
	Endpoint string
	Key      string
	Client   *http.Client
}

// NewREST builds a REST backend. A bare host URL gets the conventional
// /rest/v1 prefix appended.
func NewREST(endpoint, key string, client *http.Client) (*REST, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("backend: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend: endpoint host required")
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = restPathPrefix
	}
	u.Path = path
	u.RawQuery = ""
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &REST{Endpoint: u.String(), Key: key, Client: client}, nil
}

// Select issues q as a GET request and decodes the JSON array response.
func (r *REST) Select(ctx context.Context, q Query) ([]Row, error) {
	if r == nil {
		return nil, fmt.Errorf("backend: rest client not configured")
	}
	target, err := r.requestURL(q)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.Key != "" {
		req.Header.Set("apikey", r.Key)
		req.Header.Set("Authorization", "Bearer "+r.Key)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeRESTError(resp.StatusCode, body)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("backend: decode rows: %w", err)
	}
	return rows, nil
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (r *REST) Close() {}

func (r *REST) requestURL(q Query) (string, error) {
	table := strings.TrimSpace(q.Table)
	if table == "" {
		return "", fmt.Errorf("%w: table required", ErrInvalidQuery)
	}
	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	for _, f := range q.Filters {
		params.Add(f.Column, "eq."+toString(f.Value))
	}
	if len(q.Order) > 0 {
		keys := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			keys = append(keys, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(keys, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	target := strings.TrimRight(r.Endpoint, "/") + "/" + url.PathEscape(table)
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target, nil
}

func decodeRESTError(status int, body []byte) error {
	apiErr := &Error{Status: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}
