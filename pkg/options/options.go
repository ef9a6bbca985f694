// Package options supplies select-field options from outside the schema,
// typically a category list fetched after the page loads.
package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Source yields the option labels for a select field.
type Source interface {
	Options(ctx context.Context) ([]string, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) ([]string, error)

// Options delegates to the underlying function.
func (fn SourceFunc) Options(ctx context.Context) ([]string, error) {
	return fn(ctx)
}

// Static returns a Source with a fixed list.
func Static(opts ...string) Source {
	list := append([]string(nil), opts...)
	return SourceFunc(func(context.Context) ([]string, error) {
		return append([]string(nil), list...), nil
	})
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithResultsPath selects the list inside the payload using a dot separated
// path ("data.items"). The payload root is used when empty.
func WithResultsPath(path string) HTTPOption {
	return func(s *HTTPSource) {
		s.results = strings.TrimSpace(path)
	}
}

// WithLabelField names the property carrying the label when list items are
// objects. Defaults to "name".
func WithLabelField(field string) HTTPOption {
	return func(s *HTTPSource) {
		if strings.TrimSpace(field) != "" {
			s.labelField = strings.TrimSpace(field)
		}
	}
}

// WithQuery adds a query parameter to the request.
func WithQuery(key, value string) HTTPOption {
	return func(s *HTTPSource) {
		if s.params == nil {
			s.params = make(map[string]string)
		}
		s.params[key] = value
	}
}

// HTTPSource fetches options from a JSON endpoint.
type HTTPSource struct {
	endpoint   string
	client     *http.Client
	results    string
	labelField string
	params     map[string]string
}

// NewHTTPSource builds a source for endpoint.
func NewHTTPSource(endpoint string, opts ...HTTPOption) (*HTTPSource, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("options: endpoint is required")
	}
	s := &HTTPSource{
		endpoint:   endpoint,
		client:     http.DefaultClient,
		labelField: "name",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Options performs a GET request and extracts the labels. Items without a
// label are skipped; duplicates keep their first position.
func (s *HTTPSource) Options(ctx context.Context) ([]string, error) {
	reqURL, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("options: parse url: %w", err)
	}
	if len(s.params) > 0 {
		q := reqURL.Query()
		for k, v := range s.params {
			q.Set(k, v)
		}
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("options: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("options: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("options: unexpected status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("options: decode: %w", err)
	}

	items := extractResults(payload, s.results)
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		label := labelOf(item, s.labelField)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}

func extractResults(payload any, path string) []any {
	cur := payload
	if path != "" {
		for _, segment := range strings.Split(path, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = node[segment]
		}
	}
	items, _ := cur.([]any)
	return items
}

func labelOf(item any, field string) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		cur := any(v)
		for _, segment := range strings.Split(field, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return ""
			}
			cur = node[segment]
		}
		if cur == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(cur))
	default:
		return ""
	}
}
