package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/umputun/aidigest/pkg/content"
)

// maxBodySize limits response bodies read by adapters
const maxBodySize = 10 * 1024 * 1024

// StatusError is returned for non-200 responses
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Code, e.URL)
}

// HTTPClient performs GET requests with browser-like headers
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates http client with per-request timeout
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = content.DefaultUserAgent
	}
	return &HTTPClient{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Get fetches url and returns up to limit bytes of the body, limit <= 0 means maxBodySize
func (h *HTTPClient) Get(ctx context.Context, url string, headers map[string]string, limit int64) ([]byte, error) {
	return h.get(ctx, url, headers, limit, content.AddPageHeaders)
}

// GetJSON fetches url and decodes json body into v
func (h *HTTPClient) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	data, err := h.get(ctx, url, headers, 0, content.AddJSONHeaders)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (h *HTTPClient) get(ctx context.Context, url string, headers map[string]string, limit int64, browser func(*http.Request)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	browser(req)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	if limit <= 0 {
		limit = maxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}
