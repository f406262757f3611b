package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

// TokenSource yields the current bearer token, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// Client handles low-level HTTP and authentication for every domain API
// module. A 401 on any request fires OnUnauthorized exactly as a global
// side effect; concurrent in-flight requests may each fire it, so the hook
// must be idempotent.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	Tokens         TokenSource
	OnUnauthorized func()
	Logger         *slog.Logger
}

// New creates a client with base URL and token source.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Tokens:     tokens,
		Logger:     logger,
	}
}

// Resource returns a per-domain view of the client. label feeds the request
// counters; fallback is the generic message used when the backend provides
// none.
func (c *Client) Resource(base, label, fallback string) *Resource {
	return &Resource{client: c, base: base, label: label, fallback: fallback}
}

type Resource struct {
	client   *Client
	base     string
	label    string
	fallback string
}

func (r *Resource) Get(ctx context.Context, path string, query url.Values, out any) error {
	return r.client.do(ctx, http.MethodGet, r.base+path, nil, query, out, r.label, r.fallback)
}

func (r *Resource) Post(ctx context.Context, path string, body, out any) error {
	return r.client.do(ctx, http.MethodPost, r.base+path, body, nil, out, r.label, r.fallback)
}

func (r *Resource) Put(ctx context.Context, path string, body, out any) error {
	return r.client.do(ctx, http.MethodPut, r.base+path, body, nil, out, r.label, r.fallback)
}

func (r *Resource) Patch(ctx context.Context, path string, body, out any) error {
	return r.client.do(ctx, http.MethodPatch, r.base+path, body, nil, out, r.label, r.fallback)
}

func (r *Resource) Delete(ctx context.Context, path string, out any) error {
	return r.client.do(ctx, http.MethodDelete, r.base+path, nil, nil, out, r.label, r.fallback)
}

// GetRaw fetches without decoding; used by the export flow, where the body
// may be CSV text rather than JSON. Returns body and Content-Type.
func (r *Resource) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	req, err := r.client.newRequest(ctx, http.MethodGet, r.base+path, nil, query)
	if err != nil {
		return nil, "", &APIError{Message: r.fallback}
	}
	resp, err := r.client.HTTPClient.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(r.label, "error").Inc()
		r.client.Logger.Debug("request failed", "method", "GET", "path", r.base+path, "err", err)
		return nil, "", &APIError{Message: r.fallback}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		r.client.unauthorized()
		metrics.APIRequests.WithLabelValues(r.label, "unauthorized").Inc()
		return nil, "", &APIError{Status: resp.StatusCode, Message: backendMessage(body, r.fallback)}
	}
	if resp.StatusCode >= 300 {
		metrics.APIRequests.WithLabelValues(r.label, "error").Inc()
		return nil, "", &APIError{Status: resp.StatusCode, Message: backendMessage(body, r.fallback)}
	}
	metrics.APIRequests.WithLabelValues(r.label, "ok").Inc()
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, query url.Values) (*http.Request, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.Tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out any, label, fallback string) error {
	req, err := c.newRequest(ctx, method, path, body, query)
	if err != nil {
		return &APIError{Message: fallback}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(label, "error").Inc()
		c.Logger.Debug("request failed", "method", method, "path", path, "err", err)
		return &APIError{Message: fallback}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequests.WithLabelValues(label, "error").Inc()
		return &APIError{Message: fallback}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
		metrics.APIRequests.WithLabelValues(label, "unauthorized").Inc()
		return &APIError{Status: resp.StatusCode, Message: backendMessage(payload, fallback)}
	}
	if resp.StatusCode >= 300 {
		metrics.APIRequests.WithLabelValues(label, "error").Inc()
		return &APIError{Status: resp.StatusCode, Message: backendMessage(payload, fallback)}
	}

	metrics.APIRequests.WithLabelValues(label, "ok").Inc()
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.Logger.Debug("decode failed", "method", method, "path", path, "err", err)
		return &APIError{Message: fallback}
	}
	return nil
}

func (c *Client) unauthorized() {
	if c.OnUnauthorized != nil {
		metrics.SessionTeardowns.Inc()
		c.OnUnauthorized()
	}
}

// backendMessage extracts the server's message field when present. Both the
// {"message": ...} and {"error": ...} shapes occur across resources.
func backendMessage(payload []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
