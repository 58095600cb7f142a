// Package scoring is the client for the remote screening service.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/harrison/aqscreen/internal/config"
)

// ErrTransport marks a call that did not complete with a decodable response:
// network errors, timeouts, cancellation and non-JSON bodies.
var ErrTransport = errors.New("scoring service unreachable")

// RequestIDHeader carries the submission id so service logs can be matched
// with local history.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context whose calls send id in RequestIDHeader.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Client talks to the scoring service over HTTP.
type Client struct {
	config     config.ServiceConfig
	httpClient *http.Client
}

// NewClient creates a client for the configured service.
// The HTTP client timeout is set from the config.
func NewClient(cfg config.ServiceConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.config.BaseURL, "/")
}

// Predict posts the collected answers and decodes the response.
//
// The body is decoded whatever the HTTP status, since the service reports
// failures as {"success": false, "error": ...} with a 4xx/5xx status. A
// success=false payload is returned as-is, not as an error; a null body is
// ErrTransport.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (*Prediction, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	var p *Prediction
	if err := c.do(ctx, http.MethodPost, "/api/predict", bytes.NewReader(body), &p, false); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: empty /api/predict response", ErrTransport)
	}
	return p, nil
}

// Questions fetches the screening items the service was trained on.
func (c *Client) Questions(ctx context.Context) ([]Question, error) {
	var qs []Question
	if err := c.do(ctx, http.MethodGet, "/api/questions", nil, &qs, true); err != nil {
		return nil, err
	}
	return qs, nil
}

// Health fetches the service health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h, true); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any, requireOK bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if requireOK && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s: status %d", ErrTransport, method, path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrTransport, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response (status %d): %v", ErrTransport, path, resp.StatusCode, err)
	}
	return nil
}
