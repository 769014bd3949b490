// Package apiclient calls the catalog REST API on behalf of the signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/auth"
	"github.com/menudash/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

var (
	// ErrUnavailable wraps transport failures
	ErrUnavailable = errors.New("catalog api unavailable")
	// ErrUnexpectedResponse is returned when the body is not a response envelope
	ErrUnexpectedResponse = errors.New("unexpected catalog api response")
)

// envelope mirrors dto.Response with a deferred data payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a form gateway backed by the /api/v1 catalog routes
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the traced default client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for cfg.APIBaseURL, e.g. "http://localhost:8080/api/v1"
func New(cfg config.FormConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.APIBaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid form api base url %q", cfg.APIBaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetComplementByID calls GET /complements/:id
func (c *Client) GetComplementByID(ctx context.Context, id uuid.UUID) (*catalogapp.ComplementResponse, error) {
	var out struct {
		Complements catalogapp.ComplementResponse `json:"complements"`
	}
	if err := c.do(ctx, http.MethodGet, "/complements/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Complements, nil
}

// CreateComplement calls POST /complements
func (c *Client) CreateComplement(ctx context.Context, req catalogapp.CreateComplementRequest) (*catalogapp.ComplementResponse, error) {
	var out catalogapp.ComplementResponse
	if err := c.do(ctx, http.MethodPost, "/complements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditComplement calls PUT /complements/:id
func (c *Client) EditComplement(ctx context.Context, id uuid.UUID, req catalogapp.EditComplementRequest) (*catalogapp.ComplementResponse, error) {
	var out catalogapp.ComplementResponse
	if err := c.do(ctx, http.MethodPut, "/complements/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditProduct calls PUT /products/:id
func (c *Client) EditProduct(ctx context.Context, id uuid.UUID, req catalogapp.EditProductRequest) (*catalogapp.ProductResponse, error) {
	var out catalogapp.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateItems calls POST /items
func (c *Client) CreateItems(ctx context.Context, req catalogapp.CreateItemsRequest) ([]catalogapp.ComplementItemResponse, error) {
	var out []catalogapp.ComplementItemResponse
	if err := c.do(ctx, http.MethodPost, "/items", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EditItem calls PUT /items/:id
func (c *Client) EditItem(ctx context.Context, id uuid.UUID, req catalogapp.EditItemRequest) (*catalogapp.ComplementItemResponse, error) {
	var out catalogapp.ComplementItemResponse
	if err := c.do(ctx, http.MethodPut, "/items/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON and decodes the envelope's data into out. Error
// envelopes come back as *shared.DomainError so callers see the same codes
// the local services return.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("apiclient: failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("Catalog API returned a non-envelope body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		if env.Error != nil {
			return shared.NewDomainError(env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: failed to decode %s %s: %w", method, path, err)
	}
	return nil
}
