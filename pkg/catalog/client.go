package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anmawex/dashboard-challenge/pkg/config"
	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
)

const defaultTimeout = 10 * time.Second

var (
	errBaseURLRequired = errors.New("catalog base url is required")
	errLoggerRequired  = errors.New("catalog logger is required")
)

// Client talks to the remote catalog REST API with centralized logging and
// error mapping. All failures come back as pkg/errors codes so callers never
// inspect HTTP status codes themselves.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *logger.Logger
}

// NewClient validates the catalog configuration and builds the wrapper.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		logger:     logg,
	}, nil
}

// BaseURL reports the normalized catalog endpoint.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// FetchAll returns every product the catalog knows about.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	c.log(ctx, "request", "fetch_products", nil)

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		c.log(ctx, "error", "fetch_products", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "fetch_products", map[string]any{"count": len(products)})
	return products, nil
}

// FetchByID returns a single product or a not-found error.
func (c *Client) FetchByID(ctx context.Context, id int64) (*Product, error) {
	c.log(ctx, "request", "fetch_product", map[string]any{"product_id": id})

	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		c.log(ctx, "error", "fetch_product", map[string]any{"product_id": id, "error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "fetch_product", map[string]any{"product_id": product.ID})
	return &product, nil
}

// Create registers a new product and returns the catalog's record.
func (c *Client) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	c.log(ctx, "request", "create_product", map[string]any{
		"title":       params.Title,
		"category_id": params.CategoryID,
	})

	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", params.payload(), &product); err != nil {
		c.log(ctx, "error", "create_product", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "create_product", map[string]any{"product_id": product.ID})
	return &product, nil
}

// Update applies a partial mutation to an existing product.
func (c *Client) Update(ctx context.Context, id int64, params UpdateProductParams) (*Product, error) {
	c.log(ctx, "request", "update_product", map[string]any{"product_id": id})

	var product Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), params.payload(), &product); err != nil {
		c.log(ctx, "error", "update_product", map[string]any{"product_id": id, "error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "update_product", map[string]any{"product_id": product.ID})
	return &product, nil
}

// Delete removes a product from the catalog.
func (c *Client) Delete(ctx context.Context, id int64) error {
	c.log(ctx, "request", "delete_product", map[string]any{"product_id": id})

	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil); err != nil {
		c.log(ctx, "error", "delete_product", map[string]any{"product_id": id, "error": err.Error()})
		return err
	}

	c.log(ctx, "response", "delete_product", map[string]any{"product_id": id})
	return nil
}

// FetchCategories lists the catalog's category taxonomy.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	c.log(ctx, "request", "fetch_categories", nil)

	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		c.log(ctx, "error", "fetch_categories", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "fetch_categories", map[string]any{"count": len(categories)})
	return categories, nil
}

// Ping verifies the catalog service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/categories", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fmt.Sprintf("catalog %s %s", method, path))
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode catalog response")
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, method, path string) error {
	message := fmt.Sprintf("catalog %s %s returned %d", method, path, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		message = payload.Message
	}

	return pkgerrors.New(domainCodeForStatus(resp.StatusCode), message)
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeTransport
	}
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("catalog %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("catalog %s", phase))
	}
}
