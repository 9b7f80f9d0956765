package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/pkg/httpclient"
)

// Config holds the content store connection settings.
type Config struct {
	// BaseURL overrides the host derived from ProjectID; used for tests and
	// self-hosted content stores.
	BaseURL    string
	ProjectID  string
	Dataset    string
	APIVersion string
	// UseCDN routes queries through the content store's CDN host. This is the
	// only caching in front of content fetches.
	UseCDN bool
	// Timeout bounds each fetch. Zero keeps the HTTP client default.
	Timeout time.Duration
}

// Client fetches content records from the headless content store. Fetches are
// never cached locally and never retried; a failed fetch surfaces as an error
// to the caller.
type Client struct {
	httpc   *httpclient.Client
	baseURL string
	dataset string
	version string
	logger  *slog.Logger
}

// NewClient creates a content store client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		baseURL = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	hcCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hcCfg.Timeout = cfg.Timeout
	}

	return &Client{
		httpc:   httpclient.New(hcCfg),
		baseURL: baseURL,
		dataset: cfg.Dataset,
		version: cfg.APIVersion,
		logger:  logger,
	}
}

// queryResponse is the content store's query envelope.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query executes a content query with the given parameters and returns the
// raw result. A nil params map is allowed.
func (c *Client) Query(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode query param %s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.version, c.dataset, q.Encode())

	resp, err := c.httpc.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("content query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("content query: unexpected status %d: %s", resp.StatusCode, body)
	}

	var envelope queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode content response: %w", err)
	}

	c.logger.DebugContext(ctx, "content query executed",
		slog.Int("status", resp.StatusCode),
		slog.Int("result_bytes", len(envelope.Result)),
	)

	return envelope.Result, nil
}

// AllProducts fetches the entire product catalog in one call.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	result, err := c.Query(ctx, allProductsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch all products: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(result, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// ProductByID fetches a single product. Returns (nil, nil) when the content
// store has no product with the given identifier.
func (c *Client) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	result, err := c.Query(ctx, productByIDQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}

	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}

	var product domain.Product
	if err := json.Unmarshal(result, &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

// RelatedProducts fetches products sharing at least one of the given tags,
// excluding the product identified by id.
func (c *Client) RelatedProducts(ctx context.Context, id string, tags []string) ([]domain.Product, error) {
	result, err := c.Query(ctx, relatedProductsQuery, map[string]any{"id": id, "tags": tags})
	if err != nil {
		return nil, fmt.Errorf("fetch related products for %s: %w", id, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(result, &products); err != nil {
		return nil, fmt.Errorf("decode related products: %w", err)
	}
	return products, nil
}
