package trademe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/codex-k8s/trademe-mcp-server/internal/auth"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.trademe.co.nz/v1"

	defaultRateLimit = 5.0
	defaultBurst     = 5
	defaultTimeout   = 30 * time.Second
	maxErrorBody     = 4 << 10
)

// WatchlistQuery holds watchlist pagination and filter arguments.
type WatchlistQuery struct {
	// Filter selects the watchlist subset (e.g. "All").
	Filter string
	// Page is the 1-based page number.
	Page int
	// Rows is the page size.
	Rows int
	// Category restricts results to a category; empty means no restriction.
	Category string
}

// API is the upstream surface used by the tools.
type API interface {
	// GetListing fetches a single listing.
	GetListing(ctx context.Context, listingID int64) (map[string]any, error)
	// GetWatchlist fetches a page of the member watchlist.
	GetWatchlist(ctx context.Context, query WatchlistQuery) (map[string]any, error)
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trade me api error %d", e.StatusCode)
	}
	return fmt.Sprintf("trade me api error %d: %s", e.StatusCode, e.Body)
}

// Client is a Trade Me API client bound to one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	session    auth.Session
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter shares a rate limiter between clients.
func WithLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a client that authorizes requests with session.
func NewClient(session auth.Session, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetListing fetches GET /Listings/{id}.json.
func (c *Client) GetListing(ctx context.Context, listingID int64) (map[string]any, error) {
	if listingID <= 0 {
		return nil, fmt.Errorf("invalid listing id: %d", listingID)
	}
	return c.get(ctx, "/Listings/"+strconv.FormatInt(listingID, 10)+".json", nil)
}

// GetWatchlist fetches GET /MyTradeMe/Watchlist/{filter}.json.
func (c *Client) GetWatchlist(ctx context.Context, query WatchlistQuery) (map[string]any, error) {
	filter := query.Filter
	if filter == "" {
		filter = "All"
	}
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Rows > 0 {
		params.Set("rows", strconv.Itoa(query.Rows))
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	return c.get(ctx, "/MyTradeMe/Watchlist/"+url.PathEscape(filter)+".json", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		c.session.Authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var result map[string]any
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result == nil {
		result = map[string]any{}
	}
	return result, nil
}

// Factory builds per-session clients that share transport settings and pacing.
type Factory struct {
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// HTTPClient is shared by all clients.
	HTTPClient *http.Client
	// Limiter paces requests across all clients.
	Limiter *rate.Limiter
}

// NewFactory creates a factory with a shared limiter.
func NewFactory(baseURL string, timeout time.Duration, ratePerSecond float64, burst int) *Factory {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ratePerSecond <= 0 {
		ratePerSecond = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &Factory{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// New returns a client bound to session.
func (f *Factory) New(session auth.Session) API {
	opts := []ClientOption{WithHTTPClient(f.HTTPClient), WithLimiter(f.Limiter)}
	if f.BaseURL != "" {
		opts = append(opts, WithBaseURL(f.BaseURL))
	}
	return NewClient(session, opts...)
}
