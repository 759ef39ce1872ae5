// Package s2 searches papers via the Semantic Scholar Graph API.
package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// RateLimit is 1 request/second for unauthenticated clients; an API
	// key raises the server-side quota but we keep the client polite.
	RateLimit = 1.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// searchFields are the paper fields requested for title search.
	searchFields = "title,authors,year,venue,abstract,externalIds,publicationTypes,publicationVenue"
)

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new Semantic Scholar client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Paper is a single paper from the search endpoint.
type Paper struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Venue       string `json:"venue"`
	Abstract    string `json:"abstract"`
	ExternalIDs struct {
		DOI   string `json:"DOI"`
		ArXiv string `json:"ArXiv"`
	} `json:"externalIds"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	PublicationTypes []string `json:"publicationTypes"`
	PublicationVenue struct {
		Name      string `json:"name"`
		Publisher string `json:"publisher"`
	} `json:"publicationVenue"`
}

type searchResponse struct {
	Data []Paper `json:"data"`
}

// SearchTitle searches papers by title, returning at most limit results.
// A rate-limited response (429) yields an empty result set, not an error,
// so a multi-source search can proceed with its other backends.
func (c *Client) SearchTitle(ctx context.Context, title string, limit int) ([]Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"query":  {title},
		"limit":  {fmt.Sprint(limit)},
		"fields": {searchFields},
	}
	endpoint := fmt.Sprintf("%s/paper/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching Semantic Scholar for %q: HTTP status %d", title, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return sr.Data, nil
}
