// Package dblp queries the dblp.org publication search API, used to
// cross-match preprints against published conference papers.
package dblp

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
	// BaseURL is the dblp search API base URL.
	BaseURL = "https://dblp.org"

	// RateLimit keeps under dblp's crawler policy of roughly one request
	// per second.
	RateLimit = 1.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// maxHits is how many hits we request per query.
	maxHits = 1000

	// ConferencePaperType is dblp's type string for conference and
	// workshop papers.
	ConferencePaperType = "Conference and Workshop Papers"
)

// Publication is a single hit from the publ search endpoint.
type Publication struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Venue  string `json:"venue"`
	Year   string `json:"year"`
	Volume string `json:"volume"`
	EE     string `json:"ee"`
}

// Client queries the dblp API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

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

// NewClient creates a new dblp client.
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

type searchResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info Publication `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

// Search runs a publication query (typically "lastname title words") and
// returns the matching publications.
func (c *Client) Search(ctx context.Context, query string) ([]Publication, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"h":      {fmt.Sprint(maxHits)},
	}
	endpoint := fmt.Sprintf("%s/search/publ/api?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching dblp for %q: HTTP status %d", query, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing dblp response: %w", err)
	}

	pubs := make([]Publication, 0, len(sr.Result.Hits.Hit))
	for _, hit := range sr.Result.Hits.Hit {
		pubs = append(pubs, hit.Info)
	}
	return pubs, nil
}
