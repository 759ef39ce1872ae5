// Package crossref is a client for the Crossref REST API. It covers the
// BibTeX transform endpoint used for DOI resolution, work metadata for
// abstracts, and bibliographic title search.
package crossref

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
	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// RateLimit is 50 requests per second per the Crossref documentation.
	RateLimit = 50.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// Client is a rate-limited HTTP client for the Crossref API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
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

// WithMailto sets the contact email sent with requests, which puts the
// client in Crossref's polite pool.
func WithMailto(email string) ClientOption {
	return func(c *Client) {
		c.mailto = email
	}
}

// NewClient creates a new Crossref API client.
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

// FetchBibTeX resolves a DOI to its BibTeX rendering via the content
// negotiation transform endpoint.
func (c *Client) FetchBibTeX(ctx context.Context, doi string) (string, error) {
	endpoint := fmt.Sprintf("%s/works/%s/transform/application/x-bibtex", c.baseURL, url.PathEscape(doi))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("resolving DOI %q: %w", doi, err)
	}
	return string(body), nil
}

// worksResponse is the subset of the /works/{doi} payload we read.
type worksResponse struct {
	Message struct {
		Abstract string `json:"abstract"`
	} `json:"message"`
}

// FetchAbstract fetches a work's abstract from the metadata endpoint. The
// abstract arrives as JATS XML and is returned as cleaned plain text.
// An empty string (no error) means the work has no abstract.
func (c *Client) FetchAbstract(ctx context.Context, doi string) (string, error) {
	endpoint := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetching metadata for DOI %q: %w", doi, err)
	}

	var resp worksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing metadata for DOI %q: %w", doi, err)
	}
	return CleanJATS(resp.Message.Abstract), nil
}

// Work is a single search result from the /works query endpoint.
type Work struct {
	DOI            string              `json:"DOI"`
	Title          []string            `json:"title"`
	Author         []Author            `json:"author"`
	Published      Published           `json:"published"`
	ContainerTitle []string            `json:"container-title"`
	Abstract       string              `json:"abstract"`
	Publisher      string              `json:"publisher"`
	Type           string              `json:"type"`
}

// Author is a Crossref author object.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// Published carries the date-parts array from Crossref date fields.
type Published struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the publication year, or 0 if unknown.
func (p Published) Year() int {
	if len(p.DateParts) > 0 && len(p.DateParts[0]) > 0 {
		return p.DateParts[0][0]
	}
	return 0
}

type searchResponse struct {
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// SearchTitle searches works by title, returning at most limit results.
func (c *Client) SearchTitle(ctx context.Context, title string, limit int) ([]Work, error) {
	params := url.Values{
		"query.title": {title},
		"rows":        {fmt.Sprint(limit)},
		"select":      {"DOI,title,author,published,container-title,abstract,publisher,type"},
	}
	endpoint := fmt.Sprintf("%s/works?%s", c.baseURL, params.Encode())
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("searching Crossref for %q: %w", title, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing Crossref search response: %w", err)
	}
	return resp.Message.Items, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if c.mailto != "" {
		sep := "?"
		if u, err := url.Parse(endpoint); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		endpoint += sep + "mailto=" + url.QueryEscape(c.mailto)
	}

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
		return nil, &APIError{StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
