// Package openalex searches bibliographic works via the OpenAlex API.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenAlex API base URL.
	BaseURL = "https://api.openalex.org"

	// RateLimit keeps under OpenAlex's 10 requests/second courtesy limit.
	RateLimit = 10.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// Client queries the OpenAlex works endpoint.
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

// WithMailto sets the contact email for OpenAlex's polite pool.
func WithMailto(email string) ClientOption {
	return func(c *Client) {
		c.mailto = email
	}
}

// NewClient creates a new OpenAlex client.
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

// Work is a single OpenAlex work as we read it.
type Work struct {
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Type            string `json:"type"`
	IDs             struct {
		DOI      string `json:"doi"`
		OpenAlex string `json:"openalex"`
	} `json:"ids"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PrimaryLocation struct {
		Source struct {
			DisplayName          string `json:"display_name"`
			HostOrganizationName string `json:"host_organization_name"`
		} `json:"source"`
	} `json:"primary_location"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// DOI returns the work's bare DOI, with the doi.org prefix stripped.
func (w Work) DOI() string {
	return strings.TrimPrefix(w.IDs.DOI, "https://doi.org/")
}

// Abstract reconstructs the abstract text from OpenAlex's inverted index
// representation.
func (w Work) Abstract() string {
	if len(w.AbstractInvertedIndex) == 0 {
		return ""
	}

	maxPos := 0
	for _, positions := range w.AbstractInvertedIndex {
		for _, p := range positions {
			if p > maxPos {
				maxPos = p
			}
		}
	}

	words := make([]string, maxPos+1)
	for word, positions := range w.AbstractInvertedIndex {
		for _, p := range positions {
			words[p] = word
		}
	}
	return strings.Join(words, " ")
}

type worksResponse struct {
	Results []Work `json:"results"`
}

// SearchTitle searches works by title, returning at most limit results.
func (c *Client) SearchTitle(ctx context.Context, title string, limit int) ([]Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"filter":   {"title.search:" + title},
		"per_page": {fmt.Sprint(limit)},
	}
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}

	endpoint := fmt.Sprintf("%s/works?%s", c.baseURL, params.Encode())
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
		return nil, fmt.Errorf("searching OpenAlex for %q: HTTP status %d", title, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var wr worksResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return wr.Results, nil
}
