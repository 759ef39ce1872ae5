// Package gbooks looks up book metadata by ISBN via the Google Books
// volumes API.
package gbooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Google Books API base URL.
	BaseURL = "https://www.googleapis.com/books/v1"

	// RateLimit stays under the anonymous-quota request rate.
	RateLimit = 5.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// ErrNotFound indicates the ISBN matched no volume.
var ErrNotFound = errors.New("no volume found for ISBN")

// Volume is the book metadata we read from a volumes response.
type Volume struct {
	Title         string
	Subtitle      string
	Authors       []string
	Publisher     string
	PublishedDate string
}

// FullTitle joins title and subtitle the way BibTeX entries expect.
func (v Volume) FullTitle() string {
	if v.Subtitle == "" {
		return v.Title
	}
	return v.Title + ": " + v.Subtitle
}

// Year returns the four-digit publication year, or "" if unknown.
func (v Volume) Year() string {
	if len(v.PublishedDate) < 4 {
		return ""
	}
	return v.PublishedDate[:4]
}

// Client queries the Google Books API.
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

// NewClient creates a new Google Books client.
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

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Subtitle      string   `json:"subtitle"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupISBN returns the first volume matching the given ISBN. Hyphens in
// the ISBN are removed before querying.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (Volume, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Volume{}, err
	}

	query := strings.ReplaceAll(isbn, "-", "")
	endpoint := fmt.Sprintf("%s/volumes?q=isbn:%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Volume{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Volume{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Volume{}, fmt.Errorf("resolving ISBN %q: HTTP status %d", isbn, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Volume{}, err
	}

	var vr volumesResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return Volume{}, fmt.Errorf("parsing Google Books response for %q: %w", isbn, err)
	}
	if len(vr.Items) == 0 {
		return Volume{}, fmt.Errorf("resolving ISBN %q: %w", isbn, ErrNotFound)
	}

	info := vr.Items[0].VolumeInfo
	return Volume{
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
	}, nil
}
