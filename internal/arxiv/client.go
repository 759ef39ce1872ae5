// Package arxiv resolves arXiv IDs to BibLaTeX entries. Entries come from
// the arxiv2bibtex.org mirror (scraped from its HTML response); abstracts
// come from the arXiv export API's Atom feed.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// BibBaseURL serves rendered BibTeX/BibLaTeX entries for arXiv IDs.
	BibBaseURL = "https://arxiv2bibtex.org"

	// ExportBaseURL is the arXiv export API for Atom metadata.
	ExportBaseURL = "https://export.arxiv.org"

	// RateLimit follows arXiv's request of no more than one request per
	// three seconds for automated clients.
	RateLimit = 1.0 / 3.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// Client fetches arXiv entries and abstracts.
type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	bibBaseURL    string
	exportBaseURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBibBaseURL sets a custom BibTeX mirror base URL (for testing).
func WithBibBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.bibBaseURL = url
	}
}

// WithExportBaseURL sets a custom export API base URL (for testing).
func WithExportBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.exportBaseURL = url
	}
}

// WithRateLimit overrides the request rate limit (for testing).
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new arXiv client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		limiter:       rate.NewLimiter(rate.Limit(RateLimit), 1),
		bibBaseURL:    BibBaseURL,
		exportBaseURL: ExportBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBibLaTeX fetches the BibLaTeX entry for an arXiv ID. The mirror
// returns an HTML page; the entry lives in the #biblatex textarea.
func (c *Client) FetchBibLaTeX(ctx context.Context, arxivID string) (string, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=biblatex", c.bibBaseURL, url.QueryEscape(arxivID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("resolving arXiv ID %q: %w", arxivID, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parsing arxiv2bibtex response for %q: %w", arxivID, err)
	}

	entry := doc.Find("#biblatex textarea.wikiinfo").First().Text()
	if strings.TrimSpace(entry) == "" {
		return "", fmt.Errorf("resolving arXiv ID %q: no BibTeX entry found", arxivID)
	}
	return entry, nil
}

// atomFeed is the subset of the export API's Atom response we read.
type atomFeed struct {
	Entries []struct {
		Summary string `xml:"summary"`
	} `xml:"entry"`
}

// FetchAbstract fetches the abstract (the Atom "summary") for an arXiv ID.
// An empty string (no error) means the entry has no abstract.
func (c *Client) FetchAbstract(ctx context.Context, arxivID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/query?id_list=%s", c.exportBaseURL, url.QueryEscape(arxivID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetching abstract for arXiv ID %q: %w", arxivID, err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return "", fmt.Errorf("parsing arXiv feed for %q: %w", arxivID, err)
	}
	if len(feed.Entries) == 0 {
		return "", nil
	}
	return strings.Join(strings.Fields(feed.Entries[0].Summary), " "), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
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
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
