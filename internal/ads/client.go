// Package ads is a client for the NASA/ADS API: bibcode export to BibTeX
// and reverse bibcode lookup for arbitrary identifiers.
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1"

	// RateLimit keeps well under the ADS per-day quota for interactive use.
	RateLimit = 5.0

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second
)

// Client is a rate-limited HTTP client for the ADS API. All calls require
// a token.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the ADS API token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
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

// NewClient creates a new ADS API client. If no token option is given the
// ADS_TOKEN environment variable is consulted.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	if token := os.Getenv("ADS_TOKEN"); token != "" {
		c.token = token
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenFromFile reads an ADS token from the given file, typically
// ~/.doi2bib/ads_token. Returns "" if the file does not exist.
func TokenFromFile(path string) string {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

type exportRequest struct {
	Bibcode   []string `json:"bibcode"`
	MaxAuthor int      `json:"maxauthor"`
}

type exportResponse struct {
	Export string `json:"export"`
}

// ExportBibTeX exports a bibcode to BibTeX via the /export/bibtexabs
// endpoint, which includes the abstract and the full author list.
func (c *Client) ExportBibTeX(ctx context.Context, bibcode string) (string, error) {
	if err := c.requireToken(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(exportRequest{
		Bibcode:   []string{bibcode},
		MaxAuthor: 0, // 0 = all authors
	})
	if err != nil {
		return "", err
	}

	body, err := c.post(ctx, c.baseURL+"/export/bibtexabs", payload)
	if err != nil {
		return "", fmt.Errorf("resolving bibcode %q: %w", bibcode, err)
	}

	var resp exportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing export response for %q: %w", bibcode, err)
	}
	return resp.Export, nil
}

type searchResponse struct {
	Response struct {
		Docs []struct {
			Bibcode    string   `json:"bibcode"`
			Identifier []string `json:"identifier"`
		} `json:"docs"`
	} `json:"response"`
}

// BibcodeFor reverse-queries ADS for the bibcode matching the given
// identifier (a DOI or arXiv ID). Returns "" if no document matches.
func (c *Client) BibcodeFor(ctx context.Context, identifier string) (string, error) {
	if err := c.requireToken(); err != nil {
		return "", err
	}

	params := url.Values{
		"q":  {"identifier:" + identifier},
		"fl": {"bibcode,identifier"},
	}
	body, err := c.get(ctx, c.baseURL+"/search/query?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("searching ADS for %q: %w", identifier, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing ADS search response: %w", err)
	}

	want := strings.ToLower(identifier)
	for _, doc := range resp.Response.Docs {
		for _, id := range doc.Identifier {
			if strings.Contains(strings.ToLower(id), want) {
				return doc.Bibcode, nil
			}
		}
	}
	return "", nil
}

func (c *Client) requireToken() error {
	if c.token == "" {
		return ErrNoToken
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

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
