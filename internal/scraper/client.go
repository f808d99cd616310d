// Package scraper fetches IMDb title pages and extracts the poster image URL.
//
// Scraping is best effort: the page layout is not an API and may change.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/net/html"

	"github.com/JonMunkholm/imdbsql/internal/logging"
)

const (
	DefaultBaseURL   = "https://www.imdb.com"
	DefaultUserAgent = "Mozilla/5.0 (compatible; imdbsql)"
	DefaultTimeout   = 15 * time.Second

	titlePathTemplate = "%s/title/%s"
)

var (
	ErrInvalidTitleID   = errors.New("invalid title id")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrPosterNotFound   = errors.New("poster not found")

	titleIDRegex = regexp.MustCompile(`^tt\d+$`)
)

// Client fetches title pages.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the site title pages are fetched from.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the timeout of a single request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateTitleID checks that id looks like "tt0111161".
func ValidateTitleID(id string) error {
	if !titleIDRegex.MatchString(id) {
		return goerr.Wrap(ErrInvalidTitleID, "title id must match tt<digits>", goerr.V("title_id", id))
	}
	return nil
}

// TitlePage fetches and parses the page of a title.
func (c *Client) TitlePage(ctx context.Context, titleID string) (*html.Node, error) {
	if err := ValidateTitleID(titleID); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(titlePathTemplate, c.baseURL, titleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	logging.From(ctx).Debug("fetching title page", "title_id", titleID, "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch title page", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(ErrUnexpectedStatus, "title page request failed",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse title page", goerr.V("url", url))
	}
	return doc, nil
}

// FetchPosterURL fetches a title page and returns its poster URL.
func (c *Client) FetchPosterURL(ctx context.Context, titleID string) (string, error) {
	doc, err := c.TitlePage(ctx, titleID)
	if err != nil {
		return "", err
	}
	poster, err := PosterURL(doc)
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract poster", goerr.V("title_id", titleID))
	}
	return poster, nil
}
