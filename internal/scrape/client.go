package scrape

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/solvik/vollur/internal/platform/logging"
)

var (
	// ErrBadStatus marks a non-2xx response; the current unit fails and the
	// caller moves on, no retry.
	ErrBadStatus = errors.New("scrape: unexpected response status")
	ErrEmptyURL  = errors.New("scrape: page url is required")
)

// Client fetches and parses source pages. Callers are expected to run
// single-threaded; the client sleeps the configured delay between fetches
// to stay polite to the source site.
type Client struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	logger     *logging.Logger

	lastFetch time.Time
}

func NewClient(httpClient *http.Client, userAgent string, delay time.Duration, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		delay:      delay,
		logger:     logger,
	}
}

// FetchDocument GETs pageURL and parses the response body. Redirects are
// followed by the underlying http.Client.
func (c *Client) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, ErrEmptyURL
	}

	if err := c.waitTurn(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", pageURL)
	}
	// The site serves degraded markup to clients that do not look like a
	// browser.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "is,en;q=0.8")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", pageURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrBadStatus, "fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", pageURL)
	}

	c.logger.DebugContext(ctx, "page fetched",
		"url", pageURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return doc, nil
}

func (c *Client) waitTurn(ctx context.Context) error {
	if c.delay <= 0 || c.lastFetch.IsZero() {
		c.lastFetch = time.Now()
		return nil
	}

	wait := c.delay - time.Since(c.lastFetch)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	c.lastFetch = time.Now()
	return nil
}
