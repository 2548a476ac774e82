// Package fetchers provides page fetcher implementations: a plain HTTP
// backend for static sites and a chromedp backend for script-rendered
// ones. Both produce markdown content plus absolutized outbound links.
package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avelis/sitescribe"
	"github.com/avelis/sitescribe/logger"
)

const defaultUserAgent = "sitescribe/1.0"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// HTTPOptions configures an HTTPFetcher.
type HTTPOptions struct {
	Logger       logger.Logger
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// HTTPFetcher fetches pages with net/http and extracts content with
// goquery. Plain-text responses pass through verbatim.
type HTTPFetcher struct {
	logger    logger.Logger
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher builds an HTTP-backed page fetcher.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = 10
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= opts.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
			}
			return nil
		},
	}

	return &HTTPFetcher{
		logger:    opts.Logger,
		client:    client,
		userAgent: opts.UserAgent,
	}
}

// Fetch retrieves one page. Links are resolved against the final URL
// after redirects.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*sitescribe.FetchResult, error) {
	f.logger.Debug("fetching %s", pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	finalURL := resp.Request.URL
	contentType := resp.Header.Get("Content-Type")

	if strings.Contains(contentType, "text/plain") {
		return &sitescribe.FetchResult{
			URL:     finalURL.String(),
			Content: string(body),
		}, nil
	}
	if !strings.Contains(contentType, "html") && contentType != "" {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	title, markdown, links, err := extractPage(body, finalURL)
	if err != nil {
		return nil, err
	}

	return &sitescribe.FetchResult{
		URL:     finalURL.String(),
		Title:   title,
		Content: markdown,
		Links:   links,
	}, nil
}
