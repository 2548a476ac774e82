// Package sitemap reads sitemap XML documents into ordered URL lists.
package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

const defaultTimeout = 30 * time.Second

// Options configures an HTTPReader.
type Options struct {
	// Client is the HTTP client used to fetch sitemaps. Defaults to a
	// client with a 30s timeout.
	Client *http.Client
	// UserAgent overrides the request User-Agent header.
	UserAgent string
}

// HTTPReader fetches sitemaps over HTTP and extracts the URLs they
// declare.
type HTTPReader struct {
	client    *http.Client
	userAgent string
}

// NewHTTPReader returns a sitemap reader backed by net/http.
func NewHTTPReader(opts Options) *HTTPReader {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPReader{client: client, userAgent: opts.UserAgent}
}

// ReadSitemap returns the URLs the sitemap at sitemapURL declares, in
// document order. <loc> elements are matched by local tag name, so any
// namespace prefix is tolerated. Fetch or parse failures surface as an
// error alongside an empty list; callers treat both as "no URLs".
func (r *HTTPReader) ReadSitemap(ctx context.Context, sitemapURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sitemap request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned status %d", resp.StatusCode)
	}

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}

	return collectLocs(doc), nil
}

// collectLocs walks the whole document collecting the text of every
// element whose local name is "loc".
func collectLocs(doc *xmlquery.Node) []string {
	var urls []string
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode && n.Data == "loc" {
			if loc := strings.TrimSpace(n.InnerText()); isHTTP(loc) {
				urls = append(urls, loc)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls
}

func isHTTP(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
