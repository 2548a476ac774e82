// Package sitescribe turns a seed URL into a single normalized document,
// optionally aggregating an entire documentation site discovered through
// sitemap expansion or breadth-first link following.
package sitescribe

import (
	"context"
	"errors"

	"github.com/avelis/sitescribe/urlutil"
)

// ErrNoContent is returned by Scrape when a crawl completes without
// producing any pages.
var ErrNoContent = errors.New("no content could be extracted from the URL")

// Mode selects how a seed URL is expanded into pages.
type Mode string

const (
	// ModeAuto picks a mode from the URL shape before any fetch happens.
	ModeAuto Mode = "auto"
	// ModeSingle fetches exactly the seed URL.
	ModeSingle Mode = "single"
	// ModeSitemap expands the seed through a sitemap and fetches each entry.
	ModeSitemap Mode = "sitemap"
	// ModeRecursive follows links breadth-first from the seed.
	ModeRecursive Mode = "recursive"
)

// DetectMode resolves ModeAuto for a seed URL: text files are fetched as a
// single page, sitemaps are expanded, everything else is crawled
// recursively. The classification is static and never re-evaluated
// mid-crawl.
func DetectMode(seedURL string) Mode {
	switch {
	case urlutil.IsTextURL(seedURL):
		return ModeSingle
	case urlutil.IsSitemapURL(seedURL):
		return ModeSitemap
	default:
		return ModeRecursive
	}
}

// Options configures a single Scrape invocation. The zero value is not
// useful; start from DefaultOptions.
type Options struct {
	// MaxDepth bounds link-following distance from the seed (root = 0).
	MaxDepth int `json:"maxDepth"`
	// MaxPages is a hard ceiling on fetch attempts per invocation.
	MaxPages int `json:"maxPages"`
	// FollowInternalOnly restricts link following to the seed's host.
	FollowInternalOnly bool `json:"followInternalOnly"`
	// Mode overrides automatic mode detection.
	Mode Mode `json:"mode"`
}

// DefaultOptions returns the compiled-in defaults: depth 3, 50 pages,
// internal links only, automatic mode detection.
func DefaultOptions() Options {
	return Options{
		MaxDepth:           3,
		MaxPages:           50,
		FollowInternalOnly: true,
		Mode:               ModeAuto,
	}
}

// Validate rejects option values that would make a crawl misbehave.
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return errors.New("maxDepth must not be negative")
	}
	if o.MaxPages < 0 {
		return errors.New("maxPages must not be negative")
	}
	switch o.Mode {
	case ModeAuto, ModeSingle, ModeSitemap, ModeRecursive, "":
		return nil
	default:
		return errors.New("unknown mode: " + string(o.Mode))
	}
}

// Page is one successfully fetched page. Depth is only meaningful for
// pages discovered by a recursive crawl.
type Page struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Depth   int    `json:"depth"`
}

// PageRef identifies one page merged into a combined result.
type PageRef struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Metadata describes how a Result was produced.
type Metadata struct {
	PagesCount int       `json:"pagesCount"`
	Mode       string    `json:"mode"`
	Pages      []PageRef `json:"pages,omitempty"`
}

// Result is the terminal output of one Scrape invocation. It holds no
// references into crawl state and is independently serializable.
type Result struct {
	Success  bool     `json:"success"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	URL      string   `json:"url"`
	Metadata Metadata `json:"metadata"`
}

// Progress is a transient notification emitted while a crawl runs. The
// counter fields are nil when they do not apply to the event. TotalPages
// is an estimate only: in recursive mode it is the frontier length plus
// pages processed so far, a lower bound on the eventual total.
type Progress struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	CurrentURL     string `json:"currentUrl,omitempty"`
	PagesProcessed *int   `json:"pagesProcessed,omitempty"`
	TotalPages     *int   `json:"totalPages,omitempty"`
	Depth          *int   `json:"depth,omitempty"`
}

// ProgressFunc observes Progress events. Implementations must return
// quickly; the scraper calls them synchronously between fetches.
type ProgressFunc func(Progress)

// FetchResult is what a Fetcher produces for one URL.
type FetchResult struct {
	// URL is the fetched page's URL.
	URL string
	// Title is the page title, or empty if the fetcher found none.
	Title string
	// Content is the page's readable content as markdown.
	Content string
	// Links are the page's outbound links as absolute URL strings.
	Links []string
}

// Fetcher retrieves one page's readable content, title and outbound
// links. Implementations own their transport, rendering and timeout
// strategy; a failed fetch is an ordinary error and never aborts the
// crawl that requested it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// SitemapReader returns the URLs a sitemap declares, in document order.
// Implementations return an empty slice on any fetch or parse failure.
type SitemapReader interface {
	ReadSitemap(ctx context.Context, url string) ([]string, error)
}

func intPtr(v int) *int { return &v }
