package sitescribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avelis/sitescribe/content"
	"github.com/avelis/sitescribe/frontier"
	"github.com/avelis/sitescribe/logger"
	"github.com/avelis/sitescribe/sitemap"
)

// Scraper drives one crawl at a time: it resolves a mode for the seed
// URL, runs the matching sub-crawl, and merges the fetched pages into a
// single Result.
type Scraper struct {
	fetcher     Fetcher
	sitemaps    SitemapReader
	log         logger.Logger
	progress    ProgressFunc
	policy      LinkPolicy
	delay       time.Duration
	newFrontier func() (frontier.Frontier, error)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithSitemapReader overrides the default HTTP sitemap reader.
func WithSitemapReader(r SitemapReader) Option {
	return func(s *Scraper) { s.sitemaps = r }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(log logger.Logger) Option {
	return func(s *Scraper) { s.log = log }
}

// WithProgress registers an observer for progress events. The observer is
// called synchronously between fetches and must return quickly.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scraper) { s.progress = fn }
}

// WithLinkPolicy overrides the link filter derived from
// Options.FollowInternalOnly.
func WithLinkPolicy(p LinkPolicy) Option {
	return func(s *Scraper) { s.policy = p }
}

// WithRequestDelay spaces fetches at least d apart.
func WithRequestDelay(d time.Duration) Option {
	return func(s *Scraper) { s.delay = d }
}

// WithFrontier supplies a factory for the crawl frontier. Each Scrape
// invocation gets a fresh frontier which is closed when the crawl ends.
func WithFrontier(factory func() (frontier.Frontier, error)) Option {
	return func(s *Scraper) { s.newFrontier = factory }
}

// New builds a Scraper around the given page fetcher.
func New(fetcher Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:  fetcher,
		sitemaps: sitemap.NewHTTPReader(sitemap.Options{}),
		log:      logger.NewNopLogger(),
		newFrontier: func() (frontier.Frontier, error) {
			return frontier.NewMemory(), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape expands seedURL into pages according to opts and merges them
// into one Result. It returns ErrNoContent when the crawl produced no
// pages. Cancelling ctx mid-crawl stops dequeuing new work; pages fetched
// so far still aggregate into a partial, successful Result.
func (s *Scraper) Scrape(ctx context.Context, seedURL string, opts Options) (*Result, error) {
	if seedURL == "" {
		return nil, fmt.Errorf("seed URL required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}

	s.emit(Progress{Status: "starting", Message: "Initializing crawler..."})

	mode := opts.Mode
	if mode == ModeAuto {
		mode = DetectMode(seedURL)
		s.log.Debug("auto mode resolved to %s for %s", mode, seedURL)
	}

	var (
		pages []Page
		err   error
	)
	switch mode {
	case ModeSingle:
		pages = s.crawlSingle(ctx, seedURL)
	case ModeSitemap:
		pages, err = s.crawlSitemap(ctx, seedURL, opts)
	case ModeRecursive:
		pages, err = s.crawlRecursive(ctx, seedURL, opts)
	}
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, ErrNoContent
	}
	return s.aggregate(seedURL, mode, pages), nil
}

// crawlPage is the single-page crawl step shared by every mode: one
// progress event, one fetch, title fallback from content.
func (s *Scraper) crawlPage(ctx context.Context, pageURL string) (*FetchResult, error) {
	s.emit(Progress{
		Status:     "crawling",
		Message:    fmt.Sprintf("Fetching content from %s", pageURL),
		CurrentURL: pageURL,
	})

	res, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if res.URL == "" {
		res.URL = pageURL
	}
	if res.Title == "" {
		res.Title = content.ExtractTitle(res.Content)
	}
	return res, nil
}

// reportFetchFailure surfaces a per-page failure without aborting the
// crawl that hit it.
func (s *Scraper) reportFetchFailure(pageURL string, err error) {
	s.log.Warn("failed to crawl %s: %v", pageURL, err)
	s.emit(Progress{
		Status:     "error",
		Message:    fmt.Sprintf("Failed to crawl %s: %v", pageURL, err),
		CurrentURL: pageURL,
	})
}

func (s *Scraper) crawlSingle(ctx context.Context, seedURL string) []Page {
	res, err := s.crawlPage(ctx, seedURL)
	if err != nil {
		s.reportFetchFailure(seedURL, err)
		return nil
	}
	return []Page{{URL: res.URL, Title: res.Title, Content: res.Content}}
}

func (s *Scraper) crawlSitemap(ctx context.Context, seedURL string, opts Options) ([]Page, error) {
	s.emit(Progress{Status: "processing", Message: "Parsing sitemap..."})

	urls, err := s.sitemaps.ReadSitemap(ctx, seedURL)
	if err != nil {
		s.log.Warn("failed to read sitemap %s: %v", seedURL, err)
		s.emit(Progress{
			Status:  "error",
			Message: fmt.Sprintf("Failed to parse sitemap: %v", err),
		})
		return nil, nil
	}
	if len(urls) > opts.MaxPages {
		urls = urls[:opts.MaxPages]
	}

	pace := newPacer(s.delay)
	defer pace.Close()

	var pages []Page
	for i, u := range urls {
		if ctx.Err() != nil {
			s.log.Info("crawl cancelled after %d of %d sitemap URLs", i, len(urls))
			break
		}
		s.emit(Progress{
			Status:         "crawling",
			Message:        fmt.Sprintf("Processing sitemap URL %d of %d", i+1, len(urls)),
			CurrentURL:     u,
			PagesProcessed: intPtr(i + 1),
			TotalPages:     intPtr(len(urls)),
		})

		if err := pace.Wait(ctx); err != nil {
			break
		}
		res, err := s.crawlPage(ctx, u)
		if err != nil {
			s.reportFetchFailure(u, err)
			continue
		}
		pages = append(pages, Page{URL: res.URL, Title: res.Title, Content: res.Content})
	}
	return pages, nil
}

// aggregate merges pages into one titled document. A lone page passes
// through unchanged; multiple pages are concatenated in traversal order,
// each preceded by a header naming its title and source URL.
func (s *Scraper) aggregate(seedURL string, mode Mode, pages []Page) *Result {
	if len(pages) == 1 {
		p := pages[0]
		return &Result{
			Success: true,
			Title:   p.Title,
			Content: p.Content,
			Excerpt: content.Excerpt(p.Content, 0),
			URL:     seedURL,
			Metadata: Metadata{
				PagesCount: 1,
				Mode:       string(mode),
			},
		}
	}

	var b strings.Builder
	refs := make([]PageRef, 0, len(pages))
	for _, p := range pages {
		fmt.Fprintf(&b, "\n\n## %s\n*Source: %s*\n\n%s", p.Title, p.URL, p.Content)
		refs = append(refs, PageRef{URL: p.URL, Title: p.Title})
	}
	combined := b.String()

	return &Result{
		Success: true,
		Title:   pages[0].Title,
		Content: combined,
		Excerpt: content.Excerpt(combined, 0),
		URL:     seedURL,
		Metadata: Metadata{
			PagesCount: len(pages),
			Mode:       string(mode),
			Pages:      refs,
		},
	}
}

func (s *Scraper) emit(p Progress) {
	if s.progress != nil {
		s.progress(p)
	}
}
