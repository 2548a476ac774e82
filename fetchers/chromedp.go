package fetchers

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/avelis/sitescribe"
	"github.com/avelis/sitescribe/logger"
)

// ChromeOptions configures a ChromeFetcher.
type ChromeOptions struct {
	Logger   logger.Logger
	Headless bool
	// WaitFor pauses after navigation so client-side rendering settles.
	WaitFor time.Duration
}

// ChromeFetcher renders pages in a headless browser before extraction,
// for sites that build their content with JavaScript. The browser is
// started lazily on first fetch and shared across fetches; each fetch
// runs in its own tab.
type ChromeFetcher struct {
	logger   logger.Logger
	headless bool
	waitFor  time.Duration

	initOnce sync.Once
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewChromeFetcher builds a browser-backed page fetcher.
func NewChromeFetcher(opts ChromeOptions) *ChromeFetcher {
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	return &ChromeFetcher{
		logger:   opts.Logger,
		headless: opts.Headless,
		waitFor:  opts.WaitFor,
	}
}

func (f *ChromeFetcher) init() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.headless),
	)
	f.allocCtx, f.cancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Fetch navigates to pageURL in a fresh tab and extracts content from the
// rendered DOM.
func (f *ChromeFetcher) Fetch(ctx context.Context, pageURL string) (*sitescribe.FetchResult, error) {
	f.initOnce.Do(f.init)
	f.logger.Debug("rendering %s", pageURL)

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()

	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}

	actions := []chromedp.Action{chromedp.Navigate(pageURL)}
	if f.waitFor > 0 {
		actions = append(actions, chromedp.Sleep(f.waitFor))
	}
	var rendered string
	actions = append(actions, chromedp.OuterHTML("html", &rendered))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	title, markdown, links, err := extractPage([]byte(rendered), parsed)
	if err != nil {
		return nil, err
	}

	return &sitescribe.FetchResult{
		URL:     pageURL,
		Title:   title,
		Content: markdown,
		Links:   links,
	}, nil
}

// Close shuts the shared browser down.
func (f *ChromeFetcher) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}
