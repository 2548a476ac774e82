package sitescribe

import (
	"context"
	"fmt"

	"github.com/avelis/sitescribe/frontier"
	"github.com/avelis/sitescribe/urlutil"
)

// crawlRecursive is the breadth-first traversal engine. The frontier is
// FIFO, so every depth-d page is processed before any depth-(d+1) page
// discovered from it. A URL joins the visited set when it is popped for
// processing, not when it is discovered; duplicate frontier entries are
// tolerated and collapse at pop time. pagesProcessed counts every fetch
// attempt and is capped by MaxPages, which bounds the loop.
func (s *Scraper) crawlRecursive(ctx context.Context, seedURL string, opts Options) ([]Page, error) {
	f, err := s.newFrontier()
	if err != nil {
		return nil, fmt.Errorf("failed to create frontier: %w", err)
	}
	defer f.Close()

	policy := s.policy
	if policy == nil {
		policy = PolicyAllowAll
		if opts.FollowInternalOnly {
			policy = PolicySameHost
		}
	}

	if err := f.Push(frontier.Entry{URL: urlutil.Normalize(seedURL)}); err != nil {
		return nil, fmt.Errorf("failed to seed frontier: %w", err)
	}

	pace := newPacer(s.delay)
	defer pace.Close()

	var results []Page
	pagesProcessed := 0

	for pagesProcessed < opts.MaxPages {
		if ctx.Err() != nil {
			s.log.Info("crawl cancelled after %d pages, returning partial results", pagesProcessed)
			break
		}

		e, ok, err := f.Pop()
		if err != nil {
			return nil, fmt.Errorf("frontier pop: %w", err)
		}
		if !ok {
			break
		}

		seen, err := f.Visited(e.URL)
		if err != nil {
			return nil, fmt.Errorf("frontier visited check: %w", err)
		}
		if seen || e.Depth > opts.MaxDepth {
			continue
		}

		if err := f.MarkVisited(e.URL); err != nil {
			return nil, fmt.Errorf("frontier mark visited: %w", err)
		}
		pagesProcessed++

		queued, err := f.Len()
		if err != nil {
			return nil, fmt.Errorf("frontier len: %w", err)
		}
		s.emit(Progress{
			Status:         "crawling",
			Message:        fmt.Sprintf("Processing page %d of max %d", pagesProcessed, opts.MaxPages),
			CurrentURL:     e.URL,
			PagesProcessed: intPtr(pagesProcessed),
			TotalPages:     intPtr(queued + pagesProcessed),
			Depth:          intPtr(e.Depth),
		})

		if err := pace.Wait(ctx); err != nil {
			break
		}
		res, err := s.crawlPage(ctx, e.URL)
		if err != nil {
			// failed pages contribute no links and are not retried
			s.reportFetchFailure(e.URL, err)
			continue
		}

		results = append(results, Page{
			URL:     res.URL,
			Title:   res.Title,
			Content: res.Content,
			Depth:   e.Depth,
		})

		if e.Depth >= opts.MaxDepth {
			continue
		}
		for _, link := range res.Links {
			normalized := urlutil.Normalize(link)
			seen, err := f.Visited(normalized)
			if err != nil {
				return nil, fmt.Errorf("frontier visited check: %w", err)
			}
			if seen || !policy.ShouldFollow(seedURL, normalized) {
				continue
			}
			if err := f.Push(frontier.Entry{URL: normalized, Depth: e.Depth + 1}); err != nil {
				return nil, fmt.Errorf("frontier push: %w", err)
			}
		}
	}

	return results, nil
}
