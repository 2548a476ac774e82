package sitescribe

import (
	"context"
	"time"
)

// pacer holds the crawl to a fixed inter-request delay. A zero delay
// yields a pacer that never waits.
type pacer struct {
	ticker *time.Ticker
}

func newPacer(delay time.Duration) *pacer {
	if delay <= 0 {
		return &pacer{}
	}
	return &pacer{ticker: time.NewTicker(delay)}
}

func (p *pacer) Wait(ctx context.Context) error {
	if p.ticker == nil {
		return nil
	}
	select {
	case <-p.ticker.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pacer) Close() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
