package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelis/sitescribe"
	"github.com/avelis/sitescribe/fetchers"
	"github.com/avelis/sitescribe/frontier"
	"github.com/avelis/sitescribe/logger"
)

var (
	render     bool
	headless   bool
	timeout    time.Duration
	renderWait time.Duration
	delay      time.Duration
	logLevel   string
	frontierDB string
	userAgent  string
)

var rootCmd = &cobra.Command{
	Use:   "sitescribe URL [OPTIONS_JSON]",
	Short: "Turn a documentation site into one combined document",
	Long: `sitescribe fetches a seed URL and emits one combined, readable document
as newline-delimited JSON on stdout.

The seed's shape picks the crawl mode: *.txt files are fetched as a
single page, sitemap URLs are expanded, and anything else is crawled
breadth-first following internal links. The optional second argument is
a JSON object recognizing mode, maxDepth, maxPages and
followInternalOnly.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&render, "render", false, "render pages in a headless browser before extraction")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run the render browser headless")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-fetch timeout")
	rootCmd.Flags().DurationVar(&renderWait, "wait", 2*time.Second, "settle time after navigation when rendering")
	rootCmd.Flags().DurationVar(&delay, "delay", 0, "minimum delay between fetches")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "stderr log level (debug|info|warn|error)")
	rootCmd.Flags().StringVar(&frontierDB, "frontier-db", "", "spill the crawl frontier to a sqlite database at this path")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "override the request User-Agent")
}

func run(cmd *cobra.Command, args []string) error {
	emit := newEmitter(os.Stdout)

	if len(args) < 1 {
		emit.Error("URL argument required")
		os.Exit(1)
	}
	seedURL := args[0]

	opts := sitescribe.DefaultOptions()
	if len(args) > 1 {
		opts = parseOptions(args[1])
	}
	if err := opts.Validate(); err != nil {
		emit.Error(err.Error())
		os.Exit(1)
	}

	log := logger.NewZerologLogger(logger.ZerologOptions{
		Level:   logLevel,
		Console: true,
	})

	var fetcher sitescribe.Fetcher
	if render {
		chrome := fetchers.NewChromeFetcher(fetchers.ChromeOptions{
			Logger:   log,
			Headless: headless,
			WaitFor:  renderWait,
		})
		defer chrome.Close()
		fetcher = chrome
	} else {
		fetcher = fetchers.NewHTTPFetcher(fetchers.HTTPOptions{
			Logger:    log,
			Timeout:   timeout,
			UserAgent: userAgent,
		})
	}

	scraperOpts := []sitescribe.Option{
		sitescribe.WithLogger(log),
		sitescribe.WithProgress(emit.Progress),
		sitescribe.WithRequestDelay(delay),
	}
	if frontierDB != "" {
		scraperOpts = append(scraperOpts, sitescribe.WithFrontier(func() (frontier.Frontier, error) {
			return frontier.NewSQLite(frontierDB)
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sitescribe.New(fetcher, scraperOpts...).Scrape(ctx, seedURL, opts)
	if err != nil {
		if errors.Is(err, sitescribe.ErrNoContent) {
			emit.Error("No content could be extracted from the URL")
		} else {
			emit.Error(err.Error())
		}
		return nil
	}

	emit.Result(result)
	return nil
}

// parseOptions overlays a JSON options blob onto the defaults. A blob
// that fails to parse falls back to the defaults rather than failing the
// invocation.
func parseOptions(raw string) sitescribe.Options {
	opts := sitescribe.DefaultOptions()
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return sitescribe.DefaultOptions()
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
