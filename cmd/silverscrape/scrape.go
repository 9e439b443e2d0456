package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg := crawl.RunConfig{
		Queries:   c.Query,
		StartURLs: c.URL,
		MaxItems:  c.MaxItems,
	}

	// A run with no inputs at all scrapes the default query.
	if len(cfg.Queries) == 0 && len(cfg.StartURLs) == 0 {
		cfg.Queries = []string{silverscrape.DefaultQuery}
		fmt.Fprintf(deps.Stdout, "No queries or URLs given, searching for %q\n", silverscrape.DefaultQuery)
	}

	result, err := deps.Crawler.Run(deps.Ctx, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", silverscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d product(s)", result.Emitted)
	var notes []string
	if result.Failed > 0 {
		notes = append(notes, fmt.Sprintf("%d failed", result.Failed))
	}
	if result.Skipped > 0 {
		notes = append(notes, fmt.Sprintf("%d input(s) skipped", result.Skipped))
	}
	if len(notes) > 0 {
		fmt.Fprintf(deps.Stdout, " (%s)", strings.Join(notes, ", "))
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}

// Ensure multiSink implements silverscrape.Sink.
var _ silverscrape.Sink = (multiSink)(nil)

// multiSink fans each record out to every sink. The first failure
// aborts the emission so a record is never half-stored silently.
type multiSink []silverscrape.Sink

func (m multiSink) Emit(ctx context.Context, rec *silverscrape.ProductRecord) error {
	for _, s := range m {
		if err := s.Emit(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
