// Package slog provides logging decorators for silverscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awalker/silverscrape"
)

// Ensure LoggingFetcher implements silverscrape.Fetcher.
var _ silverscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   silverscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next silverscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging status, size and
// duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*silverscrape.FetchResult, error) {
	begin := time.Now()
	res, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	f.logger.Debug("fetch",
		"url", url,
		"status", res.StatusCode,
		"bytes", len(res.Body),
		"duration", time.Since(begin),
	)
	return res, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
