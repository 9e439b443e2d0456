package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awalker/silverscrape"
)

// Ensure LoggingSearchService implements silverscrape.SearchService.
var _ silverscrape.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with per-query logging.
type LoggingSearchService struct {
	next   silverscrape.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next silverscrape.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service, logging result counts and
// duration.
func (s *LoggingSearchService) Search(ctx context.Context, query string, pageSize, page int) (*silverscrape.SearchResult, error) {
	begin := time.Now()
	res, err := s.next.Search(ctx, query, pageSize, page)
	if err != nil {
		s.logger.Error("search",
			"query", query,
			"page", page,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	s.logger.Debug("search",
		"query", query,
		"page", page,
		"results", len(res.Records),
		"total", res.Total,
		"duration", time.Since(begin),
	)
	return res, nil
}
