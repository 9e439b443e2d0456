package slog

import (
	"context"
	"log/slog"

	"github.com/awalker/silverscrape"
)

// Ensure LoggingSink implements silverscrape.Sink.
var _ silverscrape.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with per-record logging.
type LoggingSink struct {
	next   silverscrape.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next silverscrape.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Emit delegates to the wrapped sink, logging the emitted record's
// identifying fields.
func (s *LoggingSink) Emit(ctx context.Context, rec *silverscrape.ProductRecord) error {
	if err := s.next.Emit(ctx, rec); err != nil {
		s.logger.Error("emit", "url", rec.URL, "err", err)
		return err
	}

	s.logger.Debug("emit",
		"url", rec.URL,
		"name", rec.Name,
		"price", rec.PriceDisplay,
		"availability", string(rec.Availability),
	)
	return nil
}
