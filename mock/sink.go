package mock

import (
	"context"

	"github.com/awalker/silverscrape"
)

var _ silverscrape.Sink = (*Sink)(nil)

// Sink is a mock implementation of silverscrape.Sink. When EmitFn is
// nil it records emitted records in order, which is what most
// orchestrator tests want.
type Sink struct {
	EmitFn  func(ctx context.Context, rec *silverscrape.ProductRecord) error
	Records []*silverscrape.ProductRecord
}

func (s *Sink) Emit(ctx context.Context, rec *silverscrape.ProductRecord) error {
	if s.EmitFn != nil {
		return s.EmitFn(ctx, rec)
	}
	s.Records = append(s.Records, rec)
	return nil
}
