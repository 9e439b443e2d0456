// Package fs writes scraped records to the filesystem as NDJSON.
package fs

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/awalker/silverscrape"
)

// Ensure Writer implements silverscrape.Sink at compile time.
var _ silverscrape.Sink = (*Writer)(nil)

// Writer emits records as newline-delimited JSON, one object per
// line, in emission order. Safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer emitting to w. The caller retains
// ownership of w and closes it after the run.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Emit appends the record as one JSON line.
func (w *Writer) Emit(ctx context.Context, rec *silverscrape.ProductRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(rec)
}
