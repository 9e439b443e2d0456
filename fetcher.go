package silverscrape

import "context"

// FetchResult is the transport-level outcome of one page fetch. The
// core never inspects transport detail beyond status code and body.
type FetchResult struct {
	StatusCode int
	Body       string
}

// OK reports whether the fetch completed with a success status.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves pages from the catalog site. A non-success status
// is returned as a result, not an error; errors are reserved for
// transport failures (timeouts, connection errors).
type Fetcher interface {
	// Fetch retrieves the URL. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases transport resources. Must be called when the
	// Fetcher is no longer needed.
	Close() error
}

// Limiter provides per-domain politeness rate limiting.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the
	// domain. Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
