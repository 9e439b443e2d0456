package mock

import (
	"context"

	"github.com/awalker/silverscrape"
)

var _ silverscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of silverscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*silverscrape.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*silverscrape.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ silverscrape.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of silverscrape.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *Limiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
