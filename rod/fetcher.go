// Package rod provides a browser-automation implementation of
// silverscrape.Fetcher for runs where the catalog site serves a
// JavaScript challenge to plain HTTP clients.
package rod

import (
	"context"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements silverscrape.Fetcher at compile time.
var _ silverscrape.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page fetch, navigation and
// rendering included.
const DefaultFetchTimeout = 30 * time.Second

// documentEventTimeout bounds the wait for the document network
// response. Some navigations (cached pages, about: URLs) never emit
// one, so the wait must not block the whole fetch.
const documentEventTimeout = 5 * time.Second

// Fetcher retrieves rendered HTML using headless Chrome. It is safe
// for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-fetch timeout. Zero or negative values fall
// back to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called
// when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	f := &Fetcher{browser: browser, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML along with
// the navigation response status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*silverscrape.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	// Capture the document response status before navigating; the
	// rendered DOM alone cannot tell a catalog page from an error page
	// the theme styles nicely. The wait runs on its own deadline so a
	// navigation that never produces the event cannot stall the fetch.
	eventCtx, stopEvents := context.WithTimeout(ctx, documentEventTimeout)
	defer stopEvents()

	status := 0
	wait := page.Context(eventCtx).EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			status = int(e.Response.Status)
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	wait()
	stopEvents()

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	if status == 0 {
		status = 200
	}
	return &silverscrape.FetchResult{StatusCode: status, Body: html}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
