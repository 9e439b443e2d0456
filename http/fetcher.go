// Package http provides the HTTP-based implementation of
// silverscrape.Fetcher. It carries a cookie jar and a browser-like
// identity so the catalog site serves it the same markup it serves a
// shopper.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/awalker/silverscrape"
)

// DefaultFetchTimeout is the default timeout for one page fetch.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the fetcher to the site.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements silverscrape.Fetcher at compile time.
var _ silverscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves catalog pages over HTTP. Non-success statuses are
// reported in the result, not as errors; the orchestrator decides what
// a 404 or 502 means for the task at hand.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	referer   string
	proxyURL  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithProxy routes requests through the given proxy URL. The core
// never rotates or repairs the proxy; failures surface as ordinary
// fetch failures.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) { f.proxyURL = proxyURL }
}

// NewFetcher creates an HTTP Fetcher with a fresh cookie jar.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if f.proxyURL != "" {
		proxy, err := url.Parse(f.proxyURL)
		if err != nil {
			return nil, silverscrape.Errorf(silverscrape.EINVALID, "invalid proxy URL: %v", err)
		}
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(proxy)
		transport = t
	}

	f.client = &http.Client{
		Jar:       jar,
		Timeout:   f.timeout,
		Transport: transport,
	}
	return f, nil
}

// WarmUp fetches the site homepage to collect session cookies before
// crawling starts, and makes subsequent requests carry the homepage as
// Referer. A non-success status is reported to the caller so it can be
// logged; scraping may still proceed.
func (f *Fetcher) WarmUp(ctx context.Context, homeURL string) (int, error) {
	res, err := f.Fetch(ctx, homeURL)
	if err != nil {
		return 0, err
	}
	f.referer = homeURL
	return res.StatusCode, nil
}

// Fetch retrieves the URL and returns its status and body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*silverscrape.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return &silverscrape.FetchResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// Close releases resources. The cookie jar and client need no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}
