//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements silverscrape.Fetcher.
var _ silverscrape.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_RenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1 class="product-title">1 oz Silver Round</h1></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Contains(t, res.Body, "1 oz Silver Round")
}

func TestFetcher_Fetch_NotFoundStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 404, res.StatusCode)
	assert.False(t, res.OK())
}

// about: navigations emit no document network response, so the status
// wait must give up on its own and fall back to a 200 default instead
// of blocking the fetch forever.
func TestFetcher_Fetch_NoDocumentResponseFallsBackTo200(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	res, err := fetcher.Fetch(ctx, "about:blank")
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Less(t, time.Since(start), 15*time.Second, "status wait should expire well before the fetch timeout")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // Never respond
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err = fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestFetcher_Fetch_TimeoutOption(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // Never respond
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithTimeout(500 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	start := time.Now()
	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second, "fetch should fail at the configured timeout")
}
