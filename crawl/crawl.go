// Package crawl provides the crawl orchestrator. It consumes
// classified inputs (search queries and start URLs), drives
// fetch/extract/reconcile/emit cycles through injected collaborators,
// and enforces the run-wide quota and the emitted-URL dedup set.
package crawl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/bloom"
	"golang.org/x/sync/errgroup"
)

// Pagination loop-guard filter sizing. A run visits at most a few
// thousand listing pages; 0.1% false positives at worst end one task
// a page early.
const (
	visitedPagesExpected = 4096
	visitedPagesFPRate   = 0.001
)

// Crawler orchestrates one scraping run. All collaborators are
// injected; the Crawler itself holds no network or storage state.
type Crawler struct {
	Site     *silverscrape.Site
	Fetcher  silverscrape.Fetcher
	Search   silverscrape.SearchService
	Listings silverscrape.ListingExtractor
	Products silverscrape.ProductExtractor
	Pager    silverscrape.Pager

	Sink    silverscrape.Sink
	Limiter silverscrape.Limiter
	Logger  *slog.Logger

	// PageSize is the search API page size. Defaults to
	// silverscrape.DefaultPageSize.
	PageSize int

	// Concurrency bounds how many tasks run at once. Values <= 1 run
	// tasks sequentially in input order.
	Concurrency int
}

// RunConfig is the collaborator-provided run configuration. The core
// does not parse or default it beyond treating MaxItems <= 0 as
// already satisfied.
type RunConfig struct {
	Queries   []string
	StartURLs []string
	MaxItems  int
}

// Result summarizes a run.
type Result struct {
	// Emitted is the number of records handed to the Sink.
	Emitted int
	// Failed counts claimed candidates lost to fetch or emit
	// failures.
	Failed int
	// Skipped counts inputs discarded at classification.
	Skipped int
	// PagesVisited is the approximate number of distinct listing
	// pages walked during the run.
	PagesVisited int
}

// task is one unit of sequential work: a search query or a start URL
// with its classification.
type task struct {
	kind  silverscrape.InputKind
	query string
	url   string
}

// Run executes the configured queries and start URLs until both are
// exhausted or the quota is reached. Individual task failures are
// logged and never abort the run.
func (c *Crawler) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	logger := c.logger()
	result := &Result{}

	st := NewState(cfg.MaxItems)

	// One guard for the whole run. Pagination cycles that the same-URL
	// check in the pagination walker cannot see (page A linking "next"
	// to page B and back) break on it.
	guard := bloom.NewVisitedSet(visitedPagesExpected, visitedPagesFPRate)

	tasks := c.plan(cfg, result, logger)
	logger.Info("starting run",
		"tasks", len(tasks),
		"quota", cfg.MaxItems,
	)

	if cfg.MaxItems <= 0 {
		logger.Warn("quota already satisfied, nothing to do", "quota", cfg.MaxItems)
		return result, nil
	}

	if c.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.Concurrency)
		for _, t := range tasks {
			t := t
			g.Go(func() error {
				c.runTask(gctx, st, guard, t, logger)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, t := range tasks {
			if st.Exhausted() {
				break
			}
			c.runTask(ctx, st, guard, t, logger)
		}
	}

	result.Emitted = st.Emitted()
	result.Failed = st.Failed()
	result.PagesVisited = guard.Pages()
	logger.Info("run complete",
		"emitted", result.Emitted,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"pages", result.PagesVisited,
	)
	return result, nil
}

// plan classifies the configured inputs into tasks. Off-site and
// unusable inputs are discarded with a warning; an unclassifiable
// start URL degrades to a listing task rather than failing.
func (c *Crawler) plan(cfg RunConfig, result *Result, logger *slog.Logger) []task {
	var tasks []task

	for _, q := range cfg.Queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		tasks = append(tasks, task{kind: silverscrape.KindSearch, query: q})
	}

	for _, raw := range cfg.StartURLs {
		in, err := c.Site.Classify(raw)
		if err != nil {
			logger.Warn("skipping input URL", "url", raw, "err", err)
			result.Skipped++
			continue
		}
		switch in.Kind {
		case silverscrape.KindSearch:
			if in.Query == "" {
				logger.Warn("search URL without a query, skipping", "url", raw)
				result.Skipped++
				continue
			}
			tasks = append(tasks, task{kind: silverscrape.KindSearch, query: in.Query})
		case silverscrape.KindProduct:
			tasks = append(tasks, task{kind: silverscrape.KindProduct, url: raw})
		case silverscrape.KindListing:
			tasks = append(tasks, task{kind: silverscrape.KindListing, url: raw})
		default:
			logger.Warn("could not classify URL, trying as listing", "url", raw)
			tasks = append(tasks, task{kind: silverscrape.KindListing, url: raw})
		}
	}

	return tasks
}

func (c *Crawler) runTask(ctx context.Context, st *State, guard *bloom.VisitedSet, t task, logger *slog.Logger) {
	switch t.kind {
	case silverscrape.KindSearch:
		c.runSearch(ctx, st, t.query, logger.With("task", "search", "query", t.query))
	case silverscrape.KindProduct:
		c.runProduct(ctx, st, t.url, logger.With("task", "product"))
	default:
		c.runListing(ctx, st, guard, t.url, logger.With("task", "listing"))
	}
}

// runSearch pages through the search API, fetching a detail page for
// every candidate. A failed or non-success detail fetch falls back to
// emitting the API candidate as-is; a detail page is never required
// for emission.
func (c *Crawler) runSearch(ctx context.Context, st *State, query string, logger *slog.Logger) {
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = silverscrape.DefaultPageSize
	}

	for page := 1; ; page++ {
		size := pageSize
		if r := st.Remaining(); r < size {
			size = r
		}
		if size <= 0 {
			return
		}

		res, err := c.Search.Search(ctx, query, size, page)
		if err != nil {
			// Treated as zero results; the task's pagination ends.
			logger.Warn("search failed", "page", page, "err", err)
			return
		}
		if len(res.Records) == 0 {
			return
		}
		logger.Info("search results", "page", page, "results", len(res.Records), "total", res.Total)

		for i := range res.Records {
			if st.Exhausted() {
				return
			}
			cand := res.Records[i]
			u := silverscrape.NormalizeURL(cand.URL)
			if !st.Claim(u) {
				continue
			}
			cand.URL = u

			detail, err := c.fetchDetail(ctx, u)
			if err != nil {
				logger.Warn("detail fetch failed, using API data", "url", u, "err", err)
			} else if detail == nil {
				logger.Warn("detail page unavailable, using API data", "url", u)
			}
			c.emit(ctx, st, silverscrape.Reconcile(detail, &cand), logger)
		}
	}
}

// runListing walks a listing page chain: extract candidates, fetch
// each candidate's detail page, emit the reconciled record, follow the
// next-page link. A transport failure on the listing page itself ends
// the task; one on a detail page loses only that candidate.
func (c *Crawler) runListing(ctx context.Context, st *State, guard *bloom.VisitedSet, startURL string, logger *slog.Logger) {
	current := startURL
	for page := 1; current != "" && !st.Exhausted(); page++ {
		if !guard.Visit(current) {
			logger.Warn("listing page already visited, stopping", "url", current)
			return
		}

		res, err := c.fetch(ctx, current)
		if err != nil {
			logger.Error("listing fetch failed", "url", current, "err", err)
			return
		}
		if !res.OK() {
			logger.Warn("listing returned non-success status", "url", current, "status", res.StatusCode)
			return
		}

		cands, err := c.Listings.ExtractListing(res.Body, current)
		if err != nil {
			logger.Error("listing extraction failed", "url", current, "err", err)
			return
		}
		logger.Info("listing page", "url", current, "page", page, "candidates", len(cands))

		for i := range cands {
			if st.Exhausted() {
				return
			}
			cand := cands[i]
			u := silverscrape.NormalizeURL(cand.URL)
			if !st.Claim(u) {
				continue
			}
			cand.URL = u

			detail, err := c.fetchDetail(ctx, u)
			if err != nil {
				// Without API data to fall back on, a transport
				// failure loses this candidate.
				logger.Warn("detail fetch failed, candidate lost", "url", u, "err", err)
				st.Release()
				continue
			}
			if detail == nil {
				logger.Warn("detail page unavailable, using listing data", "url", u)
			}
			c.emit(ctx, st, silverscrape.Reconcile(detail, &cand), logger)
		}

		next, ok := c.Pager.NextPageURL(res.Body, current)
		if !ok {
			return
		}
		current = next
	}
}

// runProduct is a single fetch-extract-emit cycle. On failure the task
// ends having emitted nothing, without aborting the run.
func (c *Crawler) runProduct(ctx context.Context, st *State, rawURL string, logger *slog.Logger) {
	if st.Exhausted() {
		return
	}
	u := silverscrape.NormalizeURL(rawURL)
	if !st.Claim(u) {
		return
	}

	detail, err := c.fetchDetail(ctx, u)
	if err != nil {
		logger.Error("product fetch failed", "url", u, "err", err)
		st.Release()
		return
	}
	if detail == nil {
		st.Release()
		return
	}

	c.emit(ctx, st, silverscrape.Reconcile(detail, nil), logger)
}

// fetchDetail fetches and extracts one product detail page. It
// returns an error on transport failure, (nil, nil) on a non-success
// status, and the extracted candidate otherwise.
func (c *Crawler) fetchDetail(ctx context.Context, url string) (*silverscrape.CandidateRecord, error) {
	res, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		c.logger().Warn("product page returned non-success status", "url", url, "status", res.StatusCode)
		return nil, nil
	}
	return c.Products.ExtractProduct(res.Body, url)
}

// fetch applies the politeness limiter before dispatching to the
// Fetcher.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (*silverscrape.FetchResult, error) {
	if c.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}
	return c.Fetcher.Fetch(ctx, rawURL)
}

// emit stamps the record and hands it to the Sink, converting the
// claimed slot into an emitted one.
func (c *Crawler) emit(ctx context.Context, st *State, rec *silverscrape.ProductRecord, logger *slog.Logger) {
	rec.ScrapedAt = time.Now().UTC()
	rec.ContentHash = RecordHash(rec)

	if err := c.Sink.Emit(ctx, rec); err != nil {
		logger.Error("emit failed", "url", rec.URL, "err", err)
		st.Release()
		return
	}
	st.Complete()
	logger.Info("scraped product", "url", rec.URL, "emitted", st.Emitted(), "quota", st.Quota())
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

