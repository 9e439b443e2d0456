package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/crawl"
	scrapefs "github.com/awalker/silverscrape/fs"
	"github.com/awalker/silverscrape/goquery"
	scrapehttp "github.com/awalker/silverscrape/http"
	"github.com/awalker/silverscrape/rod"
	"github.com/awalker/silverscrape/searchspring"
	scrapeslog "github.com/awalker/silverscrape/slog"
	"github.com/awalker/silverscrape/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProductService silverscrape.ProductService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Site:   silverscrape.DefaultSite(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("silverscrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'silverscrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Dispatch on the command kong resolved, not on the raw first
	// argument, which may be a global flag such as -v.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Classify needs no database or network.
	if cmd == "classify" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SILVERSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	products := sqlite.NewProductService(m.DB)
	m.ProductService = products
	deps.DB = m.DB
	deps.Products = products

	if cmd == "scrape" {
		fetcher, cleanup, err := buildFetcher(ctx, deps, &cli.Scrape)
		if err != nil {
			return err
		}
		defer cleanup()

		sink, closeSink, err := buildSink(deps, products, &cli.Scrape)
		if err != nil {
			return err
		}
		defer closeSink()

		limiter := crawl.NewDomainLimiter(cli.Scrape.RPS)

		search := scrapeslog.NewLoggingSearchService(
			searchspring.NewClient(deps.Site,
				searchspring.WithLimiter(limiter),
				searchspring.WithTimeout(cli.Scrape.Timeout),
			),
			deps.Logger,
		)

		deps.Crawler = &crawl.Crawler{
			Site:        deps.Site,
			Fetcher:     fetcher,
			Search:      search,
			Listings:    goquery.NewListingExtractor(deps.Site),
			Products:    goquery.NewProductExtractor(),
			Pager:       goquery.NewPagination(),
			Sink:        sink,
			Limiter:     limiter,
			Logger:      deps.Logger,
			PageSize:    cli.Scrape.PageSize,
			Concurrency: cli.Scrape.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// buildFetcher constructs the page fetcher for a scrape run, warmed up
// against the site home page so subsequent requests carry its cookies.
func buildFetcher(ctx context.Context, deps *Dependencies, cmd *ScrapeCmd) (silverscrape.Fetcher, func(), error) {
	var fetcher silverscrape.Fetcher

	if cmd.Browser {
		f, err := rod.NewFetcher(rod.WithTimeout(cmd.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		opts := []scrapehttp.Option{scrapehttp.WithTimeout(cmd.Timeout)}
		if cmd.Proxy != "" {
			opts = append(opts, scrapehttp.WithProxy(cmd.Proxy))
		}
		f, err := scrapehttp.NewFetcher(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
		}
		if status, err := f.WarmUp(ctx, deps.Site.BaseURL+"/"); err != nil {
			deps.Logger.Warn("warm-up request failed", "err", err)
		} else {
			deps.Logger.Debug("warm-up request", "status", status)
		}
		fetcher = f
	}

	logged := scrapeslog.NewLoggingFetcher(fetcher, deps.Logger)
	return logged, func() { logged.Close() }, nil
}

// buildSink assembles the emission pipeline: always the database, plus
// an NDJSON stream when --out is given.
func buildSink(deps *Dependencies, products *sqlite.ProductService, cmd *ScrapeCmd) (silverscrape.Sink, func(), error) {
	sinks := []silverscrape.Sink{products}
	cleanup := func() {}

	if cmd.Out != "" {
		w, c, err := openOutput(deps.Stdout, cmd.Out)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, scrapefs.NewWriter(w))
		cleanup = c
	}

	var sink silverscrape.Sink = multiSink(sinks)
	return scrapeslog.NewLoggingSink(sink, deps.Logger), cleanup, nil
}

// openOutput resolves the --out target. "-" means stdout.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SILVERSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "silverscrape.db"
	}
	dir := filepath.Join(home, ".silverscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "silverscrape.db")
}
