package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/crawl"
	"github.com/awalker/silverscrape/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Site     *silverscrape.Site
	DB       *sqlite.DB
	Products silverscrape.ProductService
	Crawler  *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape products from search queries and catalog URLs"`
	Classify ClassifyCmd `cmd:"" help:"Show how input URLs would be classified"`
	List     ListCmd     `cmd:"" help:"List previously scraped products"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Query       []string      `short:"q" help:"Search query (repeatable)"`
	URL         []string      `short:"u" help:"Start URL: search, listing or product page (repeatable)"`
	MaxItems    int           `short:"n" default:"10" help:"Maximum number of products to scrape"`
	PageSize    int           `default:"48" help:"Search API page size"`
	Out         string        `short:"o" help:"Write records as NDJSON to this file ('-' for stdout)"`
	Browser     bool          `help:"Fetch pages with a headless browser instead of plain HTTP"`
	Proxy       string        `help:"Proxy URL for HTTP fetching"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain"`
	Timeout     time.Duration `default:"30s" help:"Timeout per network request"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent crawl tasks"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URLs []string `arg:"" help:"URLs to classify"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Availability string `short:"a" help:"Filter by availability state (e.g. 'In Stock')"`
	Limit        int    `short:"l" default:"50" help:"Maximum rows to show"`
	Full         bool   `help:"Show all fields including description"`
}
