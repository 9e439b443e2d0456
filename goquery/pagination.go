package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalker/silverscrape"
)

// nextPageSelector covers the known "next page" navigation anchors on
// the site's listing pages.
const nextPageSelector = ".woocommerce-pagination a.next, a.next.page-numbers, .pagination a.next"

// Ensure Pagination implements silverscrape.Pager at compile time.
var _ silverscrape.Pager = (*Pagination)(nil)

// Pagination walks listing pagination markup.
type Pagination struct{}

// NewPagination creates a Pagination walker.
func NewPagination() *Pagination {
	return &Pagination{}
}

// NextPageURL resolves the next-page anchor's href against currentURL.
// The bool result is false when no anchor exists or the resolved URL
// equals currentURL, which guards against infinite loops on malformed
// pagination markup.
func (p *Pagination) NextPageURL(html, currentURL string) (string, bool) {
	base, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	href, ok := doc.Find(nextPageSelector).First().Attr("href")
	if !ok || href == "" {
		return "", false
	}

	next := resolveRef(base, href)
	if next == "" || next == currentURL {
		return "", false
	}
	return next, true
}
