package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalker/silverscrape"
)

// Detail-page selectors, machine-readable annotations first.
const (
	metaPriceSelector   = `meta[itemprop="price"], meta[property="product:price:amount"]`
	priceSelector       = `[itemprop="price"], .woocommerce-Price-amount, .price ins .amount, .price .amount, .summary .price`
	ogImageSelector     = `meta[property="og:image"]`
	galleryImgSelector  = `.woocommerce-product-gallery img, img.wp-post-image`
	skuSelector         = `[itemprop="sku"], .sku`
	availSelector       = `[itemprop="availability"]`
	descriptionSelector = `.woocommerce-product-details__short-description, [itemprop="description"], .product-short-description`
)

// Ensure ProductExtractor implements silverscrape.ProductExtractor at
// compile time.
var _ silverscrape.ProductExtractor = (*ProductExtractor)(nil)

// ProductExtractor extracts a candidate record from a product detail
// page. Every field degrades to absent independently; a page with no
// recognizable markup yields a candidate carrying only the URL.
type ProductExtractor struct{}

// NewProductExtractor creates a ProductExtractor.
func NewProductExtractor() *ProductExtractor {
	return &ProductExtractor{}
}

// ExtractProduct derives the candidate from detail-page markup.
func (e *ProductExtractor) ExtractProduct(html, pageURL string) (*silverscrape.CandidateRecord, error) {
	rec := &silverscrape.CandidateRecord{
		URL:          silverscrape.NormalizeURL(pageURL),
		Availability: silverscrape.AvailabilityUnknown,
		Source:       silverscrape.SourceDetail,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return rec, nil
	}

	rec.Name = strings.TrimSpace(doc.Find("h1").First().Text())

	e.extractPrice(doc, rec)

	if content, ok := doc.Find(ogImageSelector).First().Attr("content"); ok && content != "" {
		rec.ImageURL = content
	} else if src, ok := doc.Find(galleryImgSelector).First().Attr("src"); ok {
		rec.ImageURL = src
	}

	if sku := doc.Find(skuSelector).First(); sku.Length() > 0 {
		if content, ok := sku.Attr("content"); ok && content != "" {
			rec.SKU = content
		} else {
			rec.SKU = strings.TrimSpace(sku.Text())
		}
	}

	rec.Availability = e.extractAvailability(doc)

	if desc := doc.Find(descriptionSelector).First(); desc.Length() > 0 {
		rec.Description = silverscrape.TruncateDescription(collapseText(desc.Text()))
	}

	return rec, nil
}

// extractPrice prefers the machine-readable price annotation over the
// formatted display element, falling back to parsing the last currency
// fragment from visible price text.
func (e *ProductExtractor) extractPrice(doc *goquery.Document, rec *silverscrape.CandidateRecord) {
	if content, ok := doc.Find(metaPriceSelector).First().Attr("content"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(content), 64); err == nil {
			rec.PriceNumeric = &v
			rec.PriceDisplay = silverscrape.FormatPrice(v)
			return
		}
	}

	el := doc.Find(priceSelector).First()
	if el.Length() == 0 {
		return
	}
	if content, ok := el.Attr("content"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(content), 64); err == nil {
			rec.PriceNumeric = &v
			rec.PriceDisplay = silverscrape.FormatPrice(v)
			return
		}
	}

	text := strings.TrimSpace(el.Text())
	if strings.Count(text, "$") > 1 {
		if last := silverscrape.LastPriceFragment(text); last != "" {
			text = last
		}
	}
	if !strings.Contains(text, "$") {
		return
	}
	rec.PriceDisplay = text
	if v, ok := silverscrape.ParsePrice(text); ok {
		rec.PriceNumeric = &v
	}
}

// extractAvailability prefers the machine-readable annotation, mapped
// via the schema token table, falling back to scanning the visible
// page text for the first literal vocabulary match.
func (e *ProductExtractor) extractAvailability(doc *goquery.Document) silverscrape.Availability {
	if el := doc.Find(availSelector).First(); el.Length() > 0 {
		signal, ok := el.Attr("content")
		if !ok || signal == "" {
			signal, _ = el.Attr("href")
		}
		if signal == "" {
			signal = el.Text()
		}
		if state := silverscrape.ParseAvailability(signal); state != silverscrape.AvailabilityUnknown {
			return state
		}
	}
	return silverscrape.ParseAvailability(doc.Text())
}

func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
