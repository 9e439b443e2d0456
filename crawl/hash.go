package crawl

import (
	"encoding/hex"
	"strings"

	"github.com/awalker/silverscrape"
	"github.com/cespare/xxhash/v2"
)

// RecordHash fingerprints the descriptive fields of a record using
// xxhash. Stored alongside emitted records, it lets consumers compare
// runs without diffing whole records.
func RecordHash(rec *silverscrape.ProductRecord) string {
	fields := []string{
		rec.URL,
		rec.Name,
		rec.PriceDisplay,
		rec.ImageURL,
		rec.SKU,
		string(rec.Availability),
		rec.Description,
	}
	h := xxhash.Sum64String(strings.Join(fields, "\x1f"))

	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
