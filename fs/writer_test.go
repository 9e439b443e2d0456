package fs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Emit(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSON object per line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := fs.NewWriter(&buf)
		ctx := context.Background()

		price := 39.99
		require.NoError(t, w.Emit(ctx, &silverscrape.ProductRecord{
			URL:          "https://www.silver.com/1-oz-silver-eagle",
			Name:         "1 oz American Silver Eagle",
			PriceDisplay: "$39.99",
			PriceNumeric: &price,
			Availability: silverscrape.AvailabilityInStock,
			ScrapedAt:    time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		}))
		require.NoError(t, w.Emit(ctx, &silverscrape.ProductRecord{
			URL:          "https://www.silver.com/10-oz-silver-bar",
			Name:         "10 oz Silver Bar",
			Availability: silverscrape.AvailabilityUnknown,
		}))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)

		var first map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "https://www.silver.com/1-oz-silver-eagle", first["url"])
		assert.Equal(t, "$39.99", first["price"])
		assert.Equal(t, 39.99, first["priceNumeric"])
		assert.Equal(t, "In Stock", first["availability"])
	})

	t.Run("omits absent optional fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := fs.NewWriter(&buf)

		require.NoError(t, w.Emit(context.Background(), &silverscrape.ProductRecord{
			URL:          "https://www.silver.com/call-for-price-coin",
			Name:         "Rare Coin",
			Availability: silverscrape.AvailabilityUnknown,
		}))

		var obj map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
		assert.NotContains(t, obj, "price")
		assert.NotContains(t, obj, "priceNumeric")
		assert.NotContains(t, obj, "sku")
	})

	t.Run("rejects record without URL", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := fs.NewWriter(&buf)

		err := w.Emit(context.Background(), &silverscrape.ProductRecord{Name: "no url"})
		require.Error(t, err)
		assert.Equal(t, silverscrape.EINVALID, silverscrape.ErrorCode(err))
		assert.Zero(t, buf.Len())
	})
}
