package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/awalker/silverscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func testRecord(url string) *silverscrape.ProductRecord {
	return &silverscrape.ProductRecord{
		URL:          url,
		Name:         "1 oz American Silver Eagle",
		PriceDisplay: "$39.99",
		PriceNumeric: fptr(39.99),
		ImageURL:     "https://www.silver.com/images/eagle.jpg",
		SKU:          "ASE-1OZ",
		Availability: silverscrape.AvailabilityInStock,
		Description:  "Brilliant uncirculated coin.",
		ContentHash:  "6ba1c2e89f0d3a47",
		ScrapedAt:    time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestProductService_Emit(t *testing.T) {
	t.Parallel()

	t.Run("stores record with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://www.silver.com/1-oz-silver-eagle")
		require.NoError(t, svc.Emit(ctx, rec))
		assert.NotEmpty(t, rec.ID)

		got, err := svc.FindProductByURL(ctx, rec.URL)
		require.NoError(t, err)
		assert.Equal(t, rec.Name, got.Name)
		assert.Equal(t, rec.PriceDisplay, got.PriceDisplay)
		require.NotNil(t, got.PriceNumeric)
		assert.Equal(t, 39.99, *got.PriceNumeric)
		assert.Equal(t, silverscrape.AvailabilityInStock, got.Availability)
		assert.Equal(t, rec.ScrapedAt, got.ScrapedAt)
	})

	t.Run("upserts by URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://www.silver.com/1-oz-silver-eagle")
		require.NoError(t, svc.Emit(ctx, rec))

		updated := testRecord(rec.URL)
		updated.PriceDisplay = "$41.25"
		updated.PriceNumeric = fptr(41.25)
		require.NoError(t, svc.Emit(ctx, updated))

		recs, err := svc.FindProducts(ctx, silverscrape.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "$41.25", recs[0].PriceDisplay)
	})

	t.Run("rejects record without URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)

		err := svc.Emit(context.Background(), &silverscrape.ProductRecord{Name: "no url"})
		require.Error(t, err)
		assert.Equal(t, silverscrape.EINVALID, silverscrape.ErrorCode(err))
	})

	t.Run("stores record with absent numeric price", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://www.silver.com/call-for-price-coin")
		rec.PriceDisplay = ""
		rec.PriceNumeric = nil
		require.NoError(t, svc.Emit(ctx, rec))

		got, err := svc.FindProductByURL(ctx, rec.URL)
		require.NoError(t, err)
		assert.Nil(t, got.PriceNumeric)
	})
}

func TestProductService_FindProductByURL(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)

		_, err := svc.FindProductByURL(context.Background(), "https://www.silver.com/nope")
		require.Error(t, err)
		assert.Equal(t, silverscrape.ENOTFOUND, silverscrape.ErrorCode(err))
	})

	t.Run("normalizes trailing slash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://www.silver.com/1-oz-silver-eagle")
		require.NoError(t, svc.Emit(ctx, rec))

		got, err := svc.FindProductByURL(ctx, "https://www.silver.com/1-oz-silver-eagle/")
		require.NoError(t, err)
		assert.Equal(t, rec.URL, got.URL)
	})
}

func TestProductService_FindProducts(t *testing.T) {
	t.Parallel()

	t.Run("filters by availability", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		inStock := testRecord("https://www.silver.com/in-stock-coin")
		require.NoError(t, svc.Emit(ctx, inStock))

		outOfStock := testRecord("https://www.silver.com/sold-out-coin")
		outOfStock.Availability = silverscrape.AvailabilityOutOfStock
		require.NoError(t, svc.Emit(ctx, outOfStock))

		avail := silverscrape.AvailabilityOutOfStock
		recs, err := svc.FindProducts(ctx, silverscrape.ProductFilter{Availability: &avail})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, outOfStock.URL, recs[0].URL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		for _, slug := range []string{"a", "b", "c"} {
			rec := testRecord("https://www.silver.com/coin-" + slug)
			require.NoError(t, svc.Emit(ctx, rec))
		}

		recs, err := svc.FindProducts(ctx, silverscrape.ProductFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "https://www.silver.com/coin-b", recs[0].URL)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()

		for _, slug := range []string{"a", "b", "c"} {
			rec := testRecord("https://www.silver.com/coin-" + slug)
			require.NoError(t, svc.Emit(ctx, rec))
		}

		recs, err := svc.FindProducts(ctx, silverscrape.ProductFilter{Offset: 1})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "https://www.silver.com/coin-b", recs[0].URL)
	})
}
