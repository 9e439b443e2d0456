package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/awalker/silverscrape"
	main "github.com/awalker/silverscrape/cmd/silverscrape"
	"github.com/awalker/silverscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdList(t *testing.T) {
	t.Parallel()

	t.Run("prints stored products", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Products: &mock.ProductService{
				FindProductsFn: func(ctx context.Context, filter silverscrape.ProductFilter) ([]*silverscrape.ProductRecord, error) {
					return []*silverscrape.ProductRecord{
						{
							URL:          "https://www.silver.com/1-oz-silver-eagle",
							Name:         "1 oz American Silver Eagle",
							PriceDisplay: "$39.99",
							Availability: silverscrape.AvailabilityInStock,
						},
					}, nil
				},
			},
		}

		cmd := &main.ListCmd{Limit: 50}
		require.NoError(t, cmd.Run(deps))

		output := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, output, "$39.99")
		assert.Contains(t, output, "In Stock")
		assert.Contains(t, output, "1 oz American Silver Eagle")
	})

	t.Run("passes availability filter through", func(t *testing.T) {
		t.Parallel()

		var gotFilter silverscrape.ProductFilter
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Products: &mock.ProductService{
				FindProductsFn: func(ctx context.Context, filter silverscrape.ProductFilter) ([]*silverscrape.ProductRecord, error) {
					gotFilter = filter
					return nil, nil
				},
			},
		}

		cmd := &main.ListCmd{Availability: "Out of Stock", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.Availability)
		assert.Equal(t, silverscrape.AvailabilityOutOfStock, *gotFilter.Availability)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No products found")
	})
}
