package silverscrape_test

import (
	"testing"

	"github.com/awalker/silverscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	t.Run("parses amounts with separators", func(t *testing.T) {
		t.Parallel()

		v, ok := silverscrape.ParsePrice("$1,234.50 shipping included")
		require.True(t, ok)
		assert.InDelta(t, 1234.50, v, 0.001)
	})

	t.Run("parses bare amounts", func(t *testing.T) {
		t.Parallel()

		v, ok := silverscrape.ParsePrice("39.99")
		require.True(t, ok)
		assert.InDelta(t, 39.99, v, 0.001)
	})

	t.Run("returns absent on no amount", func(t *testing.T) {
		t.Parallel()

		_, ok := silverscrape.ParsePrice("Call for price")
		assert.False(t, ok)
	})

	t.Run("returns absent on empty input", func(t *testing.T) {
		t.Parallel()

		_, ok := silverscrape.ParsePrice("")
		assert.False(t, ok)
	})
}

func TestLastPriceFragment(t *testing.T) {
	t.Parallel()

	// Struck-through original price followed by the active sale price.
	assert.Equal(t, "$39.99", silverscrape.LastPriceFragment("$49.99 $39.99"))
	assert.Equal(t, "$1,234.50", silverscrape.LastPriceFragment("Now only $1,234.50!"))
	assert.Empty(t, silverscrape.LastPriceFragment("Out of Stock"))
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$1,234.50", silverscrape.FormatPrice(1234.5))
	assert.Equal(t, "$39.99", silverscrape.FormatPrice(39.99))
	assert.Equal(t, "$0.85", silverscrape.FormatPrice(0.85))
}
