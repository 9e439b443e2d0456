package bloom_test

import (
	"fmt"
	"testing"

	"github.com/awalker/silverscrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("first visit passes, revisit does not", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewVisitedSet(1000, 0.01)

		assert.True(t, s.Visit("https://www.silver.com/silver-coins/page/2/"))
		assert.False(t, s.Visit("https://www.silver.com/silver-coins/page/2/"))
	})

	t.Run("never forgets a visited page", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewVisitedSet(1000, 0.01)
		for i := 0; i < 500; i++ {
			s.Visit(fmt.Sprintf("https://www.silver.com/silver-coins/page/%d/", i))
		}
		for i := 0; i < 500; i++ {
			assert.False(t, s.Visit(fmt.Sprintf("https://www.silver.com/silver-coins/page/%d/", i)))
		}
	})

	t.Run("counts distinct pages", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewVisitedSet(1000, 0.01)
		assert.Equal(t, 0, s.Pages())

		s.Visit("https://www.silver.com/silver-coins/")
		s.Visit("https://www.silver.com/silver-coins/page/2/")
		s.Visit("https://www.silver.com/silver-coins/page/2/")
		assert.Equal(t, 2, s.Pages())
	})
}
