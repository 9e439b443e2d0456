package crawl_test

import (
	"sync"
	"testing"

	"github.com/awalker/silverscrape/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Claim(t *testing.T) {
	t.Parallel()

	t.Run("ReservesUpToQuota", func(t *testing.T) {
		t.Parallel()
		st := crawl.NewState(2)
		assert.True(t, st.Claim("https://www.silver.com/a"))
		assert.True(t, st.Claim("https://www.silver.com/b"))
		assert.False(t, st.Claim("https://www.silver.com/c"))
		assert.True(t, st.Exhausted())
	})

	t.Run("RejectsDuplicateURL", func(t *testing.T) {
		t.Parallel()
		st := crawl.NewState(5)
		require.True(t, st.Claim("https://www.silver.com/a"))
		assert.False(t, st.Claim("https://www.silver.com/a"))
		assert.True(t, st.Seen("https://www.silver.com/a"))
		assert.Equal(t, 4, st.Remaining())
	})

	t.Run("ReleaseFreesSlotButNotURL", func(t *testing.T) {
		t.Parallel()
		st := crawl.NewState(1)
		require.True(t, st.Claim("https://www.silver.com/a"))
		st.Release()
		assert.False(t, st.Exhausted())
		assert.False(t, st.Claim("https://www.silver.com/a"))
		assert.True(t, st.Claim("https://www.silver.com/b"))
		assert.Equal(t, 1, st.Failed())
	})

	t.Run("ZeroQuotaAlreadySatisfied", func(t *testing.T) {
		t.Parallel()
		st := crawl.NewState(0)
		assert.True(t, st.Exhausted())
		assert.False(t, st.Claim("https://www.silver.com/a"))
		assert.Equal(t, 0, st.Remaining())
	})
}

func TestState_Concurrent(t *testing.T) {
	t.Parallel()

	const quota = 10
	st := crawl.NewState(quota)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			u := "https://www.silver.com/p" + string(rune('a'+n%50))
			if st.Claim(u) {
				st.Complete()
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, st.Emitted(), quota)
	assert.Equal(t, quota, st.Emitted()+st.Remaining())
}
