package ports

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SourceFactory builds a fresh IDSource whose first value is start.
type SourceFactory func(t *testing.T, start int) IDSource

// RunIDSourceContract runs a suite of tests to verify that an IDSource implementation
// adheres to the defined interface contract.
func RunIDSourceContract(t *testing.T, newSource SourceFactory) {
	t.Run("Starts at configured value", func(t *testing.T) {
		for _, start := range []int{0, 1, 42} {
			src := newSource(t, start)
			got, err := src.Next()
			require.NoError(t, err, "Next should not return error")
			assert.Equal(t, start, got)
		}
	})

	t.Run("Advances by one", func(t *testing.T) {
		src := newSource(t, 10)
		for want := 10; want < 110; want++ {
			got, err := src.Next()
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("Concurrent draws are unique and dense", func(t *testing.T) {
		src := newSource(t, 0)

		const workers, draws = 8, 50
		var (
			mu  sync.Mutex
			got []int
			wg  sync.WaitGroup
		)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < draws; i++ {
					n, err := src.Next()
					assert.NoError(t, err)
					mu.Lock()
					got = append(got, n)
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		sort.Ints(got)
		require.Len(t, got, workers*draws)
		for i, n := range got {
			assert.Equal(t, i, n, "values should cover 0..n-1 exactly once")
		}
	})
}
