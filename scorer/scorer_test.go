package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPresets(t *testing.T) {
	assert.Equal(t, Config{NumberOfThreads: 1}, Serial())
	assert.Equal(t, Config{NumberOfThreads: 4, ParallelFeatures: true}, ParallelFeature(4))
	assert.Equal(t, Config{NumberOfThreads: 8, ParallelDocuments: true}, ParallelDocuments(8))
	assert.Equal(t, Config{NumberOfThreads: 2, ParallelForest: true}, ParallelForest(2))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Serial().Validate())
	assert.ErrorIs(t, Config{}.Validate(), ErrZeroThreads)
	assert.ErrorIs(t, Config{NumberOfThreads: -1}.Validate(), ErrZeroThreads)
}

func TestChunkCoversRangeExactly(t *testing.T) {
	for _, total := range []int{1, 7, 16, 100} {
		for _, n := range []int{1, 2, 3, 7, 16} {
			if n > total {
				continue
			}
			next := 0
			for w := 0; w < n; w++ {
				lo, hi := Chunk(total, n, w)
				assert.Equal(t, next, lo)
				assert.LessOrEqual(t, lo, hi)
				next = hi
			}
			assert.Equal(t, total, next)
		}
	}
}
