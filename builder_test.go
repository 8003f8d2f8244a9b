package rapidscorer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer"
	"github.com/hupe1980/rapidscorer/scorer/simd"
	"github.com/hupe1980/rapidscorer/testutil"
)

func TestBuildersAllWidths(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))

	for _, width := range []int{8, 16, 32, 64} {
		sc, err := rapidscorer.Merged(f).BlockWidth(width).Build()
		require.NoError(t, err)
		assert.Equal(t, 1, sc.BatchSize())

		_, err = rapidscorer.Linearized(f).BlockWidth(width).Build()
		require.NoError(t, err)

		_, err = rapidscorer.EqNodes(f).BlockWidth(width).Build()
		require.NoError(t, err)
	}
}

func TestBuilderRejectsUnsupportedBlockWidth(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))

	_, err := rapidscorer.Merged(f).BlockWidth(7).Build()
	require.ErrorIs(t, err, rapidscorer.ErrInvalidConfig)
	var width *rapidscorer.ErrUnsupportedBlockWidth
	require.ErrorAs(t, err, &width)
	assert.Equal(t, 7, width.Width)
}

func TestBuilderRejectsZeroThreads(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))

	_, err := rapidscorer.Merged(f).Threads(0).Build()
	assert.ErrorIs(t, err, rapidscorer.ErrInvalidConfig)
}

func TestBuilderRejectsUnknownSIMDVariant(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))

	_, err := rapidscorer.SIMD(f, simd.Variant{VectorBits: 256, LaneBits: 64}).Build()
	require.ErrorIs(t, err, rapidscorer.ErrInvalidConfig)
	var unsupported *simd.ErrUnsupported
	assert.ErrorAs(t, err, &unsupported)
}

func TestBuilderIsImmutable(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))

	base := rapidscorer.Merged(f)
	narrow := base.BlockWidth(8)

	// The original builder keeps its default width.
	sc, err := base.Build()
	require.NoError(t, err)
	assert.NotNil(t, sc)
	sc, err = narrow.Build()
	require.NoError(t, err)
	assert.NotNil(t, sc)
}

func TestMustBuildPanics(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))
	assert.Panics(t, func() {
		rapidscorer.Merged(f).BlockWidth(5).MustBuild()
	})
}
