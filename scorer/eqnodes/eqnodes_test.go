package eqnodes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/eqnodes"
	"github.com/hupe1980/rapidscorer/testutil"
)

func scoreOne(t *testing.T, sc scorer.Scorer, doc []float64) float64 {
	t.Helper()
	scores, err := sc.Score([][]float64{doc})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	return scores[0]
}

func TestStump(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))
	sc, err := eqnodes.New[uint64](scorer.Serial(), f)
	require.NoError(t, err)

	assert.Equal(t, 1.0, scoreOne(t, sc, []float64{0.4}))
	assert.Equal(t, 2.0, scoreOne(t, sc, []float64{0.6}))
	assert.Equal(t, 1.0, scoreOne(t, sc, []float64{0.5}))
	assert.Equal(t, 2.0, scoreOne(t, sc, []float64{math.NaN()}))
}

// Trees reusing the same split collapse into one record carrying every
// (tree, epitome) pair.
func TestDeduplicatesSharedSplits(t *testing.T) {
	f := testutil.MustForest(
		testutil.Stump(0, 0.5, 1.0, 2.0),
		testutil.Stump(0, 0.5, 10.0, 20.0),
		testutil.Stump(0, 0.5, 100.0, 200.0),
		testutil.Stump(1, 0.9, 0.0, 1.0),
	)
	sc, err := eqnodes.New[uint32](scorer.Serial(), f)
	require.NoError(t, err)

	assert.Equal(t, 2, sc.NumUniqueSplits())
	assert.Equal(t, 111.0, scoreOne(t, sc, []float64{0.4, 0.5}))
	assert.Equal(t, 222.0, scoreOne(t, sc, []float64{0.6, 0.5}))
	assert.Equal(t, 223.0, scoreOne(t, sc, []float64{0.6, 0.95}))
}

func TestBalancedDepth3AllPaths(t *testing.T) {
	f := testutil.MustForest(testutil.BalancedDepth3(
		[7]uint32{0, 0, 1, 1, 2, 2, 2},
		[7]float64{0.5, 0.25, 0.5, 0.5, 0.5, 0.5, 0.5},
		[8]float64{10, 20, 30, 40, 50, 60, 70, 80},
	))
	sc, err := eqnodes.New[uint8](scorer.Serial(), f)
	require.NoError(t, err)

	tests := []struct {
		doc      []float64
		expected float64
	}{
		{[]float64{0.2, 0.4, 0.9}, 10},
		{[]float64{0.2, 0.6, 0.9}, 20},
		{[]float64{0.4, 0.9, 0.4}, 30},
		{[]float64{0.4, 0.9, 0.6}, 40},
		{[]float64{0.6, 0.4, 0.4}, 50},
		{[]float64{0.6, 0.4, 0.6}, 60},
		{[]float64{0.6, 0.6, 0.4}, 70},
		{[]float64{0.6, 0.6, 0.6}, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, scoreOne(t, sc, tt.doc))
	}
}

func TestFeatureParallelRejected(t *testing.T) {
	f := testutil.MustForest(testutil.Stump(0, 0.5, 1.0, 2.0))
	_, err := eqnodes.New[uint64](scorer.ParallelFeature(2), f)
	var axis *scorer.ErrUnsupportedAxis
	assert.ErrorAs(t, err, &axis)
}

func TestMatchesTraversalAcrossWidths(t *testing.T) {
	rng := testutil.NewRNG(53)
	f := rng.Forest(50, 6, 8)
	docs := rng.Documents(200, 8)
	want := testutil.ReferenceScores(f, docs)

	sc16, err := eqnodes.New[uint16](scorer.Serial(), f)
	require.NoError(t, err)
	sc64, err := eqnodes.New[uint64](scorer.ParallelForest(4), f)
	require.NoError(t, err)

	for i, doc := range docs {
		assert.InDelta(t, want[i], scoreOne(t, sc16, doc), 1e-9)
		assert.InDelta(t, want[i], scoreOne(t, sc64, doc), 1e-9)
	}
}
