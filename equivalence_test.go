package rapidscorer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer"
	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/simd"
	"github.com/hupe1980/rapidscorer/testutil"

	isimd "github.com/hupe1980/rapidscorer/internal/simd"
)

// All variants, all widths, all parallel axes agree with the naive
// traversal on a randomized forest.
func TestAllScorersAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("randomized cross-variant sweep")
	}

	rng := testutil.NewRNG(1)
	f := rng.Forest(300, 6, 10)
	docs := rng.Documents(1000, 10)
	want := testutil.ReferenceScores(f, docs)

	builds := map[string]scorer.Scorer{
		"merged/8":           rapidscorer.Merged(f).BlockWidth(8).MustBuild(),
		"merged/64":          rapidscorer.Merged(f).MustBuild(),
		"merged/64/features": rapidscorer.Merged(f).Threads(8).ParallelFeatures().MustBuild(),
		"merged/32/forest":   rapidscorer.Merged(f).BlockWidth(32).Threads(4).ParallelForest().MustBuild(),
		"linearized/16":      rapidscorer.Linearized(f).BlockWidth(16).MustBuild(),
		"linearized/64":      rapidscorer.Linearized(f).MustBuild(),
		"eqnodes/8":          rapidscorer.EqNodes(f).BlockWidth(8).MustBuild(),
		"eqnodes/64":         rapidscorer.EqNodes(f).MustBuild(),
	}
	if isimd.Supported(256) {
		builds["simd/SIMD256X32"] = rapidscorer.SIMD(f, simd.SIMD256X32).MustBuild()
	}
	if isimd.Supported(128) {
		builds["simd/SIMD128X16"] = rapidscorer.SIMD(f, simd.SIMD128X16).MustBuild()
	}

	for name, sc := range builds {
		t.Run(name, func(t *testing.T) {
			scores, err := rapidscorer.NewExecutor(sc).ScoreAll(docs)
			require.NoError(t, err)
			require.Len(t, scores, len(docs))
			for i := range scores {
				assert.InDelta(t, want[i], scores[i], 1e-9, "document %d", i)
			}
		})
	}
}

// Feature-parallel Merged agrees bit-for-bit with serial Merged: the
// forest reduction order is fixed, and the mask AND is order-independent.
func TestFeatureParallelMatchesSerialExactly(t *testing.T) {
	rng := testutil.NewRNG(2)
	f := rng.Forest(150, 6, 12)
	docs := rng.Documents(300, 12)

	serial, err := rapidscorer.NewExecutor(rapidscorer.Merged(f).MustBuild()).ScoreAll(docs)
	require.NoError(t, err)
	parallel, err := rapidscorer.NewExecutor(rapidscorer.Merged(f).Threads(8).ParallelFeatures().MustBuild()).ScoreAll(docs)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func BenchmarkMergedScore(b *testing.B) {
	rng := testutil.NewRNG(3)
	f := rng.Forest(500, 6, 25)
	docs := rng.Documents(64, 25)
	ex := rapidscorer.NewExecutor(rapidscorer.Merged(f).MustBuild())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ex.ScoreAll(docs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLinearizedScore(b *testing.B) {
	rng := testutil.NewRNG(3)
	f := rng.Forest(500, 6, 25)
	docs := rng.Documents(64, 25)
	ex := rapidscorer.NewExecutor(rapidscorer.Linearized(f).MustBuild())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ex.ScoreAll(docs); err != nil {
			b.Fatal(err)
		}
	}
}
