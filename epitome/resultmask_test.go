package epitome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	"github.com/hupe1980/rapidscorer/testutil"
)

func depth3Tree() *forest.Tree {
	return testutil.BalancedDepth3(
		[7]uint32{0, 0, 1, 1, 2, 2, 2},
		[7]float64{0.5, 0.25, 0.5, 0.5, 0.5, 0.5, 0.5},
		[8]float64{10, 20, 30, 40, 50, 60, 70, 80},
	)
}

// collectInternal returns every internal node of a tree, pre-order.
func collectInternal(t *forest.Tree) []forest.NodeID {
	var ids []forest.NodeID
	var walk func(id forest.NodeID)
	walk = func(id forest.NodeID) {
		if t.IsLeaf(id) {
			return
		}
		ids = append(ids, id)
		walk(t.Left(id))
		walk(t.Right(id))
	}
	walk(t.Root())
	return ids
}

// Applying a single node's epitome to an all-ones mask must zero exactly
// the leaves of that node's left subtree.
func TestApplyMaskZerosLeftSubtree(t *testing.T) {
	tree := depth3Tree()
	f := testutil.MustForest(tree)

	for _, id := range collectInternal(tree) {
		mask := epitome.NewResultMask[uint8](f)
		lb := tree.LeavesBefore(id)
		run := tree.SubtreeLeaves(tree.Left(id))
		ep := epitome.New[uint8](lb, run, bitblock.Round[uint8](tree.LeafCount()))
		mask.ApplyMask(ep, 0)

		for leaf := 0; leaf < tree.LeafCount(); leaf++ {
			inLeftSubtree := leaf >= lb && leaf < lb+run
			assert.Equal(t, !inLeftSubtree, mask.Bit(0, leaf),
				"node %d leaf %d", id, leaf)
		}
	}
}

// applyFailing collapses the mask under every node whose condition the
// document violates, the way a scorer would.
func applyFailing[B bitblock.Block](mask *epitome.ResultMask[B], f *forest.Forest, doc []float64) {
	for ti := 0; ti < f.NumTrees(); ti++ {
		tree := f.Tree(ti)
		rounded := bitblock.Round[B](tree.LeafCount())
		for _, id := range collectInternal(tree) {
			if doc[tree.Feature(id)] > tree.Threshold(id) {
				ep := epitome.New[B](tree.LeavesBefore(id), tree.SubtreeLeaves(tree.Left(id)), rounded)
				mask.ApplyMask(ep, ti)
			}
		}
	}
}

func checkLeafRecovery[B bitblock.Block](t *testing.T, f *forest.Forest, docs [][]float64) {
	t.Helper()
	mask := epitome.NewResultMask[B](f)
	for _, doc := range docs {
		mask.Reset()
		applyFailing(mask, f, doc)
		for ti := 0; ti < f.NumTrees(); ti++ {
			assert.Equal(t, f.Tree(ti).Leaf(doc), mask.LeafIndex(ti))
		}
	}
}

// The lowest surviving bit after applying all failing nodes must be the
// DFS index of the leaf reached by traversal, at every block width.
func TestLeafRecoveryMatchesTraversal(t *testing.T) {
	rng := testutil.NewRNG(7)
	f := rng.Forest(20, 5, 4)
	docs := rng.Documents(50, 4)

	checkLeafRecovery[uint8](t, f, docs)
	checkLeafRecovery[uint16](t, f, docs)
	checkLeafRecovery[uint32](t, f, docs)
	checkLeafRecovery[uint64](t, f, docs)
}

func TestResetClearsDeadBits(t *testing.T) {
	// 3 leaves in 8-bit blocks leave 5 dead bits; with no masks applied
	// the winning bit must be leaf 0, and the dead bits must stay clear.
	b := forest.NewTreeBuilder()
	root := b.Internal(0, 0.5, b.Leaf(1), b.Internal(0, 0.7, b.Leaf(2), b.Leaf(3)))
	tree, err := b.Build(root)
	require.NoError(t, err)
	f := testutil.MustForest(tree)

	mask := epitome.NewResultMask[uint8](f)
	assert.Equal(t, 0, mask.LeafIndex(0))
	for leaf := 3; leaf < 8; leaf++ {
		assert.False(t, mask.Bit(0, leaf))
	}
}

func TestCombineAnd(t *testing.T) {
	tree := depth3Tree()
	f := testutil.MustForest(tree)
	ids := collectInternal(tree)
	rounded := bitblock.Round[uint16](tree.LeafCount())

	// All nodes into one mask vs a two-way split AND-combined.
	all := epitome.NewResultMask[uint16](f)
	a := epitome.NewResultMask[uint16](f)
	b := epitome.NewResultMask[uint16](f)
	for i, id := range ids {
		ep := epitome.New[uint16](tree.LeavesBefore(id), tree.SubtreeLeaves(tree.Left(id)), rounded)
		all.ApplyMask(ep, 0)
		if i%2 == 0 {
			a.ApplyMask(ep, 0)
		} else {
			b.ApplyMask(ep, 0)
		}
	}
	a.CombineAnd(b)

	for leaf := 0; leaf < tree.LeafCount(); leaf++ {
		assert.Equal(t, all.Bit(0, leaf), a.Bit(0, leaf))
	}
}

func TestComputeScoreForestParallel(t *testing.T) {
	rng := testutil.NewRNG(11)
	f := rng.Forest(37, 5, 3)
	docs := rng.Documents(10, 3)

	mask := epitome.NewResultMask[uint64](f)
	for _, doc := range docs {
		mask.Reset()
		applyFailing(mask, f, doc)

		serial := mask.ComputeScore(false, 1)
		want, err := f.Score(doc)
		require.NoError(t, err)
		assert.InDelta(t, want, serial, 1e-9)

		for _, threads := range []int{2, 4, 8, 64} {
			assert.InDelta(t, serial, mask.ComputeScore(true, threads), 1e-9)
		}

		// Same configuration twice is bit-identical.
		assert.Equal(t, mask.ComputeScore(true, 4), mask.ComputeScore(true, 4))
	}
}
