package testutil

import "github.com/hupe1980/rapidscorer/forest"

// Stump builds a single-split tree: one internal node with two leaves.
func Stump(feature uint32, threshold, left, right float64) *forest.Tree {
	b := forest.NewTreeBuilder()
	root := b.Internal(feature, threshold, b.Leaf(left), b.Leaf(right))
	t, err := b.Build(root)
	if err != nil {
		panic(err)
	}
	return t
}

// BalancedDepth3 builds a complete depth-3 tree. The seven internal
// nodes are given in level order (root, its children, then the four
// parents of the leaves); the eight leaves left to right.
func BalancedDepth3(features [7]uint32, thresholds [7]float64, leaves [8]float64) *forest.Tree {
	b := forest.NewTreeBuilder()
	n3 := b.Internal(features[3], thresholds[3], b.Leaf(leaves[0]), b.Leaf(leaves[1]))
	n4 := b.Internal(features[4], thresholds[4], b.Leaf(leaves[2]), b.Leaf(leaves[3]))
	n5 := b.Internal(features[5], thresholds[5], b.Leaf(leaves[4]), b.Leaf(leaves[5]))
	n6 := b.Internal(features[6], thresholds[6], b.Leaf(leaves[6]), b.Leaf(leaves[7]))
	n1 := b.Internal(features[1], thresholds[1], n3, n4)
	n2 := b.Internal(features[2], thresholds[2], n5, n6)
	root := b.Internal(features[0], thresholds[0], n1, n2)
	t, err := b.Build(root)
	if err != nil {
		panic(err)
	}
	return t
}

// MustForest wraps forest.New, panicking on error.
func MustForest(trees ...*forest.Tree) *forest.Forest {
	f, err := forest.New(trees...)
	if err != nil {
		panic(err)
	}
	return f
}
