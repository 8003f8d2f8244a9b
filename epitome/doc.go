// Package epitome implements the compact leaf bitsets at the heart of the
// rapidscorer algorithm.
//
// An Epitome is the exit mask of one internal node: a bitset over the
// owning tree's leaves holding a single contiguous run of zeros (the
// node's left subtree) surrounded by ones. Because every block strictly
// inside the run is all-zero, only the two edge blocks and their indices
// are stored.
//
// A ResultMask is the per-tree AND accumulator for one document: it
// starts all-ones and collapses under the epitomes of every node whose
// split condition the document violates. The lowest set bit that survives
// in a tree's mask is the DFS index of the leaf the document reaches.
package epitome
