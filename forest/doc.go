// Package forest holds the decision tree model scored by the rapidscorer
// engine: an ordered collection of binary trees whose internal nodes
// split on (feature index, threshold) and whose leaves carry additive
// weights.
//
// Trees are arena-backed: all nodes of a tree live in a single tagged
// pool and reference each other by integer NodeID, so a finalized tree is
// a few flat slices with no pointer chasing. Finalization precomputes the
// left-to-right DFS leaf numbering every scorer layout depends on.
//
// The decision rule is fixed: a document goes left when
// features[feature] <= threshold, right otherwise. NaN compares false
// against any threshold and therefore follows the right branch at every
// node.
package forest
