package forest

import (
	"math"
	"sort"
)

// SplitNode is one internal node flattened out of its tree, carrying
// everything a scorer layout needs to build the node's epitome.
type SplitNode struct {
	Feature      uint32
	Threshold    float64
	Tree         uint32
	LeavesBefore uint32
	LeftLeaves   uint32
}

// SplitNodes collects every internal node of the forest, pre-order within
// each tree, and sorts them by (feature ascending, threshold ascending).
// Threshold ties compare by exact float64 equality; the sort is stable so
// tied nodes keep tree/DFS order.
func SplitNodes(f *Forest) []SplitNode {
	var nodes []SplitNode
	for ti, t := range f.trees {
		var walk func(id NodeID)
		walk = func(id NodeID) {
			if t.IsLeaf(id) {
				return
			}
			nodes = append(nodes, SplitNode{
				Feature:      t.Feature(id),
				Threshold:    t.Threshold(id),
				Tree:         uint32(ti),
				LeavesBefore: uint32(t.LeavesBefore(id)),
				LeftLeaves:   uint32(t.SubtreeLeaves(t.Left(id))),
			})
			walk(t.Left(id))
			walk(t.Right(id))
		}
		walk(t.Root())
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Feature != nodes[j].Feature {
			return nodes[i].Feature < nodes[j].Feature
		}
		return nodes[i].Threshold < nodes[j].Threshold
	})
	return nodes
}

// LowerBound returns the first index in the ascending thresholds slice
// whose value is >= v; nodes below that index have threshold < v, i.e.
// their split condition fails for a document value v.
//
// NaN compares false against every threshold and so fails every split;
// it maps to len(thresholds).
func LowerBound(thresholds []float64, v float64) int {
	if math.IsNaN(v) {
		return len(thresholds)
	}
	return sort.SearchFloat64s(thresholds, v)
}

// Offsets builds the gap-filled feature offset table over nodes already
// sorted by (feature, threshold): offsets[f] is the first index whose
// feature is >= f, and features with no splits resolve to an empty range
// [offsets[f], offsets[f+1]). The table length is max split feature + 1;
// the end of the last range is len(nodes).
func Offsets(nodes []SplitNode) []uint32 {
	var offsets []uint32
	for i, n := range nodes {
		for len(offsets) <= int(n.Feature) {
			offsets = append(offsets, uint32(i))
		}
	}
	return offsets
}
