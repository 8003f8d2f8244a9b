// Package eqnodes implements the rapidscorer variant that deduplicates
// splits: each unique (feature, threshold) is stored once, as a flat
// record carrying every (tree, epitome) pair that shares it. The records
// stay flat-sorted with a per-feature offset table, so lookups are the
// binary search of Merged without the per-feature table indirection.
// Effective when many trees reuse the same splits.
package eqnodes

import (
	"sync"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	"github.com/hupe1980/rapidscorer/scorer"
)

// eqNode is one unique split with every node that shares it.
type eqNode[B bitblock.Block] struct {
	feature   uint32
	threshold float64
	trees     []uint32
	eps       []epitome.Epitome[B]
}

// Scorer is the EqNodes rapidscorer. Immutable after construction.
type Scorer[B bitblock.Block] struct {
	cfg scorer.Config
	f   *forest.Forest

	nodes      []eqNode[B]
	thresholds []float64 // nodes[i].threshold, kept separate for the search
	offsets    []uint32  // first index of each feature, gap-filled

	masks sync.Pool
}

// New builds an EqNodes scorer over the forest.
func New[B bitblock.Block](cfg scorer.Config, f *forest.Forest) (*Scorer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ParallelFeatures {
		return nil, &scorer.ErrUnsupportedAxis{Scorer: "eqnodes", Axis: "feature"}
	}

	rounded := make([]int, f.NumTrees())
	for t := range rounded {
		rounded[t] = bitblock.Round[B](f.Tree(t).LeafCount())
	}

	s := &Scorer[B]{cfg: cfg, f: f}
	for _, n := range forest.SplitNodes(f) {
		ep := epitome.New[B](int(n.LeavesBefore), int(n.LeftLeaves), rounded[n.Tree])
		if k := len(s.nodes); k > 0 && s.nodes[k-1].feature == n.Feature && s.nodes[k-1].threshold == n.Threshold {
			s.nodes[k-1].trees = append(s.nodes[k-1].trees, n.Tree)
			s.nodes[k-1].eps = append(s.nodes[k-1].eps, ep)
			continue
		}
		s.nodes = append(s.nodes, eqNode[B]{
			feature:   n.Feature,
			threshold: n.Threshold,
			trees:     []uint32{n.Tree},
			eps:       []epitome.Epitome[B]{ep},
		})
	}
	for i, n := range s.nodes {
		s.thresholds = append(s.thresholds, n.threshold)
		for len(s.offsets) <= int(n.feature) {
			s.offsets = append(s.offsets, uint32(i))
		}
	}

	s.masks.New = func() any { return epitome.NewResultMask[B](f) }
	return s, nil
}

// NumUniqueSplits returns the number of deduplicated (feature, threshold)
// records.
func (s *Scorer[B]) NumUniqueSplits() int { return len(s.nodes) }

// BatchSize returns 1: EqNodes scores one document per call.
func (s *Scorer[B]) BatchSize() int { return 1 }

// Score scores a single document.
func (s *Scorer[B]) Score(docs [][]float64) ([]float64, error) {
	if len(docs) != 1 {
		return nil, &scorer.ErrBatchSize{Want: 1, Got: len(docs)}
	}
	doc := docs[0]
	if err := s.f.CheckDocument(doc); err != nil {
		return nil, err
	}

	mask := s.masks.Get().(*epitome.ResultMask[B])
	defer s.masks.Put(mask)
	mask.Reset()

	for feat := range s.offsets {
		start := int(s.offsets[feat])
		end := len(s.nodes)
		if feat+1 < len(s.offsets) {
			end = int(s.offsets[feat+1])
		}
		firstHolding := start + forest.LowerBound(s.thresholds[start:end], doc[feat])
		for j := start; j < firstHolding; j++ {
			n := &s.nodes[j]
			for k, tree := range n.trees {
				mask.ApplyMask(n.eps[k], int(tree))
			}
		}
	}

	score := mask.ComputeScore(s.cfg.ParallelForest, s.cfg.NumberOfThreads)
	return []float64{score}, nil
}
