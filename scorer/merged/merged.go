// Package merged implements the rapidscorer variant that groups epitomes
// by (feature, threshold): each unique split holds the (tree, epitome)
// pairs of every node sharing it, stored per feature in threshold order.
// It is the only variant supporting feature-parallel scoring.
package merged

import (
	"sync"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	"github.com/hupe1980/rapidscorer/scorer"
)

// group holds the nodes sharing one (feature, threshold) split, as
// parallel tree/epitome slices.
type group[B bitblock.Block] struct {
	trees []uint32
	eps   []epitome.Epitome[B]
}

// featureTable is one feature's splits: thresholds ascending, with the
// matching group at the same index.
type featureTable[B bitblock.Block] struct {
	thresholds []float64
	groups     []group[B]
}

// Scorer is the Merged rapidscorer. Immutable after construction.
type Scorer[B bitblock.Block] struct {
	cfg      scorer.Config
	f        *forest.Forest
	features []featureTable[B]
	masks    sync.Pool
}

// New builds a Merged scorer over the forest.
func New[B bitblock.Block](cfg scorer.Config, f *forest.Forest) (*Scorer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rounded := make([]int, f.NumTrees())
	for t := range rounded {
		rounded[t] = bitblock.Round[B](f.Tree(t).LeafCount())
	}

	s := &Scorer[B]{cfg: cfg, f: f}
	for _, n := range forest.SplitNodes(f) {
		for len(s.features) <= int(n.Feature) {
			s.features = append(s.features, featureTable[B]{})
		}
		tbl := &s.features[n.Feature]
		ep := epitome.New[B](int(n.LeavesBefore), int(n.LeftLeaves), rounded[n.Tree])
		if k := len(tbl.thresholds); k > 0 && tbl.thresholds[k-1] == n.Threshold {
			tbl.groups[k-1].trees = append(tbl.groups[k-1].trees, n.Tree)
			tbl.groups[k-1].eps = append(tbl.groups[k-1].eps, ep)
		} else {
			tbl.thresholds = append(tbl.thresholds, n.Threshold)
			tbl.groups = append(tbl.groups, group[B]{trees: []uint32{n.Tree}, eps: []epitome.Epitome[B]{ep}})
		}
	}

	s.masks.New = func() any { return epitome.NewResultMask[B](f) }
	return s, nil
}

// BatchSize returns 1: Merged scores one document per call.
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

	if s.cfg.ParallelFeatures && s.cfg.NumberOfThreads > 1 {
		s.applyParallel(mask, doc)
	} else {
		s.applyRange(mask, doc, 0, len(s.features))
	}

	score := mask.ComputeScore(s.cfg.ParallelForest, s.cfg.NumberOfThreads)
	return []float64{score}, nil
}

// applyRange collapses the mask under every failing split of the features
// in [lo, hi).
func (s *Scorer[B]) applyRange(mask *epitome.ResultMask[B], doc []float64, lo, hi int) {
	for feat := lo; feat < hi; feat++ {
		tbl := &s.features[feat]
		firstHolding := forest.LowerBound(tbl.thresholds, doc[feat])
		for j := 0; j < firstHolding; j++ {
			g := &tbl.groups[j]
			for k, tree := range g.trees {
				mask.ApplyMask(g.eps[k], int(tree))
			}
		}
	}
}

// applyParallel splits the feature range across workers, each collapsing
// its own partial mask; the partials are AND-combined into mask after the
// join.
func (s *Scorer[B]) applyParallel(mask *epitome.ResultMask[B], doc []float64) {
	threads := s.cfg.NumberOfThreads
	if threads > len(s.features) {
		threads = len(s.features)
	}

	partials := make([]*epitome.ResultMask[B], threads)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		lo, hi := scorer.Chunk(len(s.features), threads, w)
		partial := s.masks.Get().(*epitome.ResultMask[B])
		partial.Reset()
		partials[w] = partial
		wg.Add(1)
		go func(partial *epitome.ResultMask[B], lo, hi int) {
			defer wg.Done()
			s.applyRange(partial, doc, lo, hi)
		}(partial, lo, hi)
	}
	wg.Wait()

	for _, partial := range partials {
		mask.CombineAnd(partial)
		s.masks.Put(partial)
	}
}
