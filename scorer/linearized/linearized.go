// Package linearized implements the rapidscorer variant that flattens all
// internal nodes into parallel arrays sorted by (feature, threshold),
// with a per-feature offset table. Denser and more cache-friendly than
// the grouped layouts; the trade-off is that shared-split grouping is
// lost.
package linearized

import (
	"sync"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	"github.com/hupe1980/rapidscorer/scorer"
)

// Scorer is the Linearized rapidscorer. Immutable after construction.
type Scorer[B bitblock.Block] struct {
	cfg scorer.Config
	f   *forest.Forest

	thresholds []float64
	trees      []uint32
	epitomes   []epitome.Epitome[B]
	// offsets[f] is the first index of feature f; features without
	// splits get the running position, so their range is empty. The end
	// of the last feature's range is len(thresholds).
	offsets []uint32

	masks sync.Pool
}

// New builds a Linearized scorer over the forest.
func New[B bitblock.Block](cfg scorer.Config, f *forest.Forest) (*Scorer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ParallelFeatures {
		return nil, &scorer.ErrUnsupportedAxis{Scorer: "linearized", Axis: "feature"}
	}

	rounded := make([]int, f.NumTrees())
	for t := range rounded {
		rounded[t] = bitblock.Round[B](f.Tree(t).LeafCount())
	}

	nodes := forest.SplitNodes(f)
	s := &Scorer[B]{
		cfg:        cfg,
		f:          f,
		thresholds: make([]float64, 0, len(nodes)),
		trees:      make([]uint32, 0, len(nodes)),
		epitomes:   make([]epitome.Epitome[B], 0, len(nodes)),
		offsets:    forest.Offsets(nodes),
	}
	for _, n := range nodes {
		s.thresholds = append(s.thresholds, n.Threshold)
		s.trees = append(s.trees, n.Tree)
		s.epitomes = append(s.epitomes, epitome.New[B](int(n.LeavesBefore), int(n.LeftLeaves), rounded[n.Tree]))
	}

	s.masks.New = func() any { return epitome.NewResultMask[B](f) }
	return s, nil
}

// BatchSize returns 1: Linearized scores one document per call.
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
		end := len(s.thresholds)
		if feat+1 < len(s.offsets) {
			end = int(s.offsets[feat+1])
		}
		firstHolding := start + forest.LowerBound(s.thresholds[start:end], doc[feat])
		for j := start; j < firstHolding; j++ {
			mask.ApplyMask(s.epitomes[j], int(s.trees[j]))
		}
	}

	score := mask.ComputeScore(s.cfg.ParallelForest, s.cfg.NumberOfThreads)
	return []float64{score}, nil
}
