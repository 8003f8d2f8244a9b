package simd

import (
	"sync"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	isimd "github.com/hupe1980/rapidscorer/internal/simd"
	"github.com/hupe1980/rapidscorer/scorer"
)

// Scorer is the SIMD rapidscorer for lane type L. Immutable after
// construction; one Score call consumes exactly Lanes documents.
type Scorer[L bitblock.Block] struct {
	cfg     scorer.Config
	f       *forest.Forest
	variant Variant
	lanes   int

	// Linearized node layout; the epitomes use the lane width as their
	// block width so they broadcast straight into the lane groups.
	thresholds []float64
	trees      []uint32
	epitomes   []epitome.Epitome[L]
	offsets    []uint32

	masks sync.Pool
}

// New builds a SIMD scorer for the given variant. The lane type L must
// match the variant's lane width, the variant must be one of the nine
// supported configurations, and the host CPU must execute the vector
// width. The width check uses the detected CPU flags; RAPIDSCORER_SIMD
// does not change it.
func New[L bitblock.Block](cfg scorer.Config, f *forest.Forest, v Variant) (*Scorer[L], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ParallelFeatures {
		return nil, &scorer.ErrUnsupportedAxis{Scorer: "simd", Axis: "feature"}
	}
	if !v.known() || v.LaneBits != bitblock.Width[L]() || !isimd.Supported(v.VectorBits) {
		return nil, &ErrUnsupported{Variant: v}
	}

	rounded := make([]int, f.NumTrees())
	for t := range rounded {
		rounded[t] = bitblock.Round[L](f.Tree(t).LeafCount())
	}

	nodes := forest.SplitNodes(f)
	s := &Scorer[L]{
		cfg:        cfg,
		f:          f,
		variant:    v,
		lanes:      v.Lanes(),
		thresholds: make([]float64, 0, len(nodes)),
		trees:      make([]uint32, 0, len(nodes)),
		epitomes:   make([]epitome.Epitome[L], 0, len(nodes)),
		offsets:    forest.Offsets(nodes),
	}
	for _, n := range nodes {
		s.thresholds = append(s.thresholds, n.Threshold)
		s.trees = append(s.trees, n.Tree)
		s.epitomes = append(s.epitomes, epitome.New[L](int(n.LeavesBefore), int(n.LeftLeaves), rounded[n.Tree]))
	}

	s.masks.New = func() any { return newGroupMask[L](f, s.lanes) }
	return s, nil
}

// Variant returns the vector configuration the scorer was built with.
func (s *Scorer[L]) Variant() Variant { return s.variant }

// BatchSize returns the lane count K: Score consumes K documents per call.
func (s *Scorer[L]) BatchSize() int { return s.lanes }

// Score scores a group of exactly BatchSize documents and returns one
// weight per document, in group order.
func (s *Scorer[L]) Score(docs [][]float64) ([]float64, error) {
	if len(docs) != s.lanes {
		return nil, &scorer.ErrBatchSize{Want: s.lanes, Got: len(docs)}
	}
	for _, doc := range docs {
		if err := s.f.CheckDocument(doc); err != nil {
			return nil, err
		}
	}

	mask := s.masks.Get().(*groupMask[L])
	defer s.masks.Put(mask)
	mask.reset()

	for feat := range s.offsets {
		start := int(s.offsets[feat])
		end := len(s.thresholds)
		if feat+1 < len(s.offsets) {
			end = int(s.offsets[feat+1])
		}
		if start == end {
			continue
		}

		// Scalar binary search per document into the shared threshold
		// run; node j fails for document k iff j < firstHolding[k].
		maxHolding := start
		for k, doc := range docs {
			fh := start + forest.LowerBound(s.thresholds[start:end], doc[feat])
			mask.firstHolding[k] = fh
			if fh > maxHolding {
				maxHolding = fh
			}
		}

		for j := start; j < maxHolding; j++ {
			var failing uint64
			for k := 0; k < s.lanes; k++ {
				if j < mask.firstHolding[k] {
					failing |= 1 << k
				}
			}
			mask.applyMask(s.epitomes[j], int(s.trees[j]), failing)
		}
	}

	out := make([]float64, s.lanes)
	mask.computeScores(s.cfg.ParallelForest, s.cfg.NumberOfThreads, out)
	return out, nil
}

// NewVariant dispatches on the variant's lane width and returns the
// matching monomorphic scorer behind the shared interface.
func NewVariant(cfg scorer.Config, f *forest.Forest, v Variant) (scorer.Scorer, error) {
	var (
		sc  scorer.Scorer
		err error
	)
	switch v.LaneBits {
	case 8:
		sc, err = New[uint8](cfg, f, v)
	case 16:
		sc, err = New[uint16](cfg, f, v)
	case 32:
		sc, err = New[uint32](cfg, f, v)
	case 64:
		sc, err = New[uint64](cfg, f, v)
	default:
		return nil, &ErrUnsupported{Variant: v}
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}
