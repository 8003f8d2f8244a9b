package epitome

import (
	"sync"

	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
)

// ResultMask accumulates the AND of all applied epitomes for one document
// across every tree of a forest. Tree bitsets are stored back to back in
// one block slice; each tree's width is its leaf count rounded up to the
// block width, with the bits past the leaf count kept at zero so a dead
// position can never win the lowest-set-bit scan.
//
// A ResultMask is owned by a single worker. Allocate once per worker and
// Reset between documents.
type ResultMask[B bitblock.Block] struct {
	f       *forest.Forest
	blocks  []B
	offsets []uint32 // per-tree start block, len = NumTrees+1
}

// NewResultMask allocates an all-ones mask sized for the forest.
func NewResultMask[B bitblock.Block](f *forest.Forest) *ResultMask[B] {
	m := &ResultMask[B]{f: f}
	m.offsets = make([]uint32, f.NumTrees()+1)
	for i := 0; i < f.NumTrees(); i++ {
		m.offsets[i+1] = m.offsets[i] + uint32(bitblock.BlocksFor[B](f.Tree(i).LeafCount()))
	}
	m.blocks = make([]B, m.offsets[f.NumTrees()])
	m.Reset()
	return m
}

// Forest returns the forest this mask was sized for.
func (m *ResultMask[B]) Forest() *forest.Forest { return m.f }

// Reset restores the all-ones state, clearing the dead bits past each
// tree's leaf count in its last block.
func (m *ResultMask[B]) Reset() {
	for i := range m.blocks {
		m.blocks[i] = bitblock.Ones[B]()
	}
	w := bitblock.Width[B]()
	for t := 0; t < m.f.NumTrees(); t++ {
		if rem := m.f.Tree(t).LeafCount() % w; rem != 0 {
			m.blocks[m.offsets[t+1]-1] = bitblock.LowMask[B](rem)
		}
	}
}

// ApplyMask ANDs an epitome into the given tree's bitset. Only the two
// edge blocks carry stored values; the interior of the span is forced to
// zero.
func (m *ResultMask[B]) ApplyMask(e Epitome[B], tree int) {
	base := int(m.offsets[tree])
	first, last := base+e.FirstBlock(), base+e.LastBlock()
	if first == last {
		m.blocks[first] &= e.FirstMask()
		return
	}
	m.blocks[first] &= e.FirstMask()
	for i := first + 1; i < last; i++ {
		m.blocks[i] = 0
	}
	m.blocks[last] &= e.LastMask()
}

// CombineAnd folds another worker's partial mask into this one. Both
// masks must have been created for the same forest.
func (m *ResultMask[B]) CombineAnd(o *ResultMask[B]) {
	for i, b := range o.blocks {
		m.blocks[i] &= b
	}
}

// Bit reports whether the given leaf of a tree is still a candidate.
func (m *ResultMask[B]) Bit(tree, leaf int) bool {
	w := bitblock.Width[B]()
	b := int(m.offsets[tree]) + leaf/w
	return m.blocks[b]&(B(1)<<(leaf%w)) != 0
}

// LeafIndex returns the DFS index of the lowest surviving leaf for the
// given tree. At least one bit always survives: the reached leaf's bit is
// set in every applied epitome.
func (m *ResultMask[B]) LeafIndex(tree int) int {
	w := bitblock.Width[B]()
	start, end := int(m.offsets[tree]), int(m.offsets[tree+1])
	for i := start; i < end; i++ {
		if m.blocks[i] != 0 {
			return (i-start)*w + bitblock.TrailingZeros(m.blocks[i])
		}
	}
	panic("resultmask: no surviving leaf; epitome convention violated")
}

// ComputeScore sums the surviving leaf weights over all trees in tree
// order. With parallelForest, the leaf lookups are split into at most
// threads contiguous tree ranges; the weights are then added in tree
// order, so the sum is bit-identical to the serial one for every thread
// count.
func (m *ResultMask[B]) ComputeScore(parallelForest bool, threads int) float64 {
	n := m.f.NumTrees()
	if !parallelForest || threads <= 1 || n < 2 {
		return m.scoreRange(0, n)
	}
	if threads > n {
		threads = n
	}
	weights := make([]float64, n)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		lo, hi := treeRange(n, threads, w)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for t := lo; t < hi; t++ {
				weights[t] = m.f.Tree(t).LeafValue(m.LeafIndex(t))
			}
		}(lo, hi)
	}
	wg.Wait()
	var sum float64
	for _, v := range weights {
		sum += v
	}
	return sum
}

func (m *ResultMask[B]) scoreRange(lo, hi int) float64 {
	var sum float64
	for t := lo; t < hi; t++ {
		sum += m.f.Tree(t).LeafValue(m.LeafIndex(t))
	}
	return sum
}

// treeRange returns the w-th of n contiguous ranges over total items,
// sized as evenly as possible.
func treeRange(total, n, w int) (lo, hi int) {
	size := total / n
	extra := total % n
	lo = w*size + min(w, extra)
	hi = lo + size
	if w < extra {
		hi++
	}
	return lo, hi
}
