package simd

import (
	"sync"

	"github.com/hupe1980/rapidscorer/epitome"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/internal/bitblock"
	isimd "github.com/hupe1980/rapidscorer/internal/simd"
	"github.com/hupe1980/rapidscorer/scorer"
)

// groupMask is the ResultMask for a batch of K documents: every block of
// the scalar layout widens into a group of K lanes, lane k belonging to
// document k. Blocks are stored block-major, so the group for block b is
// blocks[b*lanes : (b+1)*lanes].
type groupMask[L bitblock.Block] struct {
	f       *forest.Forest
	lanes   int
	blocks  []L
	offsets []uint32 // per-tree start block (unscaled), len = NumTrees+1

	// Per-apply lane blends, built once per node and AND'd across the
	// whole group: the epitome value in failing lanes, all-ones in lanes
	// whose document holds the condition.
	firstBlend    []L
	lastBlend     []L
	interiorBlend []L

	// firstHolding[k] is the per-document binary search result reused
	// across the feature loop.
	firstHolding []int
}

func newGroupMask[L bitblock.Block](f *forest.Forest, lanes int) *groupMask[L] {
	m := &groupMask[L]{f: f, lanes: lanes}
	m.offsets = make([]uint32, f.NumTrees()+1)
	for i := 0; i < f.NumTrees(); i++ {
		m.offsets[i+1] = m.offsets[i] + uint32(bitblock.BlocksFor[L](f.Tree(i).LeafCount()))
	}
	m.blocks = make([]L, int(m.offsets[f.NumTrees()])*lanes)
	m.firstBlend = make([]L, lanes)
	m.lastBlend = make([]L, lanes)
	m.interiorBlend = make([]L, lanes)
	m.firstHolding = make([]int, lanes)
	m.reset()
	return m
}

// reset restores all-ones in every lane, with the dead bits past each
// tree's leaf count cleared.
func (m *groupMask[L]) reset() {
	for i := range m.blocks {
		m.blocks[i] = bitblock.Ones[L]()
	}
	w := bitblock.Width[L]()
	for t := 0; t < m.f.NumTrees(); t++ {
		if rem := m.f.Tree(t).LeafCount() % w; rem != 0 {
			last := (int(m.offsets[t+1]) - 1) * m.lanes
			for k := 0; k < m.lanes; k++ {
				m.blocks[last+k] = bitblock.LowMask[L](rem)
			}
		}
	}
}

// group returns the lane group of one unscaled block index.
func (m *groupMask[L]) group(block int) []L {
	return m.blocks[block*m.lanes : (block+1)*m.lanes]
}

// applyMask ANDs an epitome into the tree's bitset for the documents in
// the failing lane set (bit k set = document k failed the split). Lanes
// of holding documents are blended with all-ones and stay untouched.
func (m *groupMask[L]) applyMask(e epitome.Epitome[L], tree int, failing uint64) {
	ones := bitblock.Ones[L]()
	for k := 0; k < m.lanes; k++ {
		if failing&(1<<k) != 0 {
			m.firstBlend[k] = e.FirstMask()
			m.lastBlend[k] = e.LastMask()
			m.interiorBlend[k] = 0
		} else {
			m.firstBlend[k] = ones
			m.lastBlend[k] = ones
			m.interiorBlend[k] = ones
		}
	}

	base := int(m.offsets[tree])
	first, last := base+e.FirstBlock(), base+e.LastBlock()
	if first == last {
		isimd.AndInPlace(m.group(first), m.firstBlend)
		return
	}
	isimd.AndInPlace(m.group(first), m.firstBlend)
	for b := first + 1; b < last; b++ {
		isimd.AndInPlace(m.group(b), m.interiorBlend)
	}
	isimd.AndInPlace(m.group(last), m.lastBlend)
}

// leafIndex returns the surviving DFS leaf index of one tree for the
// document in lane k.
func (m *groupMask[L]) leafIndex(tree, k int) int {
	w := bitblock.Width[L]()
	start, end := int(m.offsets[tree]), int(m.offsets[tree+1])
	for b := start; b < end; b++ {
		if l := m.blocks[b*m.lanes+k]; l != 0 {
			return (b-start)*w + bitblock.TrailingZeros(l)
		}
	}
	panic("simd: no surviving leaf; epitome convention violated")
}

// computeScores sums the surviving leaf weights per lane, in tree order,
// into out (len = lanes). With parallelForest the leaf lookups are split
// into contiguous tree ranges; the weights are then added per lane in
// tree order, so the sums match the serial ones for every thread count.
func (m *groupMask[L]) computeScores(parallelForest bool, threads int, out []float64) {
	n := m.f.NumTrees()
	if !parallelForest || threads <= 1 || n < 2 {
		m.scoreRange(0, n, out)
		return
	}
	if threads > n {
		threads = n
	}
	weights := make([]float64, n*m.lanes)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		lo, hi := scorer.Chunk(n, threads, w)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for t := lo; t < hi; t++ {
				tree := m.f.Tree(t)
				for k := 0; k < m.lanes; k++ {
					weights[t*m.lanes+k] = tree.LeafValue(m.leafIndex(t, k))
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	for k := range out {
		out[k] = 0
	}
	for t := 0; t < n; t++ {
		for k := range out {
			out[k] += weights[t*m.lanes+k]
		}
	}
}

func (m *groupMask[L]) scoreRange(lo, hi int, out []float64) {
	for k := range out {
		out[k] = 0
	}
	for t := lo; t < hi; t++ {
		tree := m.f.Tree(t)
		for k := 0; k < m.lanes; k++ {
			out[k] += tree.LeafValue(m.leafIndex(t, k))
		}
	}
}
