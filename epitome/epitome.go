package epitome

import (
	"fmt"

	"github.com/hupe1980/rapidscorer/internal/bitblock"
)

// Epitome is the run-length-encoded exit mask of one internal node: ones
// at leaf positions [0, leavesBefore) and [leavesBefore+zeroRun, total),
// zeros in between. Blocks strictly between firstBlock and lastBlock are
// all-zero and not stored; blocks outside the span are all-ones.
type Epitome[B bitblock.Block] struct {
	firstBlock uint32
	lastBlock  uint32
	firstMask  B
	lastMask   B
}

// New constructs the epitome with zeros at leaf positions
// [leavesBefore, leavesBefore+zeroRun). totalLeaves is the owning tree's
// leaf count rounded up to the block width; it bounds the run. zeroRun
// must be at least 1 (an internal node's left subtree has a leaf).
func New[B bitblock.Block](leavesBefore, zeroRun, totalLeaves int) Epitome[B] {
	if zeroRun < 1 {
		panic("epitome: zero run must cover at least one leaf")
	}
	if leavesBefore+zeroRun > totalLeaves {
		panic(fmt.Sprintf("epitome: run [%d,%d) exceeds %d leaves", leavesBefore, leavesBefore+zeroRun, totalLeaves))
	}

	w := bitblock.Width[B]()
	first := leavesBefore / w
	last := (leavesBefore + zeroRun - 1) / w

	fm := bitblock.LowMask[B](leavesBefore % w)
	lm := bitblock.HighMask[B]((leavesBefore+zeroRun-1)%w + 1)
	if first == last {
		m := fm | lm
		return Epitome[B]{firstBlock: uint32(first), lastBlock: uint32(last), firstMask: m, lastMask: m}
	}
	return Epitome[B]{firstBlock: uint32(first), lastBlock: uint32(last), firstMask: fm, lastMask: lm}
}

// FirstBlock returns the index of the block holding the first zero bit.
func (e Epitome[B]) FirstBlock() int { return int(e.firstBlock) }

// LastBlock returns the index of the block holding the last zero bit.
func (e Epitome[B]) LastBlock() int { return int(e.lastBlock) }

// FirstMask returns the stored block value at FirstBlock.
func (e Epitome[B]) FirstMask() B { return e.firstMask }

// LastMask returns the stored block value at LastBlock.
func (e Epitome[B]) LastMask() B { return e.lastMask }

// Mask materializes the block at the given index: the stored edge values
// at the span boundaries, zero strictly inside the span, all-ones outside.
func (e Epitome[B]) Mask(blockIndex int) B {
	i := uint32(blockIndex)
	switch {
	case i < e.firstBlock || i > e.lastBlock:
		return bitblock.Ones[B]()
	case i == e.firstBlock:
		return e.firstMask
	case i == e.lastBlock:
		return e.lastMask
	default:
		return 0
	}
}

// Equal reports whether two epitomes describe the same bitset.
func (e Epitome[B]) Equal(o Epitome[B]) bool {
	return e.firstBlock == o.firstBlock && e.lastBlock == o.lastBlock &&
		e.firstMask == o.firstMask && e.lastMask == o.lastMask
}

// String renders the span for debugging.
func (e Epitome[B]) String() string {
	w := bitblock.Width[B]()
	return fmt.Sprintf("epitome[%d]{blocks %d..%d, first %0*b, last %0*b}",
		w, e.firstBlock, e.lastBlock, w, e.firstMask, w, e.lastMask)
}
