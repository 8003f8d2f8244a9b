package simd

import "github.com/hupe1980/rapidscorer/internal/bitblock"

// Lane is the scalar element type of a lane group.
type Lane = bitblock.Block

// And computes dst[i] = a[i] & b[i] over one lane group.
// All three slices have the group's lane count; dst may alias a or b.
func And[L Lane](dst, a, b []L) {
	_ = dst[len(a)-1]
	for i := range a {
		dst[i] = a[i] & b[i]
	}
}

// AndInPlace computes dst[i] &= src[i] over one lane group.
func AndInPlace[L Lane](dst, src []L) {
	_ = dst[len(src)-1]
	for i := range src {
		dst[i] &= src[i]
	}
}

// IsZero reports whether every lane of the group is zero.
func IsZero[L Lane](g []L) bool {
	var acc L
	for _, l := range g {
		acc |= l
	}
	return acc == 0
}

// LowestSetBit returns the index of the lowest set bit across the group:
// laneIndex*laneWidth + trailingZeros(lane) for the lowest nonzero lane.
// Returns -1 if the group is all zero.
func LowestSetBit[L Lane](g []L) int {
	w := bitblock.Width[L]()
	for i, l := range g {
		if l != 0 {
			return i*w + bitblock.TrailingZeros(l)
		}
	}
	return -1
}
