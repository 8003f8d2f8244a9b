package bitblock

import (
	"math/bits"
	"unsafe"
)

// Block is the set of unsigned integer widths usable as bitset words.
type Block interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the width of B in bits.
func Width[B Block]() int {
	var b B
	return int(unsafe.Sizeof(b)) * 8
}

// Ones returns the all-ones value of B.
func Ones[B Block]() B {
	var b B
	return ^b
}

// LowMask returns a block with ones at bit positions [0, n).
// n must be in [0, Width].
func LowMask[B Block](n int) B {
	if n >= Width[B]() {
		return Ones[B]()
	}
	return B(1)<<n - 1
}

// HighMask returns a block with ones at bit positions [n, Width).
// n must be in [0, Width].
func HighMask[B Block](n int) B {
	return ^LowMask[B](n)
}

// TrailingZeros returns the number of trailing zero bits in b.
// The result is undefined for b == 0; callers only pass nonzero blocks.
func TrailingZeros[B Block](b B) int {
	return bits.TrailingZeros64(uint64(b))
}

// Round rounds n up to the next multiple of the block width.
func Round[B Block](n int) int {
	w := Width[B]()
	return (n + w - 1) / w * w
}

// BlocksFor returns the number of blocks needed to cover n bits.
func BlocksFor[B Block](n int) int {
	w := Width[B]()
	return (n + w - 1) / w
}
