// Package simd implements the rapidscorer variant that scores K
// documents at once: the result mask blocks become lane groups of K
// lanes, one lane per document, so a single group AND advances every
// document in the batch. Binary search stays scalar per document; the
// mask application is the vectorized step.
package simd

import "fmt"

// Variant selects the vector register width and the lane width; the lane
// count K = VectorBits/LaneBits is the document batch size.
type Variant struct {
	VectorBits int
	LaneBits   int
}

// The supported vector configurations. 128-bit registers carry 8- and
// 16-bit lanes only; the wider families add the wider lanes.
var (
	SIMD128X8  = Variant{VectorBits: 128, LaneBits: 8}
	SIMD128X16 = Variant{VectorBits: 128, LaneBits: 16}
	SIMD256X8  = Variant{VectorBits: 256, LaneBits: 8}
	SIMD256X16 = Variant{VectorBits: 256, LaneBits: 16}
	SIMD256X32 = Variant{VectorBits: 256, LaneBits: 32}
	SIMD512X8  = Variant{VectorBits: 512, LaneBits: 8}
	SIMD512X16 = Variant{VectorBits: 512, LaneBits: 16}
	SIMD512X32 = Variant{VectorBits: 512, LaneBits: 32}
	SIMD512X64 = Variant{VectorBits: 512, LaneBits: 64}
)

// Variants lists every configuration in ascending (vector, lane) order.
var Variants = []Variant{
	SIMD128X8, SIMD128X16,
	SIMD256X8, SIMD256X16, SIMD256X32,
	SIMD512X8, SIMD512X16, SIMD512X32, SIMD512X64,
}

// Lanes returns the document batch size K.
func (v Variant) Lanes() int { return v.VectorBits / v.LaneBits }

// String returns the canonical name, e.g. "SIMD256X32".
func (v Variant) String() string {
	return fmt.Sprintf("SIMD%dX%d", v.VectorBits, v.LaneBits)
}

// ParseVariant parses a canonical variant name.
func ParseVariant(s string) (Variant, bool) {
	for _, v := range Variants {
		if v.String() == s {
			return v, true
		}
	}
	return Variant{}, false
}

func (v Variant) known() bool {
	for _, k := range Variants {
		if v == k {
			return true
		}
	}
	return false
}

// ErrUnsupported indicates a variant the host CPU cannot execute, or an
// unknown vector/lane combination.
type ErrUnsupported struct {
	Variant Variant
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("SIMD configuration %s is not supported on this host", e.Variant)
}
