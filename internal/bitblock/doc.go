// Package bitblock provides generic arithmetic over the scalar block
// widths used to store leaf bitsets (uint8, uint16, uint32, uint64).
//
// Blocks are laid out little-endian: bit i of block b covers leaf
// b*Width + i. Callers never invoke TrailingZeros on a zero block.
package bitblock
