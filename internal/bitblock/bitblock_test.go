package bitblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 8, Width[uint8]())
	assert.Equal(t, 16, Width[uint16]())
	assert.Equal(t, 32, Width[uint32]())
	assert.Equal(t, 64, Width[uint64]())
}

func TestOnes(t *testing.T) {
	assert.Equal(t, uint8(0xff), Ones[uint8]())
	assert.Equal(t, uint16(0xffff), Ones[uint16]())
	assert.Equal(t, uint32(0xffffffff), Ones[uint32]())
	assert.Equal(t, uint64(0xffffffffffffffff), Ones[uint64]())
}

func TestLowMask(t *testing.T) {
	assert.Equal(t, uint8(0), LowMask[uint8](0))
	assert.Equal(t, uint8(0b111), LowMask[uint8](3))
	assert.Equal(t, uint8(0xff), LowMask[uint8](8))
	assert.Equal(t, uint64(0xffffffff), LowMask[uint64](32))
}

func TestHighMask(t *testing.T) {
	assert.Equal(t, uint8(0xff), HighMask[uint8](0))
	assert.Equal(t, uint8(0b11111000), HighMask[uint8](3))
	assert.Equal(t, uint8(0), HighMask[uint8](8))
}

func TestLowHighMasksPartition(t *testing.T) {
	for n := 0; n <= 16; n++ {
		low, high := LowMask[uint16](n), HighMask[uint16](n)
		assert.Equal(t, uint16(0), low&high)
		assert.Equal(t, Ones[uint16](), low|high)
	}
}

func TestTrailingZeros(t *testing.T) {
	assert.Equal(t, 0, TrailingZeros(uint8(1)))
	assert.Equal(t, 3, TrailingZeros(uint8(0b1000)))
	assert.Equal(t, 7, TrailingZeros(uint8(0x80)))
	assert.Equal(t, 63, TrailingZeros(uint64(1)<<63))
}

func TestRoundAndBlocksFor(t *testing.T) {
	assert.Equal(t, 8, Round[uint8](1))
	assert.Equal(t, 8, Round[uint8](8))
	assert.Equal(t, 16, Round[uint8](9))
	assert.Equal(t, 64, Round[uint64](2))

	assert.Equal(t, 1, BlocksFor[uint8](1))
	assert.Equal(t, 1, BlocksFor[uint8](8))
	assert.Equal(t, 2, BlocksFor[uint8](9))
	assert.Equal(t, 1, BlocksFor[uint64](64))
}
