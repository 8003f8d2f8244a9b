//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasSSE2 = true // x86-64 baseline
	hasAVX2 = cpu.X86.HasAVX2
	hasAVX512F = cpu.X86.HasAVX512F
	hasAVX512BW = cpu.X86.HasAVX512BW
	initCapabilities()
}
