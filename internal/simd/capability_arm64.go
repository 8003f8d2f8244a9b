//go:build arm64

package simd

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func init() {
	// ASIMD is architecturally mandatory on ARMv8, but darwin does not
	// populate the hwcap-derived flags.
	hasASIMD = cpu.ARM64.HasASIMD || runtime.GOOS == "darwin"
	hasSVE2 = cpu.ARM64.HasSVE2
	initCapabilities()
}
