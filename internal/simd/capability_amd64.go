//go:build amd64 && !noasm

package simd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

func init() {
	// x/sys/cpu only reports VAES when AVX-512 is enabled, so the VAES bit
	// for YMM operands comes from cpuid.
	vaes := cpuid.CPU.Supports(cpuid.VAES)

	hasAESNI = cpu.X86.HasAES && cpu.X86.HasAVX
	hasVAES256 = hasAESNI && vaes && cpu.X86.HasAVX2
	hasVAES512 = hasVAES256 && cpu.X86.HasAVX512F
	initCapabilities()
}
