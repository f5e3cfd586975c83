package simd

import (
	"os"
	"strings"
)

// ISA represents an AES round implementation tier.
type ISA uint8

const (
	// Generic represents the pure Go table-driven AES round.
	Generic ISA = iota
	// AESNI represents x86-64 AES-NI with VEX encoding (128-bit lanes).
	AESNI
	// VAES256 represents x86-64 vector AES on YMM registers (256-bit lanes).
	VAES256
	// VAES512 represents x86-64 vector AES on ZMM registers (512-bit lanes, AVX-512F).
	VAES512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case AESNI:
		return "aesni"
	case VAES256:
		return "vaes256"
	case VAES512:
		return "vaes512"
	default:
		return "unknown"
	}
}

// Width returns the register width in bits the ISA processes per instruction.
// Generic reports 128 since the table round works on one AES block at a time.
func (i ISA) Width() int {
	switch i {
	case VAES256:
		return 256
	case VAES512:
		return 512
	default:
		return 128
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "aesni":
		return AESNI, true
	case "vaes256":
		return VAES256, true
	case "vaes512":
		return VAES512, true
	default:
		return Generic, false
	}
}

// EnvOverride is the environment variable that caps the selected ISA.
const EnvOverride = "MEOWHASH_SIMD"

// Package-level state - initialized once at package init.
var (
	// activeISA is the widest implementation kernels may use.
	activeISA ISA

	// hasOverride is true if MEOWHASH_SIMD was set to a usable value.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasAESNI   bool // AES-NI + AVX (VEX encoded AESDEC)
	hasVAES256 bool // VAES + AVX2 OS support
	hasVAES512 bool // VAES + AVX-512F
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			activeISA = isa
			return
		}
		// Invalid or unsupported override - fall through to auto-detection
	}

	activeISA = selectBestISA()
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case AESNI:
		return hasAESNI
	case VAES256:
		return hasVAES256
	case VAES512:
		return hasVAES512
	default:
		return false
	}
}

// isISAEnabled reports whether isa is both supported and not above the active cap.
func isISAEnabled(isa ISA) bool {
	return isa <= activeISA && isISAAvailable(isa)
}

func selectBestISA() ISA {
	switch {
	case hasVAES512:
		return VAES512
	case hasVAES256:
		return VAES256
	case hasAESNI:
		return AESNI
	default:
		return Generic
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if MEOWHASH_SIMD was set.
func IsOverridden() bool {
	return hasOverride
}

// HasAESNI returns true if VEX-encoded AES-NI is available.
func HasAESNI() bool {
	return hasAESNI
}

// HasVAES256 returns true if vector AES on YMM registers is available.
func HasVAES256() bool {
	return hasVAES256
}

// HasVAES512 returns true if vector AES on ZMM registers is available.
func HasVAES512() bool {
	return hasVAES512
}
