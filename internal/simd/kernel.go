package simd

const (
	// BlockSize is the number of input bytes consumed per block step.
	BlockSize = 256
	// StreamSize is the width of one stream accumulator in bytes.
	StreamSize = 64
)

// Streams holds the four stream accumulators back to back: bytes
// [64k, 64k+64) belong to stream k and absorb the same range of every block.
type Streams [BlockSize]byte

// Stream returns a pointer to stream k.
func (s *Streams) Stream(k int) *[StreamSize]byte {
	return (*[StreamSize]byte)(s[k*StreamSize : (k+1)*StreamSize])
}

// Kernel is one implementation of the AES merge primitives.
// All kernels produce bit-identical results; they differ only in how many
// 128-bit lanes a single instruction covers.
type Kernel struct {
	isa    ISA
	blocks func(s *Streams, p []byte)
	merge  func(a, b *[StreamSize]byte)
}

// ISA returns the instruction set backing the kernel.
func (k Kernel) ISA() ISA {
	return k.isa
}

// String returns the ISA name.
func (k Kernel) String() string {
	return k.isa.String()
}

// Blocks merges every full 256-byte block of p into the four streams.
// Trailing bytes beyond the last full block are ignored.
func (k Kernel) Blocks(s *Streams, p []byte) {
	if len(p) < BlockSize {
		return
	}
	k.blocks(s, p[:len(p)&^(BlockSize-1)])
}

// Merge applies one AES decryption round to every 128-bit lane of a,
// using the matching lane of b as the round key.
func (k Kernel) Merge(a, b *[StreamSize]byte) {
	k.merge(a, b)
}

var genericKernel = Kernel{
	isa:    Generic,
	blocks: blocksGeneric,
	merge:  mergeGeneric,
}

// Kernel table indexed by width - set once at init. Platform-specific
// init() functions replace entries with assembly versions when available.
var (
	kernel128 = genericKernel
	kernel256 = genericKernel
	kernel512 = genericKernel
)

// KernelFor returns the kernel for the given processing width in bits.
// When the CPU cannot execute the requested width the next narrower
// available kernel is returned; its output is identical.
// Widths other than 128, 256 and 512 return the 128-bit kernel.
func KernelFor(width int) Kernel {
	switch width {
	case 512:
		return kernel512
	case 256:
		return kernel256
	default:
		return kernel128
	}
}

// Best returns the widest kernel enabled on this CPU.
func Best() Kernel {
	return kernel512
}

// GenericKernel returns the pure Go kernel regardless of CPU support.
func GenericKernel() Kernel {
	return genericKernel
}
