package mem

import "unsafe"

// Alignment is the widest vector load the kernels issue (one ZMM register).
const Alignment = 64

// AllocAligned returns a zeroed byte slice of length size whose first byte
// sits on an Alignment boundary. The slice keeps its over-allocated backing
// array alive.
func AllocAligned(size int) []byte {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size+Alignment)
	off := AlignOffset(buf, Alignment)
	return buf[off : off+size : off+size]
}

// AllocAlignedUint32 returns n zeroed words starting on an Alignment boundary.
func AllocAlignedUint32(n int) []uint32 {
	if n == 0 {
		return nil
	}
	b := AllocAligned(4 * n)
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(b))), n) //nolint:gosec // b is 64-byte aligned
}

// AlignOffset returns how many bytes b must be advanced for its start to be
// a multiple of align, which must be a power of two.
func AlignOffset(b []byte, align int) int {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b))) //nolint:gosec // address only
	a := uintptr(align)
	return int((a - p&(a-1)) & (a - 1))
}

// IsAligned reports whether b starts on an align boundary. Empty slices are
// always aligned.
func IsAligned(b []byte, align int) bool {
	return len(b) == 0 || AlignOffset(b, align) == 0
}

// Bytes returns the memory of words as bytes without copying.
func Bytes(words []uint32) []byte {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), 4*len(words)) //nolint:gosec // same backing array
}
