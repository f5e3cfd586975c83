//go:build amd64 && !noasm

package simd

// decBlocksAVX merges n consecutive 256-byte blocks at p into s using
// VEX-encoded AESDEC on sixteen XMM registers.
//
//go:noescape
func decBlocksAVX(s *Streams, p *byte, n int)

//go:noescape
func decMergeAVX(a, b *[StreamSize]byte)

// decBlocksVAES256 is decBlocksAVX on eight YMM registers.
//
//go:noescape
func decBlocksVAES256(s *Streams, p *byte, n int)

//go:noescape
func decMergeVAES256(a, b *[StreamSize]byte)

// decBlocksVAES512 is decBlocksAVX on four ZMM registers.
//
//go:noescape
func decBlocksVAES512(s *Streams, p *byte, n int)

//go:noescape
func decMergeVAES512(a, b *[StreamSize]byte)
