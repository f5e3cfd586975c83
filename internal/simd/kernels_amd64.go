//go:build amd64 && !noasm

package simd

// init sets the kernel table based on the active ISA.
// This runs after capability_amd64.go init() has detected CPU features
// and selected the active ISA.
func init() {
	if isISAEnabled(AESNI) {
		kernel128 = Kernel{isa: AESNI, blocks: blocksAESNI, merge: mergeAESNI}
	}

	kernel256 = kernel128
	if isISAEnabled(VAES256) {
		kernel256 = Kernel{isa: VAES256, blocks: blocksVAES256, merge: mergeVAES256}
	}

	kernel512 = kernel256
	if isISAEnabled(VAES512) {
		kernel512 = Kernel{isa: VAES512, blocks: blocksVAES512, merge: mergeVAES512}
	}
}

func blocksAESNI(s *Streams, p []byte) {
	decBlocksAVX(s, &p[0], len(p)/BlockSize)
}

func mergeAESNI(a, b *[StreamSize]byte) {
	decMergeAVX(a, b)
}

func blocksVAES256(s *Streams, p []byte) {
	decBlocksVAES256(s, &p[0], len(p)/BlockSize)
}

func mergeVAES256(a, b *[StreamSize]byte) {
	decMergeVAES256(a, b)
}

func blocksVAES512(s *Streams, p []byte) {
	decBlocksVAES512(s, &p[0], len(p)/BlockSize)
}

func mergeVAES512(a, b *[StreamSize]byte) {
	decMergeVAES512(a, b)
}
