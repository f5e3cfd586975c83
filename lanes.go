package meowhash

import "github.com/hupe1980/meowhash/internal/simd"

// Lanes selects the processing width used to compress blocks.
//
// Only Lanes128, Lanes256 and Lanes512 implement it. The width is purely a
// performance choice: every width produces the same digest bytes. When the
// CPU cannot execute a width, the widest narrower kernel runs instead.
type Lanes interface {
	// Bits returns the processing width in bits.
	Bits() int

	kernel() simd.Kernel
}

// Lanes128 processes four 128-bit lanes per stream (AES-NI).
type Lanes128 struct{}

// Lanes256 processes two 256-bit lanes per stream (VAES on YMM).
type Lanes256 struct{}

// Lanes512 processes one 512-bit lane per stream (VAES on ZMM).
type Lanes512 struct{}

func (Lanes128) Bits() int { return 128 }
func (Lanes256) Bits() int { return 256 }
func (Lanes512) Bits() int { return 512 }

func (Lanes128) kernel() simd.Kernel { return simd.KernelFor(128) }
func (Lanes256) kernel() simd.Kernel { return simd.KernelFor(256) }
func (Lanes512) kernel() simd.Kernel { return simd.KernelFor(512) }
