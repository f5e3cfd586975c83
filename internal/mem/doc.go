// Package mem provides aligned buffers for the SIMD kernels.
package mem
