package main

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/internal/simd"
)

func newISACommand() *cobra.Command {
	return &cobra.Command{
		Use:   "isa",
		Short: "Show detected CPU features and the active AES kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			brand := cpuid.CPU.BrandName
			if brand == "" {
				brand = "unknown"
			}
			fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "CPU: %s\n", brand)
			fmt.Fprintf(out, "AES-NI+AVX: %v\n", simd.HasAESNI())
			fmt.Fprintf(out, "VAES (256-bit): %v\n", simd.HasVAES256())
			fmt.Fprintf(out, "VAES (512-bit): %v\n", simd.HasVAES512())
			fmt.Fprintf(out, "Active ISA: %s\n", simd.ActiveISA())
			if simd.IsOverridden() {
				fmt.Fprintf(out, "Override: %s\n", simd.EnvOverride)
			}
			for _, w := range []int{128, 256, 512} {
				fmt.Fprintf(out, "Kernel for %d-bit lanes: %s\n", w, simd.KernelFor(w))
			}
			fmt.Fprintf(out, "Meow hash %s (version %d)\n", meowhash.VersionName, meowhash.Version)
			return nil
		},
	}
}
