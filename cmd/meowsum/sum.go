package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSumCommand() *cobra.Command {
	opts := hashOptions{}

	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print Meow hash digests of files",
		Long: `Print one "<hex>  <name>" line per file. With no file, or when file
is -, standard input is read. The hex is the first --bits bits of the
64-byte digest in memory order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}

			for _, name := range args {
				sum, err := opts.sumFile(name, cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, name)
			}
			return nil
		},
	}

	addHashFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.bits, "bits", 128, "Digest bits to print (32, 64, 128, 256, 512)")

	return cmd
}

func addHashFlags(cmd *cobra.Command, opts *hashOptions) {
	cmd.Flags().StringVar(&opts.lanes, "lanes", "auto", "Processing width (128, 256, 512, auto)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Hash seed")
	cmd.Flags().BoolVar(&opts.aligned, "aligned", false, "Only load aligned blocks; mapped files are hashed in place, other input is staged")
}
