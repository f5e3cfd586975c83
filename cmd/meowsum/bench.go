package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/internal/bench"
	"github.com/hupe1980/meowhash/internal/conv"
)

func newBenchCommand(g *globalFlags) *cobra.Command {
	cfg := bench.DefaultConfig()
	var minSize, maxSize string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure hash throughput at every processing width",
		Long: `Hash random buffers of doubling sizes with random seeds and report
total, mean, min, max and median call times per processing width. All
widths must agree on every digest; a mismatch fails the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			lo, err := humanize.ParseBytes(minSize)
			if err != nil {
				return fmt.Errorf("invalid --min: %w", err)
			}
			hi, err := humanize.ParseBytes(maxSize)
			if err != nil {
				return fmt.Errorf("invalid --max: %w", err)
			}
			if cfg.MinSize, err = conv.Uint64ToInt(lo); err != nil {
				return fmt.Errorf("invalid --min: %w", err)
			}
			if cfg.MaxSize, err = conv.Uint64ToInt(hi); err != nil {
				return fmt.Errorf("invalid --max: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Implementation: %s\n", meowhash.Implementation())
			fmt.Fprintf(out, "Mode: %s\n\n", modeName(cfg.Aligned))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SIZE\tWIDTH\tRUNS\tTOTAL\tMEAN\tMIN\tMAX\tMEDIAN\tTHROUGHPUT")

			_, err = bench.Run(cmd.Context(), cfg, func(r bench.Result) {
				logger.Debug("bench step", "size", r.Size, "width", r.Width, "runs", r.Stats.Runs)
				writeResult(tw, r)
			})
			if ferr := tw.Flush(); err == nil {
				err = ferr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&minSize, "min", "256KiB", "Smallest input size")
	cmd.Flags().StringVar(&maxSize, "max", "32MiB", "Largest input size")
	cmd.Flags().IntVar(&cfg.Runs, "runs", cfg.Runs, "Timed calls at the smallest size (halved per size step)")
	cmd.Flags().BoolVar(&cfg.Aligned, "aligned", false, "Hash 64-byte aligned buffers through HashAligned")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "Input generator seed (0 = time based)")

	return cmd
}

func writeResult(w io.Writer, r bench.Result) {
	s := r.Stats
	fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s/s\n",
		humanize.IBytes(uint64(r.Size)),
		r.Width,
		s.Runs,
		s.Total, s.Mean, s.Min, s.Max, s.Median,
		humanize.IBytes(uint64(r.Throughput())),
	)
}

func modeName(aligned bool) string {
	if aligned {
		return "aligned"
	}
	return "unaligned"
}
