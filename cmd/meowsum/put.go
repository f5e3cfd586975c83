package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newPutCommand(g *globalFlags) *cobra.Command {
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "put <file>",
		Short: "Store a file in a deduplicating chunk store",
		Long: `Split the file into chunks, store the chunks not yet present and
print the object key. Use - to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			metrics, err := newStoreMetrics()
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), sf, logger, metrics)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			m, err := store.Put(cmd.Context(), r)
			if err != nil {
				return err
			}
			if err := metrics.writeTextfile(sf.metricsFile); err != nil {
				return err
			}

			st := store.Stats()
			fmt.Fprintln(cmd.OutOrStdout(), m.Key)
			logger.Info("stored",
				"file", args[0],
				"size", humanize.IBytes(uint64(m.Size)),
				"chunks", len(m.Chunks),
				"written", st.ChunksWritten,
				"deduplicated", st.ChunksDeduplicated,
				"stored_bytes", humanize.IBytes(uint64(st.BytesStored)),
				"hash_throughput", humanize.IBytes(uint64(metrics.basic.GetStats().HashThroughput))+"/s",
			)
			return nil
		},
	}

	addStoreFlags(cmd, sf)

	return cmd
}
