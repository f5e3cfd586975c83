package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meowhash/dedup"
)

func newGetCommand(g *globalFlags) *cobra.Command {
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "get <key> [out]",
		Short: "Restore an object from a deduplicating chunk store",
		Long:  "Write the object addressed by key to out, or to standard output when out is omitted or -.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := dedup.ParseKey(args[0])
			if err != nil {
				return err
			}

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

			if len(args) < 2 || args[1] == "-" {
				err = store.Get(cmd.Context(), key, cmd.OutOrStdout())
			} else {
				err = writeFileAtomic(args[1], func(w io.Writer) error {
					return store.Get(cmd.Context(), key, w)
				})
			}
			if err != nil {
				return err
			}
			return metrics.writeTextfile(sf.metricsFile)
		},
	}

	addStoreFlags(cmd, sf)

	return cmd
}

// writeFileAtomic writes path through a temporary file in the same
// directory, so a failed restore never leaves a partial file behind.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".meowsum-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := write(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
