package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meowhash"
)

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "meowsum",
		Short: "Fast non-cryptographic checksums with the Meow hash",
		Long: `meowsum computes Meow hash digests of files, verifies checksum lists,
benchmarks the AES kernels of this CPU and stores files in a
content-addressed, deduplicating chunk store.`,
		Version:      versionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.initConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configFile, "config", "", "Config file (default $HOME/.meowsum.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(
		newSumCommand(),
		newCheckCommand(),
		newBenchCommand(g),
		newPutCommand(g),
		newGetCommand(g),
		newISACommand(),
	)

	return cmd
}

// logger builds the logger selected by the global flags, writing to w.
func (g *globalFlags) logger(w io.Writer) (*meowhash.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(g.logFormat) {
	case "text":
		return meowhash.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return meowhash.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", g.logFormat)
	}
}
