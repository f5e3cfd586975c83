package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// errCheckFailed is returned when at least one listed file does not match.
var errCheckFailed = errors.New("some checksums did not match")

func newCheckCommand() *cobra.Command {
	opts := hashOptions{}

	cmd := &cobra.Command{
		Use:   "check <sumfile>",
		Short: "Verify digests listed by meowsum sum",
		Long: `Read "<hex>  <name>" lines and report "name: OK" or "name: FAILED"
for each. The digest width of every line follows from its hex length.
Use - to read the list from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bits = 512
			if err := opts.validate(); err != nil {
				return err
			}

			var list io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				list = f
			}

			return runCheck(cmd.OutOrStdout(), list, opts)
		},
	}

	addHashFlags(cmd, &opts)

	return cmd
}

func runCheck(w io.Writer, list io.Reader, opts hashOptions) error {
	failed := 0
	sc := bufio.NewScanner(list)

	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		want, name, ok := strings.Cut(line, "  ")
		if !ok {
			return fmt.Errorf("line %d: malformed (want \"<hex>  <name>\")", lineNo)
		}
		want = strings.ToLower(want)

		lineOpts := opts
		lineOpts.bits = len(want) * 4
		if err := lineOpts.validate(); err != nil {
			return fmt.Errorf("line %d: digest of %d hex characters", lineNo, len(want))
		}

		// Entries for standard input cannot be re-read and never match.
		got, err := lineOpts.sumFile(name, eofReader{})
		if err != nil || name == "-" || got != want {
			fmt.Fprintf(w, "%s: FAILED\n", name)
			failed++
			continue
		}
		fmt.Fprintf(w, "%s: OK\n", name)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d failed", errCheckFailed, failed)
	}
	return nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
