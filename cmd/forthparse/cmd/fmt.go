package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/forthsyntax/pkg/compiler/printer"
)

func newFmtCmd(opts *options) *cobra.Command {
	var (
		write bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file|-]",
		Short: "Print canonical source",
		Long: `Parses a program and prints it back in canonical form: one top-level
form per line, keywords upper-cased, comments dropped.

Examples:
  forthparse fmt prog.fs
  forthparse fmt --write prog.fs
  forthparse fmt --check prog.fs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			f, sink := opts.frontend(cmd.ErrOrStderr(), name, src)
			node := f.Parse(src)
			if sink.failed() {
				return errParseFailed
			}

			var out bytes.Buffer
			if err := printer.Fprint(&out, node); err != nil {
				return err
			}

			switch {
			case check:
				if out.String() != src {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s is not formatted\n", name)
					return errParseFailed
				}
				return nil
			case write:
				if len(args) == 0 || args[0] == "-" {
					return fmt.Errorf("--write needs a file argument")
				}
				info, err := os.Stat(args[0])
				if err != nil {
					return err
				}
				return os.WriteFile(args[0], out.Bytes(), info.Mode().Perm())
			}
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file")
	cmd.Flags().BoolVar(&check, "check", false, "exit non-zero if the file is not in canonical form")
	return cmd
}
