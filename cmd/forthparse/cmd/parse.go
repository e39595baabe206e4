package cmd

import (
	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a whole program",
		Long: `Parses a complete program and prints its ForthProgram tree.

Examples:
  forthparse parse examples/countdown.fs
  forthparse parse --format json prog.fs
  cat prog.fs | forthparse parse`,
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
			return opts.writeTree(cmd.OutOrStdout(), node)
		},
	}
}

func newDefCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "def <source...|->",
		Short: "Parse exactly one definition",
		Long: `Parses a single colon definition, VARIABLE, CONSTANT or CREATE ... ALLOT.

Examples:
  forthparse def ": square dup * ;"
  forthparse def 42 CONSTANT answer
  echo "VARIABLE counter" | forthparse def -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInline(cmd, args)
			if err != nil {
				return err
			}
			f, sink := opts.frontend(cmd.ErrOrStderr(), name, src)
			node := f.ParseDefinition(src)
			if sink.failed() {
				return errParseFailed
			}
			return opts.writeTree(cmd.OutOrStdout(), node)
		},
	}
}

func newWordsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "words <source...|->",
		Short: "Parse a bare word sequence",
		Long: `Parses body elements with no enclosing definition, as typed at a REPL.

Examples:
  forthparse words dup swap drop
  forthparse words "5 0 DO i . LOOP"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInline(cmd, args)
			if err != nil {
				return err
			}
			f, sink := opts.frontend(cmd.ErrOrStderr(), name, src)
			words := f.ParseWords(src)
			if sink.failed() {
				return errParseFailed
			}
			return opts.writeWords(cmd.OutOrStdout(), words)
		},
	}
}
