package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/forthsyntax/internal/config"
)

// errParseFailed is returned after diagnostics have already been shown.
var errParseFailed = errors.New("parse failed")

type options struct {
	cfgFile string
	format  string
	noColor bool
	verbose bool

	cfg *config.Config
}

// NewRootCommand builds the forthparse command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "forthparse",
		Short: "Parse Forth source into a syntax tree",
		Long: `forthparse turns Forth source into the syntax tree consumed by
downstream interpreters and compilers.

Commands:
  parse  - parse a whole program
  def    - parse exactly one definition
  words  - parse a bare word sequence
  check  - syntax-check many files
  fmt    - print canonical source
  repl   - interactive parsing`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $FORTHPARSE_CONFIG or ./forthparse.toml)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format: yaml, json or forth")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show stack traces for internal failures")

	root.AddCommand(
		newParseCmd(opts),
		newDefCmd(opts),
		newWordsCmd(opts),
		newCheckCmd(opts),
		newFmtCmd(opts),
		newREPLCmd(opts),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return execute(NewRootCommand(), os.Stderr)
}

func execute(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errParseFailed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (o *options) load() error {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.Load(o.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.noColor {
		cfg.Diagnostics.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
