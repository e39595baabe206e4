package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/agenthands/forthsyntax/internal/config"
	"github.com/agenthands/forthsyntax/internal/panicerr"
	"github.com/agenthands/forthsyntax/pkg/compiler/parser"
	"github.com/agenthands/forthsyntax/pkg/forth"
)

const (
	promptCont = "...    "
	replHelp   = `Type Forth; each complete entry is parsed and its tree printed.
Entries with an open IF, BEGIN, DO or ( continue on the next line.
In program mode an open : definition continues too; in words mode an
entry starting with : is parsed in program mode.

Commands:
  #mode [words|program]   show or switch the parse entry point
  #format [yaml|json|forth]
  #help
  #quit`
)

func newREPLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse interactively",
		Long: `Starts an interactive session. In words mode each entry is parsed as a
bare word sequence; in program mode definitions are accepted too.

` + replHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runREPL(opts *options, out, errOut io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := opts.cfg.REPL.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	s := newSession(opts, out, errOut)
	fmt.Fprintln(out, "forthparse repl, mode", s.mode, "(#help for commands)")

	prompt := opts.cfg.REPL.Prompt
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}

		more, quit := s.feed(line)
		if quit {
			break
		}
		prompt = opts.cfg.REPL.Prompt
		if more {
			prompt = promptCont
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// session holds the state of one interactive loop: the entry being
// accumulated and the current mode.
type session struct {
	opts   *options
	mode   string
	out    io.Writer
	errOut io.Writer
	buf    strings.Builder
}

func newSession(opts *options, out, errOut io.Writer) *session {
	return &session{
		opts:   opts,
		mode:   opts.cfg.REPL.Mode,
		out:    out,
		errOut: errOut,
	}
}

// feed consumes one input line. more reports that the entry is incomplete
// and continues on the next line; quit that the user asked to leave.
func (s *session) feed(line string) (more, quit bool) {
	if s.buf.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), "#") {
		return false, s.command(strings.Fields(line))
	}

	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
	src := s.buf.String()
	if strings.TrimSpace(src) == "" {
		s.buf.Reset()
		return false, false
	}

	f, _ := s.opts.frontend(s.errOut, "", src)
	var err error
	if s.mode == config.ModeProgram || startsColon(src) {
		prog, perr := f.TryParse(src)
		if err = perr; err == nil {
			err = s.opts.writeTree(s.out, prog)
		}
	} else {
		words, perr := f.TryParseWords(src)
		if err = perr; err == nil {
			err = s.opts.writeWords(s.out, words)
		}
	}

	if errors.Is(err, parser.ErrUnterminated) {
		return true, false
	}
	s.buf.Reset()
	if err != nil {
		s.fail(f, err)
	}
	return false, false
}

// fail shows a failed entry: syntax errors as diagnostics, anything else
// as a plain error, with the stack of a recovered panic when verbose.
func (s *session) fail(f *forth.Frontend, err error) {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		f.Report(err)
		return
	}
	fmt.Fprintf(s.errOut, "Error: %v\n", err)
	if stack := panicerr.PanicStack(err); stack != "" && s.opts.verbose {
		fmt.Fprintln(s.errOut, stack)
	}
}

// startsColon reports whether the first token of src is ':'.
func startsColon(src string) bool {
	fields := strings.Fields(src)
	return len(fields) > 0 && fields[0] == ":"
}

func (s *session) command(fields []string) (quit bool) {
	switch fields[0] {
	case "#quit", "#q", "#exit":
		return true
	case "#help":
		fmt.Fprintln(s.out, replHelp)
	case "#mode":
		if len(fields) > 1 {
			switch fields[1] {
			case config.ModeWords, config.ModeProgram:
				s.mode = fields[1]
			default:
				fmt.Fprintf(s.errOut, "unknown mode %q\n", fields[1])
				return false
			}
		}
		fmt.Fprintln(s.out, "mode", s.mode)
	case "#format":
		if len(fields) > 1 {
			prev := s.opts.cfg.Output.Format
			s.opts.cfg.Output.Format = fields[1]
			if err := s.opts.cfg.Validate(); err != nil {
				s.opts.cfg.Output.Format = prev
				fmt.Fprintln(s.errOut, err)
				return false
			}
		}
		fmt.Fprintln(s.out, "format", s.opts.cfg.Output.Format)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s, try #help\n", fields[0])
	}
	return false
}
