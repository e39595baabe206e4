package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/forthsyntax/internal/config"
	"github.com/agenthands/forthsyntax/internal/logio"
	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
	"github.com/agenthands/forthsyntax/pkg/compiler/printer"
	"github.com/agenthands/forthsyntax/pkg/forth"
)

// renderSink shows diagnostics for one input as they are reported.
type renderSink struct {
	log     *logio.Logger
	src     string
	color   bool
	context bool
}

func (s *renderSink) Report(d forth.Diagnostic) {
	if s.context {
		s.log.Failf("", "%s", forth.Render(s.src, d, s.color))
	} else {
		s.log.Failf("", "%s", d.String())
	}
}

func (s *renderSink) failed() bool { return s.log.Errors() > 0 }

func (o *options) frontend(w io.Writer, name, src string) (*forth.Frontend, *renderSink) {
	sink := &renderSink{
		log:     logio.New(w),
		src:     src,
		color:   o.cfg.Diagnostics.Color,
		context: o.cfg.Diagnostics.Context,
	}
	return forth.New(forth.WithSink(sink), forth.WithSource(name)), sink
}

// writeTree prints node in the configured output format.
func (o *options) writeTree(w io.Writer, node ast.Node) error {
	if o.cfg.Output.Format == config.FormatForth {
		if err := printer.Fprint(w, node); err != nil {
			return err
		}
		if _, ok := node.(*ast.ForthProgram); !ok {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
	return o.encode(w, ast.Encode(node))
}

// writeWords prints a word sequence in the configured output format.
func (o *options) writeWords(w io.Writer, words []ast.Node) error {
	if o.cfg.Output.Format == config.FormatForth {
		parts := make([]string, 0, len(words))
		for _, n := range words {
			s, err := printer.Sprint(n)
			if err != nil {
				return err
			}
			parts = append(parts, s)
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, " "))
		return err
	}
	encoded := make([]any, len(words))
	for i, n := range words {
		encoded[i] = ast.Encode(n)
	}
	return o.encode(w, encoded)
}

func (o *options) encode(w io.Writer, v any) error {
	indent := o.cfg.Output.Indent
	switch o.cfg.Output.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", indent))
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

// readInput reads the file named by the first argument, or standard input
// when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(b), nil
}

// readInline joins the arguments as source text; "-" reads standard input.
func readInline(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 1 && args[0] == "-" {
		return readInput(cmd, args)
	}
	return "<arg>", strings.Join(args, " "), nil
}
