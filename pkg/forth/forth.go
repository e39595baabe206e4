// Package forth is the entry point for parsing Forth source.
//
// Each operation comes in two forms. The Try forms return the parse error to
// the caller. The plain forms never fail: on error they report exactly one
// Diagnostic to the frontend's Sink and return a degraded result, Unit for
// programs and definitions and an empty sequence for word sequences.
package forth

import (
	"os"

	"github.com/agenthands/forthsyntax/internal/panicerr"
	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
	"github.com/agenthands/forthsyntax/pkg/compiler/parser"
)

// Frontend parses source and routes diagnostics. It holds no parse state
// and is safe for concurrent use as long as its Sink is.
type Frontend struct {
	sink   Sink
	source string
}

type Option interface{ apply(f *Frontend) }

type sinkOption struct{ Sink }
type sourceOption string

// WithSink routes diagnostics to s instead of standard error.
func WithSink(s Sink) Option { return sinkOption{s} }

// WithSource names the input in diagnostics.
func WithSource(name string) Option { return sourceOption(name) }

func (o sinkOption) apply(f *Frontend)   { f.sink = o.Sink }
func (o sourceOption) apply(f *Frontend) { f.source = string(o) }

// New returns a Frontend reporting to standard error unless configured
// otherwise.
func New(opts ...Option) *Frontend {
	f := &Frontend{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(f)
		}
	}
	if f.sink == nil {
		f.sink = NewLogSink(os.Stderr)
	}
	return f
}

// With returns a copy of f with opts applied.
func (f *Frontend) With(opts ...Option) *Frontend {
	g := *f
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&g)
		}
	}
	return &g
}

// TryParse parses a complete program.
func (f *Frontend) TryParse(src string) (prog *ast.ForthProgram, err error) {
	err = panicerr.Recover("parse program", func() (err error) {
		prog, err = parser.Program([]byte(src))
		return err
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// TryParseDefinition parses exactly one definition: a ProcedureDef,
// VarDecl or ForthCreate.
func (f *Frontend) TryParseDefinition(src string) (node ast.Node, err error) {
	err = panicerr.Recover("parse definition", func() (err error) {
		node, err = parser.Definition([]byte(src))
		return err
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// TryParseWords parses a bare sequence of body elements.
func (f *Frontend) TryParseWords(src string) (words []ast.Node, err error) {
	err = panicerr.Recover("parse words", func() (err error) {
		words, err = parser.Words([]byte(src))
		return err
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Parse returns a ForthProgram, or Unit after reporting a diagnostic.
func (f *Frontend) Parse(src string) ast.Node {
	prog, err := f.TryParse(src)
	if err != nil {
		f.Report(err)
		return &ast.Unit{}
	}
	return prog
}

// ParseDefinition returns the definition node, or Unit after reporting a
// diagnostic.
func (f *Frontend) ParseDefinition(src string) ast.Node {
	node, err := f.TryParseDefinition(src)
	if err != nil {
		f.Report(err)
		return &ast.Unit{}
	}
	return node
}

// ParseWords returns the parsed sequence, or an empty sequence after
// reporting a diagnostic.
func (f *Frontend) ParseWords(src string) []ast.Node {
	words, err := f.TryParseWords(src)
	if err != nil {
		f.Report(err)
		return []ast.Node{}
	}
	return words
}

// Diagnose converts a parse error into a Diagnostic attributed to f's
// source name. A nil error yields an empty Diagnostic.
func (f *Frontend) Diagnose(err error) Diagnostic {
	return diagnose(f.source, err)
}

// Report sends the Diagnostic for err to f's Sink. A nil error reports
// nothing.
func (f *Frontend) Report(err error) {
	if err == nil {
		return
	}
	f.sink.Report(f.Diagnose(err))
}

// Parse parses a program, reporting failures to standard error.
func Parse(src string) ast.Node { return New().Parse(src) }

// ParseDefinition parses one definition, reporting failures to standard
// error.
func ParseDefinition(src string) ast.Node { return New().ParseDefinition(src) }

// ParseWords parses a word sequence, reporting failures to standard error.
func ParseWords(src string) []ast.Node { return New().ParseWords(src) }
