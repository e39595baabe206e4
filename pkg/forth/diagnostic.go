package forth

import (
	"errors"
	"io"
	"sync"

	"github.com/agenthands/forthsyntax/internal/logio"
	"github.com/agenthands/forthsyntax/internal/panicerr"
	"github.com/agenthands/forthsyntax/pkg/compiler/parser"
)

// Diagnostic describes one failed parse.
type Diagnostic struct {
	// Source names the input, e.g. a file path; may be empty.
	Source string
	// Kind is zero for failures that are not syntax errors.
	Kind    parser.ErrorKind
	Message string
	Line    uint32
	Column  uint32
	Offset  uint32
	Length  uint32
	// Token is the text of the offending token, empty at end of input.
	Token string
	Err   error
}

func (d Diagnostic) String() string {
	if d.Source == "" {
		return d.Message
	}
	return d.Source + ": " + d.Message
}

func diagnose(source string, err error) Diagnostic {
	if err == nil {
		return Diagnostic{Source: source}
	}
	d := Diagnostic{Source: source, Message: err.Error(), Err: err}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		d.Kind = se.Kind
		d.Line = se.Token.Line
		d.Column = se.Token.Column
		d.Offset = se.Token.Offset
		d.Length = se.Token.Length
		d.Token = se.Text
	} else if panicerr.IsPanic(err) {
		d.Message = "internal parser failure: " + err.Error()
	}
	return d
}

// Sink receives diagnostics from the degrading parse operations.
// Implementations must be safe for concurrent use.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// LogSink reports each diagnostic as an ERROR line.
type LogSink struct {
	*logio.Logger
}

// NewLogSink returns a LogSink writing to w.
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{logio.New(w)}
}

func (s *LogSink) Report(d Diagnostic) {
	s.Errorf("%s", d.String())
}

// CollectSink retains diagnostics in memory.
type CollectSink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (s *CollectSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (s *CollectSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Diagnostic(nil), s.diags...)
}

// Reset discards retained diagnostics.
func (s *CollectSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = nil
}
