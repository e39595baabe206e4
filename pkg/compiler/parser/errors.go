package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/forthsyntax/pkg/compiler/lexer"
)

// ErrorKind classifies a grammar failure.
type ErrorKind uint8

const (
	// UnexpectedToken: the token at the current position is not one of the
	// kinds the rule accepts there (including premature end of input).
	UnexpectedToken ErrorKind = iota + 1
	// UnterminatedConstruct: an opener (:, IF, BEGIN, DO or a comment) was
	// never closed before end of input.
	UnterminatedConstruct
	// UnknownTopLevelForm: the input does not start any recognized definition.
	UnknownTopLevelForm
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedConstruct:
		return "unterminated construct"
	case UnknownTopLevelForm:
		return "unknown top-level form"
	}
	return "syntax error"
}

// Sentinels for errors.Is matching against a *SyntaxError.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnterminated    = errors.New("unterminated construct")
	ErrUnknownForm     = errors.New("unknown top-level form")
)

// SyntaxError reports where and why a parse failed. Token is the offending
// token; for unterminated constructs it is the opener.
type SyntaxError struct {
	Kind     ErrorKind
	Token    lexer.Token
	Text     string
	Expected []string
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Token.Line, e.Token.Column, e.Msg)
}

// Is matches the sentinel error for e.Kind.
func (e *SyntaxError) Is(target error) bool {
	switch target {
	case ErrUnexpectedToken:
		return e.Kind == UnexpectedToken
	case ErrUnterminated:
		return e.Kind == UnterminatedConstruct
	case ErrUnknownForm:
		return e.Kind == UnknownTopLevelForm
	}
	return false
}

func (p *Parser) unexpected(expected ...string) error {
	tok := p.curTok
	var found string
	if tok.Kind == lexer.KindEOF {
		found = "end of input"
	} else {
		found = fmt.Sprintf("%q", p.text(tok))
	}
	msg := "unexpected " + found
	if len(expected) > 0 {
		msg += ", expected " + orList(expected)
	}
	return &SyntaxError{
		Kind:     UnexpectedToken,
		Token:    tok,
		Text:     p.text(tok),
		Expected: expected,
		Msg:      msg,
	}
}

func (p *Parser) unterminated(opener lexer.Token, closers ...string) error {
	text := p.text(opener)
	return &SyntaxError{
		Kind:     UnterminatedConstruct,
		Token:    opener,
		Text:     text,
		Expected: closers,
		Msg:      fmt.Sprintf("unterminated %s: reached end of input before %s", describeOpener(text), orList(closers)),
	}
}

func (p *Parser) tooDeep(opener lexer.Token) error {
	text := p.text(opener)
	return &SyntaxError{
		Kind:  UnexpectedToken,
		Token: opener,
		Text:  text,
		Msg:   fmt.Sprintf("%s nested too deep: more than %d open constructs", text, MaxNesting),
	}
}

func (p *Parser) unknownForm() error {
	tok := p.curTok
	expected := []string{"':'", "VARIABLE", "CONSTANT", "CREATE"}
	var msg string
	if tok.Kind == lexer.KindEOF {
		msg = "empty input, expected a definition: " + orList(expected)
	} else {
		msg = fmt.Sprintf("%q does not start a definition, expected %s", p.text(tok), orList(expected))
	}
	return &SyntaxError{
		Kind:     UnknownTopLevelForm,
		Token:    tok,
		Text:     p.text(tok),
		Expected: expected,
		Msg:      msg,
	}
}

// lexError converts a KindError token into the matching grammar failure.
func (p *Parser) lexError() error {
	tok := p.curTok
	text := p.text(tok)
	if text == "(" {
		return p.unterminated(tok, "')'")
	}
	return &SyntaxError{
		Kind:  UnexpectedToken,
		Token: tok,
		Text:  text,
		Msg:   fmt.Sprintf("integer literal %q out of 64-bit range", text),
	}
}

func describeOpener(text string) string {
	switch text {
	case ":":
		return "definition"
	case "(":
		return "comment"
	}
	return strings.ToUpper(text)
}

func orList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
