// Package parser turns a Forth token stream into an ast tree.
//
// Three entry rules are provided: a whole program, exactly one definition,
// and a bare word sequence as typed at a REPL. Keywords are recognized by
// position: the scanner only produces identifiers, and the grammar consults
// lexer.LookupKeyword wherever a keyword could begin or end a construct.
package parser

import (
	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
	"github.com/agenthands/forthsyntax/pkg/compiler/lexer"
)

// MaxNesting bounds how deeply IF, BEGIN and DO constructs may nest.
const MaxNesting = 10000

// Parser is a single-use recursive descent parser with two tokens of
// lookahead. It holds no state that outlives one parse.
type Parser struct {
	scanner *lexer.Scanner
	curTok  lexer.Token
	peekTok lexer.Token
	src     []byte
	depth   int
}

func NewParser(s *lexer.Scanner, src []byte) *Parser {
	p := &Parser{
		scanner: s,
		src:     src,
	}
	// Read two tokens, so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.scanner.Next()
}

// enter records that a construct opened at opener is being parsed. Every
// successful enter must be paired with leave.
func (p *Parser) enter(opener lexer.Token) error {
	if p.depth >= MaxNesting {
		return p.tooDeep(opener)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) text(tok lexer.Token) string {
	return tok.Text(p.src)
}

// kind classifies tok in keyword position.
func (p *Parser) kind(tok lexer.Token) lexer.Kind {
	if tok.Kind != lexer.KindIdentifier {
		return tok.Kind
	}
	k, _ := lexer.LookupKeyword(p.text(tok))
	return k
}

func (p *Parser) curKind() lexer.Kind  { return p.kind(p.curTok) }
func (p *Parser) peekKind() lexer.Kind { return p.kind(p.peekTok) }

// Program parses a complete program.
func Program(src []byte) (*ast.ForthProgram, error) {
	return NewParser(lexer.NewScanner(src), src).ParseProgram()
}

// Definition parses exactly one definition or declaration.
func Definition(src []byte) (ast.Node, error) {
	return NewParser(lexer.NewScanner(src), src).ParseDefinition()
}

// Words parses a bare sequence of body elements.
func Words(src []byte) ([]ast.Node, error) {
	return NewParser(lexer.NewScanner(src), src).ParseWords()
}
