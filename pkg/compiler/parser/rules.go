package parser

import (
	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
	"github.com/agenthands/forthsyntax/pkg/compiler/lexer"
)

// ParseProgram consumes tokens until end of input, collecting top-level
// forms: definitions, declarations, and bare body elements.
func (p *Parser) ParseProgram() (*ast.ForthProgram, error) {
	var forms []ast.Node

	for p.curTok.Kind != lexer.KindEOF {
		var (
			node ast.Node
			err  error
		)
		switch {
		case p.startsDefinition():
			node, err = p.parseDefinition()
		case p.curKind() == lexer.KindConstant, p.curKind() == lexer.KindAllot:
			// declaration keywords with nothing to attach to
			err = p.unknownForm()
		default:
			node, err = p.parseBodyElement()
		}
		if err != nil {
			return nil, err
		}
		forms = append(forms, node)
	}

	return newProgram(forms), nil
}

// ParseDefinition parses exactly one definition or declaration followed by
// end of input.
func (p *Parser) ParseDefinition() (ast.Node, error) {
	if p.curTok.Kind == lexer.KindError {
		return nil, p.lexError()
	}
	if !p.startsDefinition() {
		return nil, p.unknownForm()
	}
	node, err := p.parseDefinition()
	if err != nil {
		return nil, err
	}
	if p.curTok.Kind == lexer.KindError {
		return nil, p.lexError()
	}
	if p.curTok.Kind != lexer.KindEOF {
		return nil, p.unexpected("end of input")
	}
	return node, nil
}

// ParseWords parses body elements until end of input. Empty input yields an
// empty, non-nil sequence.
func (p *Parser) ParseWords() ([]ast.Node, error) {
	body, err := p.parseBody(nil)
	if err != nil {
		return nil, err
	}
	return seq(body), nil
}

func (p *Parser) startsDefinition() bool {
	switch p.curKind() {
	case lexer.KindColon, lexer.KindVariable, lexer.KindCreate:
		return true
	case lexer.KindNumber:
		return p.peekKind() == lexer.KindConstant
	}
	return false
}

func (p *Parser) parseDefinition() (ast.Node, error) {
	switch p.curKind() {
	case lexer.KindColon:
		return p.parseProcedure()
	case lexer.KindVariable:
		return p.parseVariable()
	case lexer.KindCreate:
		return p.parseCreate()
	case lexer.KindNumber:
		return p.parseConstant()
	}
	return nil, p.unknownForm()
}

// : NAME BODY ;
func (p *Parser) parseProcedure() (ast.Node, error) {
	colon := p.curTok
	p.nextToken() // skip :

	if p.curTok.Kind == lexer.KindEOF {
		return nil, p.unterminated(colon, "';'")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(&colon, lexer.KindSemicolon)
	if err != nil {
		return nil, err
	}
	p.nextToken() // skip ;

	return newProcedure(name, body), nil
}

// VARIABLE NAME [;]
func (p *Parser) parseVariable() (ast.Node, error) {
	p.nextToken() // skip VARIABLE
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	p.skipOptionalSemicolon()
	return newVariable(name), nil
}

// LITERAL CONSTANT NAME [;]
func (p *Parser) parseConstant() (ast.Node, error) {
	value := newLiteral(p.curTok)
	p.nextToken() // skip literal
	p.nextToken() // skip CONSTANT
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	p.skipOptionalSemicolon()
	return newConstant(name, value), nil
}

// CREATE NAME LITERAL ALLOT [;]
func (p *Parser) parseCreate() (ast.Node, error) {
	p.nextToken() // skip CREATE
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if p.curTok.Kind == lexer.KindError {
		return nil, p.lexError()
	}
	if p.curTok.Kind != lexer.KindNumber {
		return nil, p.unexpected("integer literal")
	}
	size := newLiteral(p.curTok)
	p.nextToken()

	if p.curKind() != lexer.KindAllot {
		if p.curTok.Kind == lexer.KindError {
			return nil, p.lexError()
		}
		return nil, p.unexpected("ALLOT")
	}
	p.nextToken() // skip ALLOT

	p.skipOptionalSemicolon()
	return newCreate(name, size), nil
}

// parseName consumes a definition name: an identifier that is neither a
// reserved keyword nor a number.
func (p *Parser) parseName() (string, error) {
	switch {
	case p.curTok.Kind == lexer.KindError:
		return "", p.lexError()
	case p.curTok.Kind != lexer.KindIdentifier, lexer.IsReserved(p.text(p.curTok)):
		return "", p.unexpected("name")
	}
	name := p.text(p.curTok)
	p.nextToken()
	return name, nil
}

func (p *Parser) skipOptionalSemicolon() {
	if p.curTok.Kind == lexer.KindSemicolon {
		p.nextToken()
	}
}

// parseBody collects body elements until the current token is one of the
// terminators, which is left unconsumed. With a nil opener the body runs to
// end of input; otherwise end of input means opener was never closed.
func (p *Parser) parseBody(opener *lexer.Token, terminators ...lexer.Kind) ([]ast.Node, error) {
	var body []ast.Node
	for {
		k := p.curKind()
		if isTerminator(k, terminators) {
			return body, nil
		}
		if k == lexer.KindEOF {
			if opener == nil {
				return body, nil
			}
			return nil, p.unterminated(*opener, closerNames(terminators)...)
		}

		node, err := p.parseBodyElement()
		if err != nil {
			return nil, err
		}
		body = append(body, node)
	}
}

func (p *Parser) parseBodyElement() (ast.Node, error) {
	tok := p.curTok
	switch p.curKind() {
	case lexer.KindNumber:
		p.nextToken()
		return newLiteral(tok), nil
	case lexer.KindIf:
		return p.parseConditional()
	case lexer.KindBegin:
		return p.parsePostTestLoop()
	case lexer.KindDo:
		return p.parseCountedLoop()
	case lexer.KindIndex:
		p.nextToken()
		return newIndex(), nil
	case lexer.KindIdentifier, lexer.KindVariable, lexer.KindConstant, lexer.KindCreate, lexer.KindAllot:
		p.nextToken()
		return newWordCall(p.text(tok)), nil
	case lexer.KindError:
		return nil, p.lexError()
	}
	// ; : ELSE THEN UNTIL LOOP out of place, or end of input
	return nil, p.unexpected("word", "integer literal")
}

// IF CONSEQUENT [ELSE ALTERNATE] THEN
func (p *Parser) parseConditional() (ast.Node, error) {
	ifTok := p.curTok
	if err := p.enter(ifTok); err != nil {
		return nil, err
	}
	defer p.leave()
	p.nextToken() // skip IF

	consequent, err := p.parseBody(&ifTok, lexer.KindElse, lexer.KindThen)
	if err != nil {
		return nil, err
	}

	var alternate []ast.Node
	hasElse := p.curKind() == lexer.KindElse
	if hasElse {
		p.nextToken() // skip ELSE
		alternate, err = p.parseBody(&ifTok, lexer.KindThen)
		if err != nil {
			return nil, err
		}
	}
	p.nextToken() // skip THEN

	return newConditional(consequent, alternate, hasElse), nil
}

// BEGIN BODY UNTIL
func (p *Parser) parsePostTestLoop() (ast.Node, error) {
	beginTok := p.curTok
	if err := p.enter(beginTok); err != nil {
		return nil, err
	}
	defer p.leave()
	p.nextToken() // skip BEGIN

	body, err := p.parseBody(&beginTok, lexer.KindUntil)
	if err != nil {
		return nil, err
	}
	p.nextToken() // skip UNTIL

	return newPostTestLoop(body), nil
}

// DO BODY LOOP
func (p *Parser) parseCountedLoop() (ast.Node, error) {
	doTok := p.curTok
	if err := p.enter(doTok); err != nil {
		return nil, err
	}
	defer p.leave()
	p.nextToken() // skip DO

	body, err := p.parseBody(&doTok, lexer.KindLoop)
	if err != nil {
		return nil, err
	}
	p.nextToken() // skip LOOP

	return newCountedLoop(body), nil
}

func isTerminator(k lexer.Kind, terminators []lexer.Kind) bool {
	for _, t := range terminators {
		if k == t {
			return true
		}
	}
	return false
}

func closerNames(terminators []lexer.Kind) []string {
	names := make([]string, len(terminators))
	for i, t := range terminators {
		names[i] = t.String()
	}
	return names
}
