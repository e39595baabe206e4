package parser

import (
	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
	"github.com/agenthands/forthsyntax/pkg/compiler/lexer"
)

// Node constructors. They never fail and never inspect the source beyond
// what they are handed; every sequence they store is non-nil, except a
// missing ELSE branch.

func seq(nodes []ast.Node) []ast.Node {
	if nodes == nil {
		return []ast.Node{}
	}
	return nodes
}

func newProgram(forms []ast.Node) *ast.ForthProgram {
	return &ast.ForthProgram{Forms: seq(forms)}
}

func newProcedure(name string, body []ast.Node) *ast.ProcedureDef {
	return &ast.ProcedureDef{Name: name, Body: seq(body)}
}

func newVariable(name string) *ast.VarDecl {
	return &ast.VarDecl{Name: name}
}

func newConstant(name string, value *ast.IntegerLiteral) *ast.VarDecl {
	return &ast.VarDecl{Name: name, IsConstant: true, Value: value}
}

func newCreate(name string, size *ast.IntegerLiteral) *ast.ForthCreate {
	return &ast.ForthCreate{Name: name, Size: *size}
}

func newLiteral(tok lexer.Token) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Value: tok.Value}
}

func newWordCall(name string) *ast.WordCall {
	return &ast.WordCall{Name: name}
}

// newIndex normalizes I and i to the loop index word "i".
func newIndex() *ast.WordCall {
	return &ast.WordCall{Name: "i"}
}

func newConditional(consequent, alternate []ast.Node, hasElse bool) *ast.Conditional {
	c := &ast.Conditional{Consequent: seq(consequent)}
	if hasElse {
		c.Alternate = seq(alternate)
	}
	return c
}

func newPostTestLoop(body []ast.Node) *ast.PostTestLoop {
	return &ast.PostTestLoop{Body: seq(body)}
}

func newCountedLoop(body []ast.Node) *ast.CountedLoop {
	return &ast.CountedLoop{Body: seq(body)}
}
