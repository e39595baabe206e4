// Package printer writes an ast tree back out as canonical Forth source.
// Parsing the output yields a tree equal to the input.
package printer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/agenthands/forthsyntax/pkg/compiler/ast"
)

type Printer struct {
	buf bytes.Buffer
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Print renders node. A ForthProgram puts each top-level form on its own
// line; everything else is printed on a single line.
func (p *Printer) Print(node ast.Node) ([]byte, error) {
	p.buf.Reset()
	if prog, ok := node.(*ast.ForthProgram); ok {
		for _, form := range prog.Forms {
			if err := p.printNode(form); err != nil {
				return nil, err
			}
			p.buf.WriteByte('\n')
		}
	} else if err := p.printNode(node); err != nil {
		return nil, err
	}
	return p.buf.Bytes(), nil
}

func (p *Printer) printNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Unit:
		// prints nothing

	case *ast.ProcedureDef:
		p.words(":", n.Name)
		if err := p.printSeq(n.Body); err != nil {
			return err
		}
		p.words(";")

	case *ast.VarDecl:
		if !n.IsConstant {
			p.words("VARIABLE", n.Name)
			break
		}
		if n.Value == nil {
			return fmt.Errorf("constant %s has no value", n.Name)
		}
		p.words(literal(n.Value.Value), "CONSTANT", n.Name)

	case *ast.ForthCreate:
		p.words("CREATE", n.Name, literal(n.Size.Value), "ALLOT")

	case *ast.IntegerLiteral:
		p.words(literal(n.Value))

	case *ast.WordCall:
		p.words(n.Name)

	case *ast.Conditional:
		p.words("IF")
		if err := p.printSeq(n.Consequent); err != nil {
			return err
		}
		if n.Alternate != nil {
			p.words("ELSE")
			if err := p.printSeq(n.Alternate); err != nil {
				return err
			}
		}
		p.words("THEN")

	case *ast.PostTestLoop:
		p.words("BEGIN")
		if err := p.printSeq(n.Body); err != nil {
			return err
		}
		p.words("UNTIL")

	case *ast.CountedLoop:
		p.words("DO")
		if err := p.printSeq(n.Body); err != nil {
			return err
		}
		p.words("LOOP")

	case *ast.ForthProgram:
		return fmt.Errorf("nested program")

	default:
		return fmt.Errorf("unknown node %T", node)
	}
	return nil
}

func (p *Printer) printSeq(nodes []ast.Node) error {
	for _, n := range nodes {
		if err := p.printNode(n); err != nil {
			return err
		}
	}
	return nil
}

// words appends space separated words, separating them from what is
// already on the current line.
func (p *Printer) words(ws ...string) {
	for _, w := range ws {
		if b := p.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
			p.buf.WriteByte(' ')
		}
		p.buf.WriteString(w)
	}
}

// literal prints in decimal; negative values (from wrapped hex literals)
// go back out as hex so they stay lexable.
func literal(v int64) string {
	if v < 0 {
		return "0x" + strconv.FormatUint(uint64(v), 16)
	}
	return strconv.FormatInt(v, 10)
}

// Fprint writes the canonical source for node to w.
func Fprint(w io.Writer, node ast.Node) error {
	out, err := NewPrinter().Print(node)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Sprint returns the canonical source for node.
func Sprint(node ast.Node) (string, error) {
	out, err := NewPrinter().Print(node)
	return string(out), err
}
