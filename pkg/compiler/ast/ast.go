// Package ast defines the syntax tree handed to downstream interpreters and
// compilers. The set of node types is closed: every Node is one of the
// pointer types declared in this file.
package ast

// Kind tags the concrete variant of a Node.
type Kind uint8

const (
	KindUnit Kind = iota
	KindProgram
	KindProcedureDef
	KindVarDecl
	KindCreate
	KindIntegerLiteral
	KindWordCall
	KindConditional
	KindPostTestLoop
	KindCountedLoop
)

var kindNames = [...]string{
	KindUnit:           "Unit",
	KindProgram:        "ForthProgram",
	KindProcedureDef:   "ProcedureDef",
	KindVarDecl:        "VarDecl",
	KindCreate:         "ForthCreate",
	KindIntegerLiteral: "IntegerLiteral",
	KindWordCall:       "WordCall",
	KindConditional:    "Conditional",
	KindPostTestLoop:   "PostTestLoop",
	KindCountedLoop:    "CountedLoop",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Kind() Kind
	node()
}

// Unit is the empty tree returned when parsing fails.
type Unit struct{}

func (*Unit) Kind() Kind { return KindUnit }
func (*Unit) node()      {}

// ForthProgram is the root of a whole-program parse.
type ForthProgram struct {
	Forms []Node
}

func (*ForthProgram) Kind() Kind { return KindProgram }
func (*ForthProgram) node()      {}

// ProcedureDef: : NAME BODY ;
type ProcedureDef struct {
	Name string
	Body []Node
}

func (*ProcedureDef) Kind() Kind { return KindProcedureDef }
func (*ProcedureDef) node()      {}

// VarDecl: VARIABLE NAME, or LITERAL CONSTANT NAME.
// Value is nil for variables.
type VarDecl struct {
	Name       string
	IsConstant bool
	Value      *IntegerLiteral
}

func (*VarDecl) Kind() Kind { return KindVarDecl }
func (*VarDecl) node()      {}

// ForthCreate: CREATE NAME SIZE ALLOT
type ForthCreate struct {
	Name string
	Size IntegerLiteral
}

func (*ForthCreate) Kind() Kind { return KindCreate }
func (*ForthCreate) node()      {}

// IntegerLiteral holds a decimal or hexadecimal number; the radix is not kept.
type IntegerLiteral struct {
	Value int64
}

func (*IntegerLiteral) Kind() Kind { return KindIntegerLiteral }
func (*IntegerLiteral) node()      {}

// WordCall invokes a primitive or user-defined word.
type WordCall struct {
	Name string
}

func (*WordCall) Kind() Kind { return KindWordCall }
func (*WordCall) node()      {}

// Conditional: IF CONSEQUENT [ELSE ALTERNATE] THEN
// The tested flag is whatever is on top of the stack at runtime.
// Alternate is nil when there is no ELSE.
type Conditional struct {
	Consequent []Node
	Alternate  []Node
}

func (*Conditional) Kind() Kind { return KindConditional }
func (*Conditional) node()      {}

// HasAlternate reports whether the conditional carries an ELSE branch.
func (c *Conditional) HasAlternate() bool { return c.Alternate != nil }

// PostTestLoop: BEGIN BODY UNTIL
type PostTestLoop struct {
	Body []Node
}

func (*PostTestLoop) Kind() Kind { return KindPostTestLoop }
func (*PostTestLoop) node()      {}

// CountedLoop: DO BODY LOOP
// The limit and start operands are the body elements preceding DO.
type CountedLoop struct {
	Body []Node
}

func (*CountedLoop) Kind() Kind { return KindCountedLoop }
func (*CountedLoop) node()      {}
