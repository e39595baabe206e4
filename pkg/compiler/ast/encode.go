package ast

import "encoding/json"

// The encoded forms carry an explicit "kind" tag so that YAML and JSON dumps
// stay unambiguous for consumers outside Go.

type encodedUnit struct {
	Kind string `yaml:"kind" json:"kind"`
}

type encodedProgram struct {
	Kind  string `yaml:"kind" json:"kind"`
	Forms []any  `yaml:"forms" json:"forms"`
}

type encodedProcedure struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`
	Body []any  `yaml:"body" json:"body"`
}

type encodedVarDecl struct {
	Kind       string `yaml:"kind" json:"kind"`
	Name       string `yaml:"name" json:"name"`
	IsConstant bool   `yaml:"is_constant" json:"is_constant"`
	Value      *int64 `yaml:"value,omitempty" json:"value,omitempty"`
}

type encodedCreate struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`
	Size int64  `yaml:"size" json:"size"`
}

type encodedInteger struct {
	Kind  string `yaml:"kind" json:"kind"`
	Value int64  `yaml:"value" json:"value"`
}

type encodedWord struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`
}

type encodedConditional struct {
	Kind       string `yaml:"kind" json:"kind"`
	Consequent []any  `yaml:"consequent" json:"consequent"`
	Alternate  *[]any `yaml:"alternate,omitempty" json:"alternate,omitempty"`
}

type encodedLoop struct {
	Kind string `yaml:"kind" json:"kind"`
	Body []any  `yaml:"body" json:"body"`
}

func encodeSeq(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = encode(n)
	}
	return out
}

func encode(n Node) any {
	switch n := n.(type) {
	case *ForthProgram:
		return encodedProgram{n.Kind().String(), encodeSeq(n.Forms)}
	case *ProcedureDef:
		return encodedProcedure{n.Kind().String(), n.Name, encodeSeq(n.Body)}
	case *VarDecl:
		e := encodedVarDecl{Kind: n.Kind().String(), Name: n.Name, IsConstant: n.IsConstant}
		if n.Value != nil {
			v := n.Value.Value
			e.Value = &v
		}
		return e
	case *ForthCreate:
		return encodedCreate{n.Kind().String(), n.Name, n.Size.Value}
	case *IntegerLiteral:
		return encodedInteger{n.Kind().String(), n.Value}
	case *WordCall:
		return encodedWord{n.Kind().String(), n.Name}
	case *Conditional:
		e := encodedConditional{Kind: n.Kind().String(), Consequent: encodeSeq(n.Consequent)}
		if n.Alternate != nil {
			alt := encodeSeq(n.Alternate)
			e.Alternate = &alt
		}
		return e
	case *PostTestLoop:
		return encodedLoop{n.Kind().String(), encodeSeq(n.Body)}
	case *CountedLoop:
		return encodedLoop{n.Kind().String(), encodeSeq(n.Body)}
	}
	return encodedUnit{KindUnit.String()}
}

// Encode returns a plain value tree for n, suitable for any struct-tag
// driven encoder.
func Encode(n Node) any { return encode(n) }

func (n *Unit) MarshalYAML() (any, error)           { return encode(n), nil }
func (n *ForthProgram) MarshalYAML() (any, error)   { return encode(n), nil }
func (n *ProcedureDef) MarshalYAML() (any, error)   { return encode(n), nil }
func (n *VarDecl) MarshalYAML() (any, error)        { return encode(n), nil }
func (n *ForthCreate) MarshalYAML() (any, error)    { return encode(n), nil }
func (n *IntegerLiteral) MarshalYAML() (any, error) { return encode(n), nil }
func (n *WordCall) MarshalYAML() (any, error)       { return encode(n), nil }
func (n *Conditional) MarshalYAML() (any, error)    { return encode(n), nil }
func (n *PostTestLoop) MarshalYAML() (any, error)   { return encode(n), nil }
func (n *CountedLoop) MarshalYAML() (any, error)    { return encode(n), nil }

func (n *Unit) MarshalJSON() ([]byte, error)           { return json.Marshal(encode(n)) }
func (n *ForthProgram) MarshalJSON() ([]byte, error)   { return json.Marshal(encode(n)) }
func (n *ProcedureDef) MarshalJSON() ([]byte, error)   { return json.Marshal(encode(n)) }
func (n *VarDecl) MarshalJSON() ([]byte, error)        { return json.Marshal(encode(n)) }
func (n *ForthCreate) MarshalJSON() ([]byte, error)    { return json.Marshal(encode(n)) }
func (n *IntegerLiteral) MarshalJSON() ([]byte, error) { return json.Marshal(encode(n)) }
func (n *WordCall) MarshalJSON() ([]byte, error)       { return json.Marshal(encode(n)) }
func (n *Conditional) MarshalJSON() ([]byte, error)    { return json.Marshal(encode(n)) }
func (n *PostTestLoop) MarshalJSON() ([]byte, error)   { return json.Marshal(encode(n)) }
func (n *CountedLoop) MarshalJSON() ([]byte, error)    { return json.Marshal(encode(n)) }
