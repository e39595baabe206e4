package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindIdentifier
	KindNumber
	KindColon     // :
	KindSemicolon // ;

	// Keyword kinds are never emitted by the Scanner. The parser obtains them
	// from LookupKeyword when an identifier sits in a keyword position.
	KindVariable
	KindConstant
	KindCreate
	KindAllot
	KindIf
	KindElse
	KindThen
	KindBegin
	KindUntil
	KindDo
	KindLoop
	KindIndex // I
)

var kindNames = [...]string{
	KindEOF:        "end of input",
	KindError:      "error",
	KindIdentifier: "identifier",
	KindNumber:     "number",
	KindColon:      "':'",
	KindSemicolon:  "';'",
	KindVariable:   "VARIABLE",
	KindConstant:   "CONSTANT",
	KindCreate:     "CREATE",
	KindAllot:      "ALLOT",
	KindIf:         "IF",
	KindElse:       "ELSE",
	KindThen:       "THEN",
	KindBegin:      "BEGIN",
	KindUntil:      "UNTIL",
	KindDo:         "DO",
	KindLoop:       "LOOP",
	KindIndex:      "I",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token represents a lexical unit pointing back to the source.
// Value and Radix are only meaningful for KindNumber.
type Token struct {
	Kind   Kind
	Offset uint32
	Length uint32
	Line   uint32
	Column uint32
	Value  int64
	Radix  uint8
}

// Text returns the literal source text of the token.
func (t Token) Text(src []byte) string {
	end := t.Offset + t.Length
	if int(end) > len(src) {
		return ""
	}
	return string(src[t.Offset:end])
}
