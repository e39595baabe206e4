package lexer

var keywords = map[string]Kind{
	"VARIABLE": KindVariable,
	"CONSTANT": KindConstant,
	"CREATE":   KindCreate,
	"ALLOT":    KindAllot,
	"IF":       KindIf,
	"ELSE":     KindElse,
	"THEN":     KindThen,
	"BEGIN":    KindBegin,
	"UNTIL":    KindUntil,
	"DO":       KindDo,
	"LOOP":     KindLoop,
	"I":        KindIndex,
}

// LookupKeyword classifies an identifier's text. Matching ignores ASCII
// case only; any non-ASCII byte makes text an ordinary identifier.
// It reports false for anything that is not a keyword.
func LookupKeyword(text string) (Kind, bool) {
	if len(text) > len("VARIABLE") {
		return KindIdentifier, false
	}
	var upper [len("VARIABLE")]byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 0x80:
			return KindIdentifier, false
		case 'a' <= c && c <= 'z':
			c -= 'a' - 'A'
		}
		upper[i] = c
	}
	k, ok := keywords[string(upper[:len(text)])]
	if !ok {
		return KindIdentifier, false
	}
	return k, true
}

// IsReserved reports whether text may not be used as a definition name.
// The loop index word I is an ordinary word and can be redefined.
func IsReserved(text string) bool {
	k, ok := LookupKeyword(text)
	return ok && k != KindIndex
}
