package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/forthsyntax/pkg/compiler/lexer"
)

func scanAll(src string) []lexer.Token {
	s := lexer.NewScanner([]byte(src))
	var toks []lexer.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.KindEOF {
			return toks
		}
	}
}

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScannerZeroAlloc(t *testing.T) {
	src := []byte(`: sum 0 swap 0 DO i + LOOP ; ( comment ) 0xFF \ trailing`)
	s := lexer.NewScanner(src)

	allocs := testing.AllocsPerRun(10, func() {
		s.Reset(src)
		for {
			tok := s.Next()
			if tok.Kind == lexer.KindEOF || tok.Kind == lexer.KindError {
				break
			}
		}
	})

	assert.Zero(t, allocs, "expected 0 allocations")
}

func TestScannerKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []lexer.Kind
	}{
		{
			name: "definition",
			src:  ": square dup * ;",
			want: []lexer.Kind{
				lexer.KindColon, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindIdentifier, lexer.KindSemicolon, lexer.KindEOF,
			},
		},
		{
			name: "keywords stay identifiers",
			src:  "IF ELSE THEN variable",
			want: []lexer.Kind{
				lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindIdentifier, lexer.KindEOF,
			},
		},
		{
			name: "paren comment elided",
			src:  "( This is a comment ) : test dup ;",
			want: []lexer.Kind{
				lexer.KindColon, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindSemicolon, lexer.KindEOF,
			},
		},
		{
			name: "multi-line paren comment",
			src:  "1 ( spans\nlines ) 2",
			want: []lexer.Kind{lexer.KindNumber, lexer.KindNumber, lexer.KindEOF},
		},
		{
			name: "line comment elided",
			src:  "dup \\ rest of line ; :\nswap",
			want: []lexer.Kind{lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindEOF},
		},
		{
			name: "attached paren is a word",
			src:  "(foo) \\bar",
			want: []lexer.Kind{lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindEOF},
		},
		{
			name: "number-like words",
			src:  "1- 0= 0< 0x 0xG1 -5",
			want: []lexer.Kind{
				lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindEOF,
			},
		},
		{
			name: "glued punctuation is a word",
			src:  ":: ;; :x",
			want: []lexer.Kind{
				lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindIdentifier,
				lexer.KindEOF,
			},
		},
		{
			name: "unterminated comment",
			src:  "dup ( never closed",
			want: []lexer.Kind{lexer.KindIdentifier, lexer.KindError},
		},
		{
			name: "empty",
			src:  " \t\n ",
			want: []lexer.Kind{lexer.KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lexer.NewScanner([]byte(tt.src))
			for i, exp := range tt.want {
				tok := s.Next()
				assert.Equal(t, exp, tok.Kind, "token %d", i)
			}
		})
	}
}

func TestScannerNumbers(t *testing.T) {
	tests := []struct {
		src   string
		kind  lexer.Kind
		value int64
		radix uint8
	}{
		{"42", lexer.KindNumber, 42, 10},
		{"007", lexer.KindNumber, 7, 10},
		{"0xFF", lexer.KindNumber, 255, 16},
		{"0xff", lexer.KindNumber, 255, 16},
		{"0x7FFFFFFFFFFFFFFF", lexer.KindNumber, 9223372036854775807, 16},
		{"0xFFFFFFFFFFFFFFFF", lexer.KindNumber, -1, 16},
		{"9223372036854775807", lexer.KindNumber, 9223372036854775807, 10},
		{"9223372036854775808", lexer.KindError, 0, 0},
		{"0x1FFFFFFFFFFFFFFFF", lexer.KindError, 0, 0},
		{"0XFF", lexer.KindIdentifier, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := lexer.NewScanner([]byte(tt.src)).Next()
			require.Equal(t, tt.kind, tok.Kind)
			if tt.kind == lexer.KindNumber {
				assert.Equal(t, tt.value, tok.Value)
				assert.Equal(t, tt.radix, tok.Radix)
			}
		})
	}
}

func TestScannerPositions(t *testing.T) {
	src := ": abs\n  dup 0< ( test )\n\tIF negate THEN ;"
	toks := scanAll(src)
	require.Len(t, toks, 9)

	type pos struct {
		text      string
		line, col uint32
	}
	var got []pos
	for _, tok := range toks[:len(toks)-1] {
		got = append(got, pos{tok.Text([]byte(src)), tok.Line, tok.Column})
	}
	assert.Equal(t, []pos{
		{":", 1, 1},
		{"abs", 1, 3},
		{"dup", 2, 3},
		{"0<", 2, 7},
		{"IF", 3, 2},
		{"negate", 3, 5},
		{"THEN", 3, 12},
		{";", 3, 17},
	}, got)
}

func TestScannerUnterminatedCommentPosition(t *testing.T) {
	toks := scanAll("1\n  ( open\nstill open")
	require.Equal(t, []lexer.Kind{lexer.KindNumber, lexer.KindError, lexer.KindEOF}, kinds(toks))
	assert.EqualValues(t, 2, toks[1].Line)
	assert.EqualValues(t, 3, toks[1].Column)
	assert.EqualValues(t, 1, toks[1].Length)
}

func TestScannerEOFIsSticky(t *testing.T) {
	s := lexer.NewScanner([]byte("dup"))
	assert.Equal(t, lexer.KindIdentifier, s.Next().Kind)
	for i := 0; i < 3; i++ {
		assert.Equal(t, lexer.KindEOF, s.Next().Kind)
	}
}

func TestLookupKeyword(t *testing.T) {
	for _, text := range []string{"if", "If", "IF"} {
		k, ok := lexer.LookupKeyword(text)
		assert.True(t, ok, text)
		assert.Equal(t, lexer.KindIf, k, text)
	}

	_, ok := lexer.LookupKeyword("dup")
	assert.False(t, ok)
	_, ok = lexer.LookupKeyword("VARIABLES")
	assert.False(t, ok)

	// only ASCII letters fold
	for _, text := range []string{"ı", "ELſE", "ıf", "İF", "ｉｆ"} {
		k, ok := lexer.LookupKeyword(text)
		assert.False(t, ok, text)
		assert.Equal(t, lexer.KindIdentifier, k, text)
		assert.False(t, lexer.IsReserved(text), text)
	}

	assert.True(t, lexer.IsReserved("constant"))
	assert.True(t, lexer.IsReserved("LOOP"))
	assert.False(t, lexer.IsReserved("i"))
	assert.False(t, lexer.IsReserved("square"))
}

func FuzzScanner(f *testing.F) {
	f.Add(": sum 0 swap 0 DO i + LOOP ;")
	f.Add("( unterminated")
	f.Add("0xFFFFFFFFFFFFFFFFFF \\ x")

	f.Fuzz(func(t *testing.T, src string) {
		s := lexer.NewScanner([]byte(src))
		last := -1
		for i := 0; i <= len(src)+1; i++ {
			tok := s.Next()
			if tok.Kind == lexer.KindEOF {
				return
			}
			if int(tok.Offset) <= last {
				t.Fatalf("offset did not advance: %d <= %d", tok.Offset, last)
			}
			last = int(tok.Offset)
			if int(tok.Offset+tok.Length) > len(src) {
				t.Fatalf("token past end of input")
			}
		}
		t.Fatalf("scanner did not terminate")
	})
}
