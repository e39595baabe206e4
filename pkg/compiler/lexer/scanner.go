package lexer

import "math"

// Scanner performs lexical analysis on Forth source.
// It never fails: malformed input surfaces as KindError tokens.
type Scanner struct {
	source    []byte
	cursor    int
	line      int
	lineStart int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.lineStart = 0
}

// Next returns the next token from the source. Once the input is exhausted
// every call returns a KindEOF token.
func (s *Scanner) Next() Token {
	for {
		s.skipWhitespace()

		if s.cursor >= len(s.source) {
			return s.token(KindEOF, s.cursor, s.cursor)
		}

		start := s.cursor
		for s.cursor < len(s.source) && !isSpace(s.source[s.cursor]) {
			s.cursor++
		}
		word := s.source[start:s.cursor]

		if len(word) == 1 {
			switch word[0] {
			case '(':
				opener := s.token(KindError, start, s.cursor)
				if !s.skipParenComment() {
					return opener
				}
				continue
			case '\\':
				s.skipLineComment()
				continue
			case ':':
				return s.token(KindColon, start, s.cursor)
			case ';':
				return s.token(KindSemicolon, start, s.cursor)
			}
		}

		if v, radix, ok := scanNumber(word); ok {
			tok := s.token(KindNumber, start, s.cursor)
			tok.Value = v
			tok.Radix = radix
			return tok
		} else if radix != 0 {
			// numeric shape, but out of int64 range
			return s.token(KindError, start, s.cursor)
		}

		return s.token(KindIdentifier, start, s.cursor)
	}
}

func (s *Scanner) token(kind Kind, start, end int) Token {
	return Token{
		Kind:   kind,
		Offset: uint32(start),
		Length: uint32(end - start),
		Line:   uint32(s.line),
		Column: uint32(start-s.lineStart) + 1,
	}
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == '\n' {
			s.newline()
		} else if isSpace(ch) {
			s.cursor++
		} else {
			break
		}
	}
}

func (s *Scanner) newline() {
	s.cursor++
	s.line++
	s.lineStart = s.cursor
}

// skipParenComment consumes everything up to and including the first ')'.
// It reports false, leaving the cursor at end of input, if there is none.
func (s *Scanner) skipParenComment() bool {
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case ')':
			s.cursor++
			return true
		case '\n':
			s.newline()
		default:
			s.cursor++
		}
	}
	return false
}

func (s *Scanner) skipLineComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
	}
}

// scanNumber matches [0-9]+ or 0x[0-9A-Fa-f]+. A non-zero radix with ok
// false means the word had numeric shape but overflowed.
func scanNumber(word []byte) (v int64, radix uint8, ok bool) {
	if len(word) > 2 && word[0] == '0' && word[1] == 'x' {
		var u uint64
		for _, ch := range word[2:] {
			d, isHex := hexDigit(ch)
			if !isHex {
				return 0, 0, false
			}
			if u>>60 != 0 {
				radix = 16
				for _, rest := range word[2:] {
					if _, isHex := hexDigit(rest); !isHex {
						return 0, 0, false
					}
				}
				return 0, radix, false
			}
			u = u<<4 | uint64(d)
		}
		return int64(u), 16, true
	}

	if len(word) == 0 {
		return 0, 0, false
	}
	for _, ch := range word {
		if !isDigit(ch) {
			return 0, 0, false
		}
	}
	for _, ch := range word {
		d := int64(ch - '0')
		if v > (math.MaxInt64-d)/10 {
			return 0, 10, false
		}
		v = v*10 + d
	}
	return v, 10, true
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
