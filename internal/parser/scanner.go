package parser

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokPunct
)

// token is a lexeme of C# source. Whitespace, comments, preprocessor lines
// and string/char literals never produce tokens.
type token struct {
	kind   tokenKind
	text   string
	offset int // byte offset into the scanned text
	line   int // 1-based
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) punct(text string) bool { return t.is(tokPunct, text) }

// scanner is a minimal C# lexer: it only distinguishes what the class and
// property extractors need to see.
type scanner struct {
	src  string
	pos  int
	line int
}

func scan(src string) []token {
	s := &scanner{src: src, line: 1}
	var toks []token
	for {
		tok, ok := s.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekN(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) advance() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
	}
	return ch
}

func (s *scanner) next() (token, bool) {
	for s.pos < len(s.src) {
		ch := s.peek()
		switch {
		case ch == '\n' || ch == '\r' || ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v':
			s.advance()
		case ch == '/' && s.peekN(1) == '/':
			s.skipLine()
		case ch == '/' && s.peekN(1) == '*':
			s.skipBlockComment()
		case ch == '#' && s.atLineStart():
			s.skipLine()
		case ch == '"' && s.quoteRun(s.pos) >= 3:
			s.skipRawString()
		case ch == '$' && s.quoteRun(s.pos+s.dollarRun()) >= 3:
			s.pos += s.dollarRun()
			s.skipRawString()
		case ch == '"':
			s.advance()
			s.skipString(false)
		case ch == '@' && s.peekN(1) == '"':
			s.pos += 2
			s.skipString(true)
		case ch == '$' && s.peekN(1) == '"':
			s.pos += 2
			s.skipString(false)
		case (ch == '$' && s.peekN(1) == '@' || ch == '@' && s.peekN(1) == '$') && s.peekN(2) == '"':
			s.pos += 3
			s.skipString(true)
		case ch == '\'':
			s.advance()
			s.skipChar()
		default:
			return s.lexeme(), true
		}
	}
	return token{}, false
}

func (s *scanner) lexeme() token {
	start, line := s.pos, s.line
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	switch {
	case isIdentStart(r) || r == '@' && s.identFollows(size):
		s.pos += size
		s.consumeIdent()
		return token{kind: tokIdent, text: s.src[start:s.pos], offset: start, line: line}
	case r >= '0' && r <= '9':
		s.pos += size
		for s.pos < len(s.src) {
			c := s.src[s.pos]
			if !(c == '.' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				break
			}
			s.pos++
		}
		return token{kind: tokNumber, text: s.src[start:s.pos], offset: start, line: line}
	}

	s.pos += size
	return token{kind: tokPunct, text: s.src[start:s.pos], offset: start, line: line}
}

func (s *scanner) identFollows(skip int) bool {
	r, _ := utf8.DecodeRuneInString(s.src[s.pos+skip:])
	return isIdentStart(r)
}

func (s *scanner) consumeIdent() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) {
			return
		}
		s.pos += size
	}
}

func (s *scanner) atLineStart() bool {
	for i := s.pos - 1; i >= 0; i-- {
		switch s.src[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (s *scanner) skipLine() {
	for s.pos < len(s.src) && s.peek() != '\n' {
		s.advance()
	}
}

func (s *scanner) skipBlockComment() {
	s.pos += 2
	for s.pos < len(s.src) {
		if s.peek() == '*' && s.peekN(1) == '/' {
			s.pos += 2
			return
		}
		s.advance()
	}
}

// skipString consumes a string literal body after its opening quote.
// Verbatim strings escape quotes by doubling them; regular strings use '\'.
func (s *scanner) skipString(verbatim bool) {
	for s.pos < len(s.src) {
		ch := s.advance()
		switch {
		case verbatim && ch == '"':
			if s.peek() == '"' {
				s.advance()
				continue
			}
			return
		case !verbatim && ch == '\\':
			s.advance()
		case !verbatim && ch == '"':
			return
		case !verbatim && ch == '\n':
			// Unterminated regular string: stop at end of line.
			return
		}
	}
}

// quoteRun returns the number of consecutive '"' starting at offset at.
func (s *scanner) quoteRun(at int) int {
	n := 0
	for at+n < len(s.src) && s.src[at+n] == '"' {
		n++
	}
	return n
}

// dollarRun returns the number of consecutive '$' at the current position.
func (s *scanner) dollarRun() int {
	n := 0
	for s.pos+n < len(s.src) && s.src[s.pos+n] == '$' {
		n++
	}
	return n
}

// skipRawString consumes a raw string literal. It is closed by a run of at
// least as many quotes as opened it and has no escapes.
func (s *scanner) skipRawString() {
	n := s.quoteRun(s.pos)
	s.pos += n
	for s.pos < len(s.src) {
		if run := s.quoteRun(s.pos); run >= n {
			s.pos += run
			return
		} else if run > 0 {
			s.pos += run
			continue
		}
		s.advance()
	}
}

func (s *scanner) skipChar() {
	for s.pos < len(s.src) {
		ch := s.advance()
		switch ch {
		case '\\':
			s.advance()
		case '\'', '\n':
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
