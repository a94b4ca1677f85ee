package dml

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
	tokenEquals
	tokenSemicolon
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenComma:
		return "','"
	case tokenEquals:
		return "'='"
	case tokenSemicolon:
		return "';'"
	}
	return "token"
}

type token struct {
	kind tokenKind
	text string // decoded text for strings, raw text otherwise
	pos  int    // byte offset in the input
}

// lexer produces a token stream over a statement body. The grammar has
// no escapes beyond doubled quotes inside strings, so the lexer stays
// a simple single-pass scanner.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipBlank() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// next returns the next token, advancing the scanner.
func (l *lexer) next() (token, error) {
	l.skipBlank()
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	switch c := l.input[l.pos]; c {
	case '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case '[':
		l.pos++
		return token{kind: tokenLBracket, text: "[", pos: start}, nil
	case ']':
		l.pos++
		return token{kind: tokenRBracket, text: "]", pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokenComma, text: ",", pos: start}, nil
	case '=':
		l.pos++
		return token{kind: tokenEquals, text: "=", pos: start}, nil
	case ';':
		l.pos++
		return token{kind: tokenSemicolon, text: ";", pos: start}, nil
	case '"', '\'':
		return l.lexString(c)
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == '-' || r == '+' || unicode.IsDigit(r) {
		return l.lexNumber()
	}
	if r == '_' || unicode.IsLetter(r) {
		return l.lexIdent()
	}
	return token{}, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, string(r), l.pos)
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (token, error) {
	saved := l.pos
	tok, err := l.next()
	l.pos = saved
	return tok, err
}

// lexString scans a quoted string. A doubled quote character inside
// the string decodes to a single quote.
func (l *lexer) lexString(quote byte) (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == quote {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				sb.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++
			return token{kind: tokenString, text: sb.String(), pos: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, fmt.Errorf("%w: unterminated string starting at offset %d", ErrSyntax, start)
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if c := l.input[l.pos]; c == '-' || c == '+' {
		l.pos++
	}
	digits := 0
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c >= '0' && c <= '9' {
			digits++
			l.pos++
			continue
		}
		if c == '.' {
			l.pos++
			continue
		}
		break
	}
	if digits == 0 {
		return token{}, fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, start)
	}
	return token{kind: tokenNumber, text: l.input[start:l.pos], pos: start}, nil
}

// identifier: letter or underscore, then letters, digits, underscores
// and dots (dots allow qualified field references).
func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			l.pos += size
			continue
		}
		break
	}
	return token{kind: tokenIdent, text: l.input[start:l.pos], pos: start}, nil
}
