// Package lexer provides minil source code tokenization.
//
// At every offset the lexer takes the longest token it can: "variable" is
// one name, not the keyword "var" followed by "iable". Keywords are names
// that appear in the keyword table. Whitespace and "#" comments separate
// tokens and produce none.
package lexer

import (
	"unicode/utf8"

	"github.com/kolkov/minil/internal/token"
)

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Line returns the 1-based source line of the token.
func (t Token) Line() int {
	return t.Pos.Line
}

// Lexer tokenizes minil source code.
type Lexer struct {
	src string         // Source code
	pos token.Position // Position of the next unread byte
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return NewFromString(string(src))
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return &Lexer{
		src: src,
		pos: token.Position{Line: 1, Column: 1},
	}
}

// WithFilename records filename in the positions of all tokens scanned
// after the call.
func (l *Lexer) WithFilename(name string) *Lexer {
	l.pos.Filename = name
	return l
}

// Scan scans and returns the next token. At end of input it returns an
// EOF token, and keeps returning it on further calls.
func (l *Lexer) Scan() Token {
	l.skipSpaceAndComments()

	pos := l.pos
	if pos.Offset >= len(l.src) {
		return Token{Type: token.EOF, Pos: pos}
	}

	ch := l.src[pos.Offset]
	switch {
	case isLetter(ch):
		return l.scanIdent(pos)
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		return l.scanNumber(pos)
	}

	if typ, ok := punct[ch]; ok {
		return l.emit(typ, pos, 1)
	}

	// Unknown character: report the whole rune, not its first byte.
	_, size := utf8.DecodeRuneInString(l.src[pos.Offset:])
	return l.emit(token.ILLEGAL, pos, size)
}

// punct maps single-character tokens to their types.
var punct = map[byte]token.Token{
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	';': token.SEMICOLON,
}

// emit returns a token of n bytes starting at pos and moves past it.
func (l *Lexer) emit(typ token.Token, pos token.Position, n int) Token {
	text := l.src[pos.Offset : pos.Offset+n]
	l.pos = pos.Advance(text)
	return Token{Type: typ, Pos: pos, Value: text}
}

// peek returns the byte i bytes past the current offset, or 0 past the end.
func (l *Lexer) peek(i int) byte {
	if off := l.pos.Offset + i; off < len(l.src) {
		return l.src[off]
	}
	return 0
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	n := 1
	for isIdentContinue(l.peek(n)) {
		n++
	}
	tok := l.emit(token.NAME, pos, n)
	tok.Type = token.LookupIdent(tok.Value)
	return tok
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	n := 0
	for isDigit(l.peek(n)) {
		n++
	}
	if l.peek(n) == '.' {
		n++
		for isDigit(l.peek(n)) {
			n++
		}
	}
	// Only consume e/E if a valid exponent follows, so "1e" is 1 then e.
	if c := l.peek(n); c == 'e' || c == 'E' {
		e := n + 1
		if c := l.peek(e); c == '+' || c == '-' {
			e++
		}
		if isDigit(l.peek(e)) {
			n = e
			for isDigit(l.peek(n)) {
				n++
			}
		}
	}
	return l.emit(token.NUMBER, pos, n)
}

func (l *Lexer) skipSpaceAndComments() {
	start := l.pos.Offset
	end := start
	for end < len(l.src) {
		switch l.src[end] {
		case ' ', '\t', '\r', '\n':
			end++
		case '#':
			for end < len(l.src) && l.src[end] != '\n' {
				end++
			}
		default:
			l.pos = l.pos.Advance(l.src[start:end])
			return
		}
	}
	l.pos = l.pos.Advance(l.src[start:end])
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentContinue(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// Tokenize scans src to the end and returns every token, terminated by
// a single EOF token.
func Tokenize(src string) []Token {
	return NewFromString(src).All()
}

// All scans the remaining input and returns every token, terminated by
// a single EOF token.
func (l *Lexer) All() []Token {
	var toks []Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}
