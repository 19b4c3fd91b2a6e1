// Package token defines lexical tokens for minil.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Operators and delimiters
	operatorStart
	ASSIGN    // =
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
	operatorEnd

	// Keywords
	keywordStart
	VAR   // var
	PRINT // print
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
)

var names = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	ASSIGN:    "ASSIGN",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "OPEN_SCOPE",
	RBRACE:    "CLOSE_SCOPE",
	COMMA:     "COMMA",
	SEMICOLON: "END_OF_LINE",
	VAR:       "VAR",
	PRINT:     "PRINT",
	NAME:      "ID",
	NUMBER:    "NUMBER",
}

// String returns the symbolic name of the token type, as shown by
// token dumps and trace output.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "token(?)"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name or number).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"var":   VAR,
	"print": PRINT,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
