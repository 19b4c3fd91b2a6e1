// Package parser provides a minil recursive descent parser.
package parser

import (
	"fmt"

	"github.com/kolkov/minil/internal/diag"
	"github.com/kolkov/minil/internal/lexer"
	"github.com/kolkov/minil/internal/token"
)

// tokenName returns a human-readable name for a token type.
func tokenName(t token.Token) string {
	switch t {
	case token.ILLEGAL:
		return "illegal character"
	case token.EOF:
		return "end of file"
	case token.ASSIGN:
		return "="
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LBRACE:
		return "{"
	case token.RBRACE:
		return "}"
	case token.COMMA:
		return ","
	case token.SEMICOLON:
		return ";"
	case token.VAR:
		return "var"
	case token.PRINT:
		return "print"
	case token.NAME:
		return "name"
	case token.NUMBER:
		return "number"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// tokenDesc describes tok for error messages: literals and illegal
// characters by their text, keywords and punctuation by their spelling.
func tokenDesc(tok lexer.Token) string {
	switch {
	case tok.Type.IsLiteral() || tok.Type == token.ILLEGAL:
		return fmt.Sprintf("%q", tok.Value)
	case tok.Type.IsKeyword() || tok.Type.IsOperator():
		return fmt.Sprintf("%q", tokenName(tok.Type))
	default:
		return tokenName(tok.Type)
	}
}

// errorf creates a SyntaxError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *diag.Error {
	return diag.Errorf(diag.SyntaxError, pos, format, args...)
}

// expectedError creates an error for an unexpected token. Running out of
// tokens is reported as UnexpectedEndOfInput at the last real token.
func expectedError(got lexer.Token, last token.Position, want string) *diag.Error {
	if got.Type == token.EOF {
		pos := last
		if !pos.IsValid() {
			pos = got.Pos
		}
		return diag.Errorf(diag.UnexpectedEndOfInput, pos, "expected %s, got end of file", want)
	}
	return errorf(got.Pos, "expected %s, got %s", want, tokenDesc(got))
}

// unbalanced creates an UnbalancedScope error.
func unbalanced(pos token.Position, format string, args ...any) *diag.Error {
	return diag.Errorf(diag.UnbalancedScope, pos, format, args...)
}
