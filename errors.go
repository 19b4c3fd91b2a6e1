package minil

import (
	"fmt"

	"github.com/kolkov/minil/internal/diag"
)

// ErrorKind classifies a ParseError.
type ErrorKind = diag.Kind

// Error kinds reported by Compile.
const (
	SyntaxError          = diag.SyntaxError
	DuplicateDeclaration = diag.DuplicateDeclaration
	UndeclaredVariable   = diag.UndeclaredVariable
	UnbalancedScope      = diag.UnbalancedScope
	UnexpectedEndOfInput = diag.UnexpectedEndOfInput
)

// ParseError represents an error found while parsing and resolving source.
// Nothing is executed when Compile returns a ParseError.
type ParseError struct {
	Kind    ErrorKind // Error category
	Line    int       // 1-based line number, 0 if unknown
	Column  int       // 1-based column number, 0 if unknown
	Message string    // Error description
}

// Error renders the error as "ERROR (line <n>): <kind>: <message>".
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ERROR (line %d): %s: %s", e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("ERROR: %s: %s", e.Kind, e.Message)
}

// RuntimeError represents a failure during execution. It indicates an
// internal defect (such as an out-of-range slot) or an output failure,
// never a mistake in the source program.
type RuntimeError struct {
	Message string // Error description
	Err     error  // Underlying error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("ERROR: runtime: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == kind
}

// toParseError converts an internal front-end error to the public type.
func toParseError(err error) *ParseError {
	if de, ok := diag.As(err); ok {
		return &ParseError{
			Kind:    de.Kind,
			Line:    de.Pos.Line,
			Column:  de.Pos.Column,
			Message: de.Message,
		}
	}
	return &ParseError{Kind: diag.Internal, Message: err.Error()}
}
