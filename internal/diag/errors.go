// Package diag defines the error kinds reported by the minil front end
// and interpreter.
//
// Every failure is an ordinary error value carrying its kind and the
// source position it refers to. Nothing in this package prints or
// terminates the process; the driver decides what to do with an error.
package diag

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kolkov/minil/internal/token"
)

// Kind classifies an Error.
type Kind uint8

const (
	Internal             Kind = iota // Unclassified failure
	SyntaxError                      // Unexpected token or grammar violation
	DuplicateDeclaration             // Name redeclared in the same scope
	UndeclaredVariable               // Reference to a name no active scope declares
	UnbalancedScope                  // Mismatched block delimiters
	InvalidSlot                      // Slot id outside the allocated range
	UnexpectedEndOfInput             // Cursor advanced past the last token
)

// String returns the kind name used in rendered diagnostics.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case UnbalancedScope:
		return "UnbalancedScope"
	case InvalidSlot:
		return "InvalidSlot"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	default:
		return "InternalError"
	}
}

// Error is a positioned failure of a given kind.
type Error struct {
	Kind    Kind
	Pos     token.Position // Source position; zero if unknown
	Message string         // Human-readable description
}

// Error renders the diagnostic as "ERROR (line <n>): <kind>: <message>".
// The line part is omitted when the position is unknown.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("ERROR (line %d): %s: %s", e.Pos.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("ERROR: %s: %s", e.Kind, e.Message)
}

// Line returns the 1-based source line, or 0 if unknown.
func (e *Error) Line() int {
	return e.Pos.Line
}

// Errorf creates an Error of the given kind at pos with a formatted message.
func Errorf(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// As extracts the *Error from err's cause chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Internal if err does not carry one.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return Internal
}

// Is reports whether err is an Error of the given kind.
func Is(err error, kind Kind) bool {
	de, ok := As(err)
	return ok && de.Kind == kind
}

// Common messages as constants for consistency.
const (
	msgDuplicate     = "variable %q is already declared in this scope (first declared on line %d)"
	msgUndeclared    = "variable %q was not declared in any enclosing scope"
	msgInvalidSlot   = "slot %d is out of range (%d slots allocated)"
	msgPopEmptyScope = "cannot close a scope: no scope is open"
)

// Duplicate reports that name is already declared in the current scope.
func Duplicate(pos token.Position, name string, firstLine int) *Error {
	return Errorf(DuplicateDeclaration, pos, msgDuplicate, name, firstLine)
}

// Undeclared reports that name does not resolve in any active scope.
func Undeclared(pos token.Position, name string) *Error {
	return Errorf(UndeclaredVariable, pos, msgUndeclared, name)
}

// BadSlot reports an access to a slot id outside [0, allocated).
func BadSlot(slot, allocated int) *Error {
	return Errorf(InvalidSlot, token.NoPos, msgInvalidSlot, slot, allocated)
}

// EmptyScopeStack reports a pop with no scope to pop.
func EmptyScopeStack(pos token.Position) *Error {
	return Errorf(UnbalancedScope, pos, msgPopEmptyScope)
}
