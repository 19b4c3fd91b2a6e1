// Package semantic provides name resolution for minil programs.
//
// A SymbolTable is a stack of VarTables, one per open lexical scope,
// plus a flat slot store holding the value of every variable ever
// declared:
//   - Declarations go into the innermost scope; a name may appear once
//     per scope and may shadow names of enclosing scopes.
//   - Resolution searches innermost to outermost.
//   - Slot ids are assigned 0, 1, 2, ... in declaration order and are
//     never reused. Get and Set by slot ignore scope liveness, so a slot
//     stays addressable after its declaring scope is popped.
package semantic

import (
	"github.com/kolkov/minil/internal/diag"
	"github.com/kolkov/minil/internal/token"
)

// SymbolTable implements nested lexical scoping over a flat slot store.
// The zero value is not usable; call NewSymbolTable.
type SymbolTable struct {
	scopes []*VarTable
	store  *slotStore
}

// NewSymbolTable creates a symbol table with no open scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: &slotStore{}}
}

// PushScope opens a new, empty innermost scope.
func (st *SymbolTable) PushScope() {
	st.scopes = append(st.scopes, newVarTable(st.store))
}

// PopScope closes the innermost scope. Its variables stop resolving by
// name but their slots remain valid.
func (st *SymbolTable) PopScope() error {
	if len(st.scopes) == 0 {
		return diag.EmptyScopeStack(token.NoPos)
	}
	st.scopes[len(st.scopes)-1] = nil
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Depth returns the number of open scopes.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Scope returns the innermost open scope, or nil if none is open.
func (st *SymbolTable) Scope() *VarTable {
	if len(st.scopes) == 0 {
		return nil
	}
	return st.scopes[len(st.scopes)-1]
}

// Declare declares name in the innermost scope and returns its slot.
func (st *SymbolTable) Declare(name string, pos token.Position) (int, error) {
	scope := st.Scope()
	if scope == nil {
		return -1, diag.Errorf(diag.UnbalancedScope, pos, "cannot declare %q: no scope is open", name)
	}
	return scope.Declare(name, pos)
}

// Lookup finds the nearest enclosing declaration of name.
func (st *SymbolTable) Lookup(name string) (*Variable, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if v, ok := st.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name resolves in any open scope.
func (st *SymbolTable) Has(name string) bool {
	_, ok := st.Lookup(name)
	return ok
}

// Resolve returns the slot of the nearest enclosing declaration of name.
// Fails with UndeclaredVariable if no open scope declares it.
func (st *SymbolTable) Resolve(name string, pos token.Position) (int, error) {
	v, ok := st.Lookup(name)
	if !ok {
		return -1, diag.Undeclared(pos, name)
	}
	return v.Slot, nil
}

// Get returns the current value of slot.
func (st *SymbolTable) Get(slot int) (float64, error) {
	if !st.store.valid(slot) {
		return 0, diag.BadSlot(slot, len(st.store.values))
	}
	return st.store.values[slot], nil
}

// Set stores v into slot.
func (st *SymbolTable) Set(slot int, v float64) error {
	if !st.store.valid(slot) {
		return diag.BadSlot(slot, len(st.store.values))
	}
	st.store.values[slot] = v
	return nil
}

// Slots returns the number of slots allocated so far.
func (st *SymbolTable) Slots() int {
	return len(st.store.values)
}

// ValueOf reads a variable by name, resolving through the open scopes.
// This is the slow path; compiled code addresses slots directly.
func (st *SymbolTable) ValueOf(name string, pos token.Position) (float64, error) {
	slot, err := st.Resolve(name, pos)
	if err != nil {
		return 0, err
	}
	return st.store.values[slot], nil
}

// SetByName assigns a variable declared in the innermost scope.
// Names visible only through an enclosing scope are rejected.
func (st *SymbolTable) SetByName(name string, pos token.Position, v float64) error {
	scope := st.Scope()
	if scope == nil {
		return diag.Undeclared(pos, name)
	}
	variable, err := scope.Lookup(name, pos)
	if err != nil {
		return err
	}
	st.store.values[variable.Slot] = v
	return nil
}

// ResetValues sets every slot back to 0. Declarations are kept.
func (st *SymbolTable) ResetValues() {
	clear(st.store.values)
}
