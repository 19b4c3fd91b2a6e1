package semantic

import (
	"sort"

	"github.com/kolkov/minil/internal/diag"
	"github.com/kolkov/minil/internal/token"
)

// Variable holds information about a declared variable.
// Its current value lives in the owning SymbolTable's slot store,
// addressed by Slot.
type Variable struct {
	Slot int            // Global storage slot, unique for the whole program
	Name string         // Variable name
	Pos  token.Position // Declaration position
}

// Line returns the line the variable was declared on.
func (v *Variable) Line() int {
	return v.Pos.Line
}

// slotStore is the flat, append-only value store shared by every scope of
// a SymbolTable. Slots outlive the scope that declared them.
type slotStore struct {
	vars   []*Variable
	values []float64
}

// alloc appends a new zero-valued slot for v and returns its id.
func (s *slotStore) alloc(v *Variable) int {
	v.Slot = len(s.values)
	s.vars = append(s.vars, v)
	s.values = append(s.values, 0)
	return v.Slot
}

func (s *slotStore) valid(slot int) bool {
	return slot >= 0 && slot < len(s.values)
}

// VarTable holds the variables of exactly one lexical scope.
// No two variables in a VarTable share a name.
type VarTable struct {
	vars  map[string]*Variable
	store *slotStore
}

func newVarTable(store *slotStore) *VarTable {
	return &VarTable{
		vars:  make(map[string]*Variable),
		store: store,
	}
}

// Declare adds name to this scope and returns its freshly allocated slot.
// Fails with DuplicateDeclaration if name is already declared here.
func (vt *VarTable) Declare(name string, pos token.Position) (int, error) {
	if prev, exists := vt.vars[name]; exists {
		return -1, diag.Duplicate(pos, name, prev.Line())
	}
	v := &Variable{Name: name, Pos: pos}
	vt.vars[name] = v
	return vt.store.alloc(v), nil
}

// Lookup returns the variable declared as name in this scope.
// Fails with UndeclaredVariable if absent.
func (vt *VarTable) Lookup(name string, pos token.Position) (*Variable, error) {
	v, ok := vt.vars[name]
	if !ok {
		return nil, diag.Undeclared(pos, name)
	}
	return v, nil
}

// Has reports whether name is declared in this scope.
func (vt *VarTable) Has(name string) bool {
	_, ok := vt.vars[name]
	return ok
}

// Names returns the names declared in this scope, sorted.
func (vt *VarTable) Names() []string {
	names := make([]string, 0, len(vt.vars))
	for name := range vt.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
