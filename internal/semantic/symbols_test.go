package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/minil/internal/diag"
	"github.com/kolkov/minil/internal/token"
)

func pos(line int) token.Position {
	return token.Position{Line: line, Column: 1}
}

func TestVarTableDeclare(t *testing.T) {
	vt := newVarTable(&slotStore{})

	x, err := vt.Declare("x", pos(1))
	require.NoError(t, err)
	y, err := vt.Declare("y", pos(2))
	require.NoError(t, err)

	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
	assert.True(t, vt.Has("x"))
	assert.False(t, vt.Has("z"))
	assert.Equal(t, []string{"x", "y"}, vt.Names())
}

func TestVarTableDuplicate(t *testing.T) {
	vt := newVarTable(&slotStore{})
	_, err := vt.Declare("x", pos(1))
	require.NoError(t, err)

	_, err = vt.Declare("x", pos(4))
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.DuplicateDeclaration))
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), "first declared on line 1")
	assert.Equal(t, []string{"x"}, vt.Names(), "failed declaration must not be recorded")
}

func TestVarTableLookup(t *testing.T) {
	vt := newVarTable(&slotStore{})
	_, err := vt.Declare("x", pos(3))
	require.NoError(t, err)

	v, err := vt.Lookup("x", pos(5))
	require.NoError(t, err)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, 3, v.Line())

	_, err = vt.Lookup("y", pos(5))
	assert.Equal(t, diag.UndeclaredVariable, diag.KindOf(err))
}

func TestVarTablesShareStore(t *testing.T) {
	store := &slotStore{}
	outer := newVarTable(store)
	inner := newVarTable(store)

	a, _ := outer.Declare("a", pos(1))
	b, _ := inner.Declare("a", pos(2))
	c, _ := outer.Declare("c", pos(3))

	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.Len(t, store.values, 3)
	assert.Len(t, store.vars, 3)
}
