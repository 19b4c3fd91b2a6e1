package interp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/minil/internal/ast"
	"github.com/kolkov/minil/internal/diag"
	"github.com/kolkov/minil/internal/interp"
	"github.com/kolkov/minil/internal/parser"
	"github.com/kolkov/minil/internal/semantic"
	"github.com/kolkov/minil/internal/token"
)

// run parses and executes src, returning everything it printed.
func run(t *testing.T, src string, config interp.Config) (string, *semantic.SymbolTable) {
	t.Helper()
	st := semantic.NewSymbolTable()
	root, err := parser.Parse(src, st, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	config.Output = &out
	if config.Separator == "" {
		config.Separator = interp.DefaultSeparator
	}
	require.NoError(t, interp.New(st, config).Run(root))
	return out.String(), st
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"declare and print", "var x = 3; print(x);", "3\n"},
		{"default zero", "var x; print(x);", "0\n"},
		{"shadowing", "var x = 1; { var x = 2; print(x); } print(x);", "2\n1\n"},
		{"assign outer from block", "var x = 1; { x = 5; } print(x);", "5\n"},
		{"copy", "var a = 4; var b = a; a = 9; print(a, b);", "9 4\n"},
		{"several args", "print(1, 2.5, .25);", "1 2.5 0.25\n"},
		{"empty print", "print();", "\n"},
		{"empty args", "print(, 7, );", " 7 \n"},
		{"self initializer", "var x = x; print(x);", "0\n"},
		{"sibling blocks", "{ var t = 1; print(t); } { var t = 2; print(t); }", "1\n2\n"},
		{"nested blocks", "var a = 1; { var b = 2; { var a = 3; print(a, b); } print(a, b); }", "3 2\n1 2\n"},
		{"large integer", "print(1000000);", "1000000\n"},
		{"exponent", "print(1e3, 2.5e-1);", "1000 0.25\n"},
		{"expression statements", "var x = 1; 5; x = 2; print(x);", "2\n"},
		{"no output", "var x = 1;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := run(t, tt.src, interp.Config{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeparator(t *testing.T) {
	got, _ := run(t, "var a = 1; print(a, 2, 3);", interp.Config{Separator: ", "})
	assert.Equal(t, "1, 2, 3\n", got)
}

func TestEmptySeparator(t *testing.T) {
	st := semantic.NewSymbolTable()
	root, err := parser.Parse("print(1, 2, 3);", st, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, interp.New(st, interp.Config{Output: &out, Separator: ""}).Run(root))
	assert.Equal(t, "123\n", out.String())
}

func TestValuesPersistAfterScope(t *testing.T) {
	_, st := run(t, "{ var t = 8; }", interp.Config{})
	v, err := st.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)
}

func TestNilOutput(t *testing.T) {
	st := semantic.NewSymbolTable()
	root, err := parser.Parse("print(1);", st, nil)
	require.NoError(t, err)
	assert.NoError(t, interp.New(st, interp.Config{}).Run(root))
}

func TestInvalidSlot(t *testing.T) {
	st := semantic.NewSymbolTable()
	root := &ast.Block{Stmts: []ast.Stmt{
		&ast.Print{Args: []*ast.Expr{ast.NewExpr(&ast.Var{Name: "ghost", Slot: 3})}},
	}}

	var out bytes.Buffer
	err := interp.New(st, interp.Config{Output: &out}).Run(root)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.InvalidSlot))
	assert.Empty(t, out.String())
}

func TestInvalidAssignTarget(t *testing.T) {
	st := semantic.NewSymbolTable()
	root := &ast.Block{Stmts: []ast.Stmt{
		&ast.Assign{
			Target: &ast.Var{Name: "ghost", Slot: 0},
			Source: ast.NewExpr(&ast.Value{Value: 1}),
		},
	}}
	err := interp.New(st, interp.Config{}).Run(root)
	assert.True(t, diag.Is(err, diag.InvalidSlot))
}

func TestOutputBeforeFailureIsKept(t *testing.T) {
	st := semantic.NewSymbolTable()
	st.PushScope()
	slot, err := st.Declare("x", token.Position{Line: 1})
	require.NoError(t, err)

	root := &ast.Block{Stmts: []ast.Stmt{
		&ast.Print{Args: []*ast.Expr{ast.NewExpr(&ast.Var{Name: "x", Slot: slot})}},
		&ast.Print{Args: []*ast.Expr{ast.NewExpr(&ast.Var{Name: "ghost", Slot: 9})}},
	}}

	var out bytes.Buffer
	err = interp.New(st, interp.Config{Output: &out}).Run(root)
	assert.True(t, diag.Is(err, diag.InvalidSlot))
	assert.Equal(t, "0\n", out.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestWriteError(t *testing.T) {
	st := semantic.NewSymbolTable()
	root, err := parser.Parse("print(1);", st, nil)
	require.NoError(t, err)

	err = interp.New(st, interp.Config{Output: failWriter{}}).Run(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
	assert.Contains(t, err.Error(), "pipe closed")
}

func TestTrace(t *testing.T) {
	st := semantic.NewSymbolTable()
	root, err := parser.Parse("var x = 1;\n{ print(x); }", st, nil)
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var out bytes.Buffer
	in := interp.New(st, interp.Config{Output: &out, Separator: " ", Trace: logger})
	require.NoError(t, in.Run(root))
	assert.Equal(t, "1\n", out.String(), "tracing must not change output")

	var nodes []string
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "exec", e.Message)
		nodes = append(nodes, e.Data["node"].(string))
	}
	assert.Equal(t, []string{"Block", "Assign", "Block", "Print"}, nodes)
	assert.Equal(t, 2, hook.LastEntry().Data["line"])
}
