// Package interp executes minil syntax trees.
//
// The interpreter walks a parsed tree in source order against the
// SymbolTable the parser populated. All names were resolved to slots at
// parse time, so execution only reads and writes slots; a slot error at
// this stage means the tree and the table do not belong together.
package interp

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kolkov/minil/internal/ast"
	"github.com/kolkov/minil/internal/semantic"
	"github.com/kolkov/minil/internal/trace"
	"github.com/kolkov/minil/internal/types"
)

// DefaultSeparator is written between the arguments of a print.
const DefaultSeparator = " "

// Config controls interpreter output.
type Config struct {
	Output    io.Writer          // Destination of print output
	Separator string             // Written between print arguments
	Trace     logrus.FieldLogger // Diagnostic sink; nil discards
}

// Interpreter executes syntax trees against a symbol table.
type Interpreter struct {
	symbols *semantic.SymbolTable
	out     *bufio.Writer
	sep     string
	log     logrus.FieldLogger
	line    []byte // Reused print buffer
}

// New creates an interpreter over symbols.
func New(symbols *semantic.SymbolTable, config Config) *Interpreter {
	out := config.Output
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{
		symbols: symbols,
		out:     bufio.NewWriter(out),
		sep:     config.Separator,
		log:     trace.OrDiscard(config.Trace),
	}
}

// Run executes root and flushes all output.
func (in *Interpreter) Run(root *ast.Block) error {
	err := in.exec(root)
	if ferr := in.out.Flush(); err == nil && ferr != nil {
		err = errors.Wrap(ferr, "writing output")
	}
	return err
}

// exec executes one statement.
func (in *Interpreter) exec(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.Empty:
		return nil

	case *ast.Block:
		in.trace(n)
		for _, s := range n.Stmts {
			if err := in.exec(s); err != nil {
				return err
			}
		}
		return nil

	case *ast.Expr:
		in.trace(n)
		_, err := in.eval(n)
		return err

	case *ast.Assign:
		in.trace(n)
		// The source is evaluated before the store.
		v, err := in.eval(n.Source)
		if err != nil {
			return err
		}
		return in.symbols.Set(n.Target.Slot, v)

	case *ast.Print:
		in.trace(n)
		return in.print(n)

	default:
		return errors.Errorf("cannot execute %T", stmt)
	}
}

// eval evaluates an expression to its current value.
func (in *Interpreter) eval(e *ast.Expr) (float64, error) {
	switch t := e.Term.(type) {
	case *ast.Var:
		return in.symbols.Get(t.Slot)
	case *ast.Value:
		return t.Value, nil
	case *ast.Empty:
		return 0, nil
	default:
		return 0, errors.Errorf("cannot evaluate %T", e.Term)
	}
}

// print renders every argument, in order, on one line.
// Empty placeholders render as nothing.
func (in *Interpreter) print(n *ast.Print) error {
	line := in.line[:0]
	for i, arg := range n.Args {
		v, err := in.eval(arg)
		if err != nil {
			return err
		}
		if i > 0 {
			line = append(line, in.sep...)
		}
		if _, empty := arg.Term.(*ast.Empty); !empty {
			line = types.AppendNum(line, v)
		}
	}
	line = append(line, '\n')
	in.line = line

	if _, err := in.out.Write(line); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

func (in *Interpreter) trace(n ast.Node) {
	in.log.WithFields(logrus.Fields{
		"node": n.Kind().String(),
		"line": n.Pos().Line,
	}).Debug("exec")
}
