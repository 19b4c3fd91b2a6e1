// Package ast defines the abstract syntax tree for minil programs.
//
// The tree is a closed sum type: every node is one of the concrete types
// below, and the marker methods keep other packages from adding more.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Stmt (interface) - nodes that can appear in a block
//	│   ├── Block   - ordered statements; the program or a { } block
//	│   ├── Assign  - store an expression into a variable slot
//	│   ├── Print   - render expressions on one output line
//	│   ├── Expr    - expression wrapper, also an expression statement
//	│   └── Empty   - no-op
//	└── Term (interface) - the smallest unit of an expression
//	    ├── Var     - variable reference, slot resolved at parse time
//	    ├── Value   - numeric literal
//	    └── Empty   - placeholder for a missing term
//
// Each node owns its children; no node is shared between two parents.
package ast

import "github.com/kolkov/minil/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first token belonging to this node.
	Pos() token.Position

	// Kind returns the node's variant.
	Kind() Kind
}

// Stmt is the interface for nodes that can appear in a Block.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// Term is the interface for the operand of an Expr.
type Term interface {
	Node
	termNode() // marker method to prevent external implementations
}

// Kind enumerates the node variants.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBlock
	KindExpr
	KindAssign
	KindVar
	KindValue
	KindPrint
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindBlock:
		return "Block"
	case KindExpr:
		return "Expr"
	case KindAssign:
		return "Assign"
	case KindVar:
		return "Var"
	case KindValue:
		return "Value"
	case KindPrint:
		return "Print"
	default:
		return "Unknown"
	}
}

// Empty is a no-op statement, or a placeholder term that renders as
// nothing and evaluates to 0.
type Empty struct {
	StartPos token.Position
}

// Block is an ordered list of statements executed in order.
// The program root is a Block, as is every { } block.
type Block struct {
	StartPos token.Position // Position of "{" (or of the first token for the root)
	EndPos   token.Position // Position of "}" (or of EOF for the root)
	Stmts    []Stmt
}

// Expr wraps a single term, giving expressions one evaluation entry point.
type Expr struct {
	Term Term
}

// Assign stores the value of Source into the slot of Target.
// Source is evaluated before the store.
type Assign struct {
	StartPos token.Position // Position of "var" or of the target name
	Target   *Var
	Source   *Expr
}

// Var references a declared variable through its slot.
type Var struct {
	NamePos token.Position
	Name    string
	Slot    int
}

// Value is a numeric literal.
type Value struct {
	ValuePos token.Position
	Literal  string // Source text of the literal
	Value    float64
}

// Print renders each argument, in order, on a single output line.
type Print struct {
	StartPos token.Position // Position of "print"
	Args     []*Expr
}

func (n *Empty) Pos() token.Position  { return n.StartPos }
func (n *Block) Pos() token.Position  { return n.StartPos }
func (n *Expr) Pos() token.Position   { return n.Term.Pos() }
func (n *Assign) Pos() token.Position { return n.StartPos }
func (n *Var) Pos() token.Position    { return n.NamePos }
func (n *Value) Pos() token.Position  { return n.ValuePos }
func (n *Print) Pos() token.Position  { return n.StartPos }

func (*Empty) Kind() Kind  { return KindEmpty }
func (*Block) Kind() Kind  { return KindBlock }
func (*Expr) Kind() Kind   { return KindExpr }
func (*Assign) Kind() Kind { return KindAssign }
func (*Var) Kind() Kind    { return KindVar }
func (*Value) Kind() Kind  { return KindValue }
func (*Print) Kind() Kind  { return KindPrint }

func (*Empty) stmtNode()  {}
func (*Block) stmtNode()  {}
func (*Expr) stmtNode()   {}
func (*Assign) stmtNode() {}
func (*Print) stmtNode()  {}

func (*Empty) termNode() {}
func (*Var) termNode()   {}
func (*Value) termNode() {}

// -----------------------------------------------------------------------------
// Constructor helpers
// -----------------------------------------------------------------------------

// NewExpr wraps term in an Expr.
func NewExpr(term Term) *Expr {
	return &Expr{Term: term}
}

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *Expr:
		Walk(n.Term, fn)
	case *Assign:
		Walk(n.Target, fn)
		Walk(n.Source, fn)
	case *Print:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}
