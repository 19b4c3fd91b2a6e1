package ast

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/minil/internal/types"
)

// Printer provides pretty-printing for AST nodes.
// It outputs one node per line, children indented under their parent,
// suitable for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "  ")
	}
}

func (p *Printer) line(format string, args ...any) {
	p.writeIndent()
	p.printf(format, args...)
	p.printf("\n")
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.line("<nil>")
		return
	}

	switch n := node.(type) {
	case *Empty:
		p.line("Empty")
	case *Block:
		p.line("Block (line %d)", n.StartPos.Line)
		p.children(func() {
			for _, s := range n.Stmts {
				p.printNode(s)
			}
		})
	case *Expr:
		p.line("Expr")
		p.children(func() { p.printNode(n.Term) })
	case *Assign:
		p.line("Assign (line %d)", n.StartPos.Line)
		p.children(func() {
			p.printNode(n.Target)
			p.printNode(n.Source)
		})
	case *Var:
		p.line("Var %s #%d", n.Name, n.Slot)
	case *Value:
		p.line("Value %s", types.FormatNum(n.Value))
	case *Print:
		p.line("Print (line %d)", n.StartPos.Line)
		p.children(func() {
			for _, a := range n.Args {
				p.printNode(a)
			}
		})
	default:
		p.line("<%T>", node)
	}
}

func (p *Printer) children(fn func()) {
	p.indent++
	fn()
	p.indent--
}

// dumpNode is the structured form of a node used for YAML output.
type dumpNode struct {
	Kind     string     `yaml:"kind"`
	Line     int        `yaml:"line,omitempty"`
	Name     string     `yaml:"name,omitempty"`
	Slot     *int       `yaml:"slot,omitempty"`
	Value    *float64   `yaml:"value,omitempty"`
	Children []dumpNode `yaml:"children,omitempty"`
}

func toDump(node Node) dumpNode {
	d := dumpNode{Kind: node.Kind().String(), Line: node.Pos().Line}
	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			d.Children = append(d.Children, toDump(s))
		}
	case *Expr:
		d.Children = []dumpNode{toDump(n.Term)}
	case *Assign:
		d.Children = []dumpNode{toDump(n.Target), toDump(n.Source)}
	case *Var:
		slot := n.Slot
		d.Name, d.Slot = n.Name, &slot
	case *Value:
		v := n.Value
		d.Value = &v
	case *Print:
		for _, a := range n.Args {
			d.Children = append(d.Children, toDump(a))
		}
	}
	return d
}

// WriteYAML writes node as a YAML document to w.
func WriteYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDump(node)); err != nil {
		return err
	}
	return enc.Close()
}
