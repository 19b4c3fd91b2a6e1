package minil

import (
	"bytes"
	"io"

	"github.com/kolkov/minil/internal/ast"
	"github.com/kolkov/minil/internal/interp"
	"github.com/kolkov/minil/internal/semantic"
)

// Program represents a compiled program ready for execution.
// A Program owns its variable storage and is not safe for concurrent use.
type Program struct {
	root    *ast.Block
	symbols *semantic.SymbolTable
	source  string // Original source for debugging
}

// Run executes the program. Every variable starts at 0.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
func (p *Program) Run(config *Config) (string, error) {
	c := withDefaults(config)

	var outputBuf *bytes.Buffer
	out := c.Output
	if out == nil {
		outputBuf = &bytes.Buffer{}
		out = outputBuf
	}

	p.symbols.ResetValues()
	in := interp.New(p.symbols, interp.Config{
		Output:    out,
		Separator: *c.Separator,
		Trace:     c.Trace,
	})
	if err := in.Run(p.root); err != nil {
		return "", &RuntimeError{Message: err.Error(), Err: err}
	}

	if outputBuf != nil {
		return outputBuf.String(), nil
	}
	return "", nil
}

// Dump writes the parsed tree to w, as indented text or, if asYAML is
// set, as a YAML document.
func (p *Program) Dump(w io.Writer, asYAML bool) error {
	if asYAML {
		return ast.WriteYAML(w, p.root)
	}
	return ast.NewPrinter(w).Print(p.root)
}

// Slots returns the number of variable slots the program declares.
func (p *Program) Slots() int {
	return p.symbols.Slots()
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}
