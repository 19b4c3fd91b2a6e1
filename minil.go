package minil

import (
	"io"

	"github.com/kolkov/minil/internal/parser"
	"github.com/kolkov/minil/internal/semantic"
)

// Version is the minil version string.
const Version = "0.1.0"

// Run compiles and executes a program.
// This is a convenience function for one-off execution.
//
// Returns the program output as a string, or an error if parsing or
// execution fails. If config.Output is set, output is written there and
// the returned string is empty.
//
// Example:
//
//	output, err := minil.Run("var x = 3; print(x);", nil)
//	// output: "3\n"
func Run(src string, config *Config) (string, error) {
	prog, err := Compile(src, config)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Compile parses a program, resolving every name to its storage slot.
// The returned Program can be executed multiple times.
// Only config.Trace is used; config may be nil.
func Compile(src string, config *Config) (*Program, error) {
	if config == nil {
		config = &Config{}
	}

	symbols := semantic.NewSymbolTable()
	root, err := parser.Parse(src, symbols, config.Trace)
	if err != nil {
		return nil, toParseError(err)
	}

	return &Program{
		root:    root,
		symbols: symbols,
		source:  src,
	}, nil
}

// Exec compiles and runs a program, writing its output to output.
// output takes the place of config.Output.
func Exec(src string, output io.Writer, config *Config) error {
	c := withDefaults(config)
	c.Output = output

	_, err := Run(src, &c)
	return err
}

// MustCompile is like Compile but panics if the program cannot be compiled.
func MustCompile(src string) *Program {
	prog, err := Compile(src, nil)
	if err != nil {
		panic(err)
	}
	return prog
}
