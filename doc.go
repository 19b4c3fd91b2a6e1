// Package minil provides an interpreter for minil, a small scripting
// language with numeric variables, nested block scopes and print.
//
//	var x = 3;
//	{
//	    var x = 2;   # shadows the outer x inside this block
//	    print(x);
//	}
//	print(x);
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := minil.Run("var x = 3; print(x);", nil)
//	// output: "3\n"
//
// # Compiled Programs
//
// Compile tokenizes and parses the source, resolving every variable to a
// storage slot. Nothing runs until Program.Run:
//
//	prog, err := minil.Compile(src, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, err := prog.Run(nil)
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax and scoping errors, with a [ErrorKind] and line
//   - [RuntimeError]: internal failures during execution
//
// The first error stops compilation; a program that fails to compile
// produces no output.
//
// # Tracing
//
// Set [Config.Trace] to a logrus logger at Debug level to receive one
// entry per parsed and executed statement.
package minil
