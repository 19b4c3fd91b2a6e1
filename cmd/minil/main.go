// minil - interpreter for the minil scripting language
//
// Reads one source file, parses it with scope checking, and executes it.
// Parse errors stop the program before anything is printed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kolkov/minil"
	"github.com/kolkov/minil/internal/lexer"
	"github.com/kolkov/minil/internal/trace"
)

// version is set at build time via -ldflags.
var version = minil.Version

// errSilent marks a failure that has already been reported.
var errSilent = errors.New("silent")

// options holds the parsed command line.
type options struct {
	verbose    bool
	logFile    string
	dumpTokens bool
	dumpAST    string
	separator  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	cmd := newRootCmd(out, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if err != errSilent {
			printError(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "minil <file>",
		Short: "Run a minil program",
		Long: "Run a minil program\n" +
			"\n" +
			"The file is parsed completely, with every variable checked against its\n" +
			"enclosing scopes, before any statement executes. With -v, every parse and\n" +
			"execution step is traced to stderr and to a log file.",
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], opts, stdout, stderr)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Trace parsing and execution to stderr and the log file")
	cmd.Flags().StringVar(&opts.logFile, "log-file", trace.DefaultFile,
		"Log file written when --verbose is set")
	cmd.Flags().BoolVar(&opts.dumpTokens, "dump-tokens", false,
		"Print the token stream and exit")
	cmd.Flags().StringVar(&opts.dumpAST, "dump-ast", "",
		"Print the parsed tree as \"text\" or \"yaml\" and exit")
	cmd.Flags().StringVarP(&opts.separator, "separator", "s", " ",
		"Text written between the arguments of a print")
	cmd.SetVersionTemplate("minil version {{.Version}}\n")

	return cmd
}

// runFile loads, compiles and runs one source file.
func runFile(path string, opts options, stdout, stderr io.Writer) error {
	switch opts.dumpAST {
	case "", "text", "yaml":
	default:
		return errors.Errorf("invalid --dump-ast format %q (want text or yaml)", opts.dumpAST)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		printError(stderr, errors.Errorf("Unable to open file '%s'.", path))
		return errSilent
	}

	if opts.dumpTokens {
		return dumpTokens(stdout, lexer.New(src).WithFilename(path))
	}

	config := &minil.Config{Output: stdout, Separator: &opts.separator}
	if opts.verbose {
		logger, closer := trace.New(trace.Options{Console: stderr, File: opts.logFile})
		defer closer.Close()
		config.Trace = logger
	}

	prog, err := minil.Compile(string(src), config)
	if err != nil {
		return err
	}

	if opts.dumpAST != "" {
		return errors.Wrap(prog.Dump(stdout, opts.dumpAST == "yaml"), "writing tree")
	}

	_, err = prog.Run(config)
	return err
}

// dumpTokens prints one token per line as file:line:col, kind and lexeme.
func dumpTokens(w io.Writer, l *lexer.Lexer) error {
	for _, tok := range l.All() {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Pos, tok.Type, tok.Value); err != nil {
			return errors.Wrap(err, "writing tokens")
		}
	}
	return nil
}

// printError writes err to w. A leading "ERROR" is colored red when w
// is a terminal.
func printError(w io.Writer, err error) {
	msg := err.Error()
	if !strings.HasPrefix(msg, "ERROR") {
		msg = "ERROR: " + msg
	}

	red := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		red.DisableColor()
	}
	fmt.Fprintln(w, red.Sprint("ERROR")+strings.TrimPrefix(msg, "ERROR"))
}
