package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProgram stores src in a temporary file and returns its path.
func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.ml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunProgram(t *testing.T) {
	path := writeProgram(t, "var x = 1;\n{ var x = 2; print(x); }\nprint(x);\n")

	code, stdout, stderr := runArgs(path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\n1\n", stdout)
	assert.Empty(t, stderr)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		stderr string
	}{
		{"undeclared", "print(y);", "ERROR (line 1): UndeclaredVariable: "},
		{"duplicate", "var x = 1;\nvar x = 2;", "ERROR (line 2): DuplicateDeclaration: "},
		{"unbalanced", "{\nprint(1);", "ERROR (line 1): UnbalancedScope: "},
		{"syntax", "var = 1;", "ERROR (line 1): SyntaxError: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runArgs(writeProgram(t, tt.src))
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestMissingFileArgument(t *testing.T) {
	code, stdout, stderr := runArgs()
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ERROR: ")
}

func TestUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.ml")
	code, _, stderr := runArgs(path)
	assert.Equal(t, 1, code)
	assert.Equal(t, "ERROR: Unable to open file '"+path+"'.\n", stderr)
}

func TestVerbose(t *testing.T) {
	path := writeProgram(t, "var x = 5; print(x);")
	logFile := filepath.Join(t.TempDir(), "log.txt")

	code, stdout, stderr := runArgs(path, "-v", "--log-file", logFile)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "5\n", stdout, "trace must not reach program output")
	assert.Contains(t, stderr, "msg=\"parse statement\"")
	assert.Contains(t, stderr, "msg=exec")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, stderr, string(data))
}

func TestVerboseBadLogFile(t *testing.T) {
	path := writeProgram(t, "print(1);")
	logFile := filepath.Join(t.TempDir(), "missing", "log.txt")

	code, stdout, stderr := runArgs("-v", "--log-file", logFile, path)
	assert.Equal(t, 0, code, "an unwritable log file must not stop the program")
	assert.Equal(t, "1\n", stdout)
	assert.Contains(t, stderr, "level=warning")
	assert.Contains(t, stderr, "cannot open log file")
	assert.Contains(t, stderr, "msg=exec", "tracing continues on the console")
	assert.NotContains(t, stderr, "ERROR")
}

func TestSeparator(t *testing.T) {
	path := writeProgram(t, "print(1, 2, 3);")

	code, stdout, _ := runArgs("--separator", "", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "123\n", stdout)

	code, stdout, _ = runArgs("-s", ", ", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1, 2, 3\n", stdout)
}

func TestDumpTokens(t *testing.T) {
	path := writeProgram(t, "var x;")
	code, stdout, _ := runArgs("--dump-tokens", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, path+":1:1\tVAR\t\"var\"\n"+
		path+":1:5\tID\t\"x\"\n"+
		path+":1:6\tEND_OF_LINE\t\";\"\n"+
		path+":1:7\tEOF\t\"\"\n", stdout)
}

func TestDumpAST(t *testing.T) {
	path := writeProgram(t, "var x = 2; print(x);")

	code, stdout, _ := runArgs("--dump-ast", "text", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Block (line 1)\n  Assign (line 1)\n    Var x #0\n    Expr\n      Value 2\n"+
		"  Print (line 1)\n    Expr\n      Var x #0\n", stdout, "dumping must not execute")

	code, stdout, _ = runArgs("--dump-ast=yaml", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "kind: Block")

	code, _, stderr := runArgs("--dump-ast=json", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --dump-ast format")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runArgs("--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "minil version "+version+"\n", stdout)
}
