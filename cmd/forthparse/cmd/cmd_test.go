package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/forthsyntax/internal/config"
	"github.com/agenthands/forthsyntax/internal/panicerr"
	"github.com/agenthands/forthsyntax/pkg/forth"
)

type result struct {
	stdout, stderr string
	code           int
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("FORTHPARSE_CONFIG", "")

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetArgs(append([]string{"--no-color"}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	code := execute(root, &errOut)
	return result{out.String(), errOut.String(), code}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefJSON(t *testing.T) {
	res := run(t, "", "def", "--format", "json", ": square dup * ;")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{
		"kind": "ProcedureDef",
		"name": "square",
		"body": [
			{"kind": "WordCall", "name": "dup"},
			{"kind": "WordCall", "name": "*"}
		]
	}`, res.stdout)
}

func TestDefJoinsArguments(t *testing.T) {
	res := run(t, "", "def", "-f", "forth", "0xFF", "CONSTANT", "max_byte")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "255 CONSTANT max_byte\n", res.stdout)
}

func TestDefFailure(t *testing.T) {
	res := run(t, "", "def", ": broken IF dup")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "error: <arg>: line 1, col 10: unterminated IF: reached end of input before ELSE or THEN\n"+
		"   1 | : broken IF dup\n"+
		"     |          ^^\n", res.stderr)
}

func TestWords(t *testing.T) {
	res := run(t, "", "words", "-f", "forth", "dup swap", "drop")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "dup swap drop\n", res.stdout)

	res = run(t, "", "words", "-f", "json", "")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[]`, res.stdout)
}

func TestParseStdinYAML(t *testing.T) {
	res := run(t, "VARIABLE v\n: f v ;\n", "parse")
	require.Equal(t, 0, res.code, res.stderr)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, map[string]any{
		"kind": "ForthProgram",
		"forms": []any{
			map[string]any{"kind": "VarDecl", "name": "v", "is_constant": false},
			map[string]any{"kind": "ProcedureDef", "name": "f", "body": []any{
				map[string]any{"kind": "WordCall", "name": "v"},
			}},
		},
	}, got)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.fs", "VARIABLE v\n: f v THEN ;\n")

	res := run(t, "", "parse", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, path+": line 2, col 7: unexpected \"THEN\"")

	res = run(t, "", "parse", filepath.Join(dir, "missing.fs"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: open ")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.fs", ": square dup * ;\n3 square")
	bad := writeFile(t, dir, "bad.fs", ": broken IF dup")
	other := writeFile(t, dir, "other.fs", "( just a comment )")

	res := run(t, "", "check", "-j", "2", good, bad, other)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "ok   "+good+" (3 forms)\nok   "+other+" (0 forms)\n", res.stdout)
	assert.Contains(t, res.stderr, bad+": line 1, col 10: unterminated IF")
	assert.Contains(t, res.stderr, "1 of 3 files failed\n")

	res = run(t, "", "check", good, other)
	assert.Equal(t, 0, res.code, res.stderr)

	res = run(t, "", "check", good, filepath.Join(dir, "missing.fs"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: open ")
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.fs", "( square )  :   square\n  dup *   ;  variable x\n")

	res := run(t, "", "fmt", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, ": square dup * ;\nVARIABLE x\n", res.stdout)

	res = run(t, "", "fmt", "--check", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "is not formatted")

	res = run(t, "", "fmt", "--write", path)
	require.Equal(t, 0, res.code, res.stderr)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ": square dup * ;\nVARIABLE x\n", string(b))

	res = run(t, "", "fmt", "--check", path)
	assert.Equal(t, 0, res.code, res.stderr)

	res = run(t, "x", "fmt", "--write")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "--write needs a file argument")
}

func TestConfigFlags(t *testing.T) {
	res := run(t, "", "def", "--format", "xml", "VARIABLE v")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `Error: invalid output format "xml"`)

	dir := t.TempDir()
	cfg := writeFile(t, dir, "forthparse.toml", "[output]\nformat = \"forth\"\n[diagnostics]\ncontext = false\n")

	res = run(t, "", "--config", cfg, "def", "VARIABLE v")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "VARIABLE v\n", res.stdout)

	res = run(t, "", "--config", cfg, "def", "VARIABLE")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "<arg>: line 1, col 9: unexpected end of input, expected name\n", res.stderr)
}

func testSession(mode string) (*session, *bytes.Buffer, *bytes.Buffer) {
	opts := &options{cfg: config.Default()}
	opts.cfg.Output.Format = config.FormatForth
	opts.cfg.Diagnostics.Color = false
	opts.cfg.REPL.Mode = mode

	var out, errOut bytes.Buffer
	return newSession(opts, &out, &errOut), &out, &errOut
}

func TestSessionWords(t *testing.T) {
	s, out, errOut := testSession(config.ModeWords)

	more, quit := s.feed("dup swap")
	assert.False(t, more)
	assert.False(t, quit)
	assert.Equal(t, "dup swap\n", out.String())

	out.Reset()
	more, _ = s.feed("5 0 DO i .")
	assert.True(t, more)
	more, _ = s.feed("LOOP")
	assert.False(t, more)
	assert.Equal(t, "5 0 DO i . LOOP\n", out.String())

	out.Reset()
	more, _ = s.feed("THEN")
	assert.False(t, more)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error: line 1, col 1: unexpected \"THEN\"")

	more, _ = s.feed("   ")
	assert.False(t, more)
}

func TestSessionWordsColonDefinition(t *testing.T) {
	s, out, errOut := testSession(config.ModeWords)

	more, _ := s.feed(": sq")
	assert.True(t, more, "open definition continues in words mode")
	more, _ = s.feed("dup * ;")
	assert.False(t, more)
	assert.Equal(t, ": sq dup * ;\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, config.ModeWords, s.mode)

	out.Reset()
	s.feed("dup : sq ;")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `unexpected ":"`)
}

func TestSessionFailure(t *testing.T) {
	boom := panicerr.Recover("parse words", func() error { panic("boom") })
	f := forth.New(forth.WithSink(forth.SinkFunc(func(forth.Diagnostic) {
		t.Error("internal failures are not diagnostics")
	})))

	s, _, errOut := testSession(config.ModeWords)
	s.fail(f, boom)
	assert.Equal(t, "Error: parse words paniced: boom\n", errOut.String())

	s, _, errOut = testSession(config.ModeWords)
	s.opts.verbose = true
	s.fail(f, boom)
	assert.True(t, strings.HasPrefix(errOut.String(), "Error: parse words paniced: boom\n"))
	assert.Contains(t, errOut.String(), "goroutine")
}

func TestSessionProgram(t *testing.T) {
	s, out, _ := testSession(config.ModeProgram)

	more, _ := s.feed(": sq ( n -- n*n )")
	assert.True(t, more)
	more, _ = s.feed("  dup * ;")
	assert.False(t, more)
	assert.Equal(t, ": sq dup * ;\n", out.String())
}

func TestSessionCommands(t *testing.T) {
	s, out, errOut := testSession(config.ModeWords)

	_, quit := s.feed("#mode program")
	assert.False(t, quit)
	assert.Equal(t, config.ModeProgram, s.mode)
	assert.Equal(t, "mode program\n", out.String())

	s.feed("#mode batch")
	assert.Contains(t, errOut.String(), `unknown mode "batch"`)

	out.Reset()
	s.feed("#format json")
	assert.Equal(t, "format json\n", out.String())
	s.feed("#format xml")
	assert.Equal(t, config.FormatJSON, s.opts.cfg.Output.Format)

	s.feed("#bogus")
	assert.Contains(t, errOut.String(), "unknown command #bogus")

	out.Reset()
	s.feed("#help")
	assert.Contains(t, out.String(), "#quit")
	assert.Contains(t, out.String(), "In program mode an open : definition continues")

	_, quit = s.feed("#quit")
	assert.True(t, quit)
}

func TestCheckCountsFailedFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fs", "THEN")
	b := writeFile(t, dir, "b.fs", "IF")

	res := run(t, "", "--config", writeFile(t, dir, "c.toml", "[diagnostics]\ncontext = false\n"), "check", a, b)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, a+": line 1, col 1: unexpected \"THEN\", expected word or integer literal\n"+
		b+": line 1, col 1: unterminated IF: reached end of input before ELSE or THEN\n"+
		"2 of 2 files failed\n", res.stderr)
}

func TestCheckSample(t *testing.T) {
	sample := filepath.Join("..", "..", "..", "examples", "countdown.fs")
	res := run(t, "", "check", sample)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "ok   "+sample+" (9 forms)\n", res.stdout)
}
