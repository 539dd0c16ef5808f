package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(viper.New())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--no-color"))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCode(t *testing.T) {
	stdout, stderr, err := runCmd(t, "", "parse", "-c", "x :: 1 + 2 * 3;")
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.Equal(t, "x :: (1 + (2 * 3));\n", stdout)
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ql", "a :: 1;")
	b := writeFile(t, dir, "b.ql", "P :: record { x: int }")

	stdout, _, err := runCmd(t, "", "parse", a, b)
	require.NoError(t, err)
	require.Equal(t, "a :: 1;\nP :: record { x: int }\n", stdout)
}

func TestParseStdin(t *testing.T) {
	stdout, _, err := runCmd(t, "main :: fn() { }", "parse")
	require.NoError(t, err)
	require.Equal(t, "main :: fn() { }\n", stdout)
}

func TestParseReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.ql", "ok :: 1;\nbad :: (2;\n")

	stdout, stderr, err := runCmd(t, "", "parse", path)
	require.ErrorIs(t, err, errParseFailed)
	require.Equal(t, "ok :: 1;\n", stdout)
	require.Contains(t, stderr, "parse error[E1001]: unexpected \";\" in grouped expression")
	require.Contains(t, stderr, path+":2:10")
	require.Contains(t, stderr, " 2 | bad :: (2;")
}

func TestParseJSON(t *testing.T) {
	stdout, _, err := runCmd(t, "", "parse", "-c", "f :: fn(a: ^int) { return -a; }", "-o", "json")
	require.NoError(t, err)

	var root ASTNode
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))
	require.Equal(t, "Program", root.Type)
	require.Len(t, root.Children, 1)

	fn := root.Children[0]
	require.Equal(t, "Function", fn.Type)
	require.Equal(t, "f", fn.Value)
	require.Equal(t, "1:1", fn.Pos)
	require.Equal(t, "Params", fn.Children[0].Type)
	require.Equal(t, "Param", fn.Children[0].Children[0].Type)
	require.Equal(t, "PointerType", fn.Children[0].Children[0].Children[0].Type)

	body := fn.Children[1]
	require.Equal(t, "Body", body.Type)
	ret := body.Children[0]
	require.Equal(t, "Return", ret.Type)
	require.Equal(t, "Unary", ret.Children[0].Type)
	require.Equal(t, "-", ret.Children[0].Value)
}

func TestParseInputConflicts(t *testing.T) {
	_, _, err := runCmd(t, "", "parse", "-c", "x :: 1;", "file.ql")
	require.EqualError(t, err, "multiple input sources specified")

	_, _, err = runCmd(t, "", "parse", "-c", "x :: 1;", "-o", "yaml")
	require.EqualError(t, err, "unknown output format: yaml")

	_, _, err = runCmd(t, "", "parse", "--watch", "-c", "x :: 1;")
	require.Error(t, err)

	_, _, err = runCmd(t, "", "parse", filepath.Join(t.TempDir(), "missing.ql"))
	require.Error(t, err)
}

func TestMaxDepthFlag(t *testing.T) {
	code := "x :: ((((1))));"
	_, _, err := runCmd(t, "", "parse", "-c", code)
	require.NoError(t, err)

	_, stderr, err := runCmd(t, "", "parse", "-c", code, "--max-depth", "3")
	require.ErrorIs(t, err, errParseFailed)
	require.Contains(t, stderr, "maximum nesting depth exceeded")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "quill.yaml", "max-depth: 3\n")

	_, stderr, err := runCmd(t, "", "parse", "-c", "x :: ((((1))));", "--config", config)
	require.ErrorIs(t, err, errParseFailed)
	require.Contains(t, stderr, "maximum nesting depth exceeded")

	_, _, err = runCmd(t, "", "parse", "-c", "x :: 1;", "--config", filepath.Join(dir, "none.yaml"))
	require.ErrorContains(t, err, "reading config")
}

func TestEnvironmentConfig(t *testing.T) {
	t.Setenv("QUILL_MAX_DEPTH", "3")
	_, stderr, err := runCmd(t, "", "parse", "-c", "x :: ((((1))));")
	require.ErrorIs(t, err, errParseFailed)
	require.Contains(t, stderr, "maximum nesting depth exceeded")
}

func TestLogLevel(t *testing.T) {
	_, stderr, err := runCmd(t, "", "parse", "-c", "x :: ;", "--log-level", "warn")
	require.ErrorIs(t, err, errParseFailed)
	require.Contains(t, stderr, "WRN")
	require.Contains(t, stderr, "kind=\"unexpected token\"")

	_, stderr, _ = runCmd(t, "", "parse", "-c", "x :: ;")
	require.NotContains(t, stderr, "WRN")

	_, _, err = runCmd(t, "", "parse", "-c", "x :: 1;", "--log-level", "loud")
	require.EqualError(t, err, `invalid log level: "loud"`)
}

func TestTokensCommand(t *testing.T) {
	stdout, _, err := runCmd(t, "", "tokens", "-c", "x :: 1;")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, []string{"1:1", "IDENT", `"x"`}, strings.Fields(lines[0]))
	require.Equal(t, []string{"1:3", "::", `"::"`}, strings.Fields(lines[1]))
	require.Equal(t, []string{"1:8", "EOF", `""`}, strings.Fields(lines[4]))

	stdout, _, err = runCmd(t, "", "tokens", "-c", "x @")
	require.ErrorIs(t, err, errParseFailed)
	require.Contains(t, stdout, "unexpected character '@'")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCmd(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "quill dev (commit unknown, built unknown)\n", stdout)

	stdout, _, err = runCmd(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	require.Equal(t, "dev", info.Version)
}

func TestWatchFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.ql", "a :: 1;")
	other := writeFile(t, dir, "other.ql", "b :: 2;")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{path}, func(p string) { changed <- p })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("b :: 3;"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("a :: 2;"), 0o644))

	select {
	case p := <-changed:
		require.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
