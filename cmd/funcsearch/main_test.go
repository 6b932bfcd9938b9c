package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Version(t *testing.T) {
	err := Execute("1.0.0", "abc123", "funcsearch", []string{"--version"})
	assert.NoError(t, err)
}

func TestExecute_Help(t *testing.T) {
	err := Execute("1.0.0", "abc123", "funcsearch", []string{"--help"})
	assert.NoError(t, err)
}

func TestExecute_InvalidFlag(t *testing.T) {
	err := Execute("1.0.0", "abc123", "funcsearch", []string{"--invalid-flag"})
	assert.Error(t, err)
}

func TestExecute_InvalidTopK(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Execute("1.0.0", "abc123", "funcsearch", []string{"query", "--top-k", "0", "add"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-k")
}

func TestExecute_BlankQuery(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Execute("1.0.0", "abc123", "funcsearch", []string{"query", "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query must not be empty")
}

func TestExecute_TooManyArgs(t *testing.T) {
	err := Execute("1.0.0", "abc123", "funcsearch", []string{"search", "a", "b"})
	assert.Error(t, err)
}

func TestExecute_Export(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := "package demo\n\n// Hello greets\nfunc Hello() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.go"), []byte(src), 0644))

	db := filepath.Join(dir, "out.db")
	err := Execute("1.0.0", "abc123", "funcsearch", []string{"export", dir, "--db", db})
	require.NoError(t, err)

	_, err = os.Stat(db)
	assert.NoError(t, err)
}

func TestSplitQueryArgs(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		args      []string
		wantDir   string
		wantQuery string
	}{
		{"query only", []string{"parse", "config"}, "", "parse config"},
		{"directory and query", []string{dir, "parse", "config"}, dir, "parse config"},
		{"single directory word is the query", []string{dir}, "", dir},
		{"missing directory is a word", []string{filepath.Join(dir, "nope"), "x"}, "", filepath.Join(dir, "nope") + " x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDir, gotQuery := splitQueryArgs(tt.args)
			assert.Equal(t, tt.wantDir, gotDir)
			assert.Equal(t, tt.wantQuery, gotQuery)
		})
	}
}

func TestFirstArg(t *testing.T) {
	assert.Equal(t, "", firstArg(nil))
	assert.Equal(t, "dir", firstArg([]string{"dir"}))
}

func TestRunMain_Success(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	// --help should succeed
	runMain([]string{"funcsearch", "--help"}, mockExit)
	assert.Equal(t, -1, exitCode, "Expected no exit call for --help")
}

func TestRunMain_Failure(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	runMain([]string{"funcsearch", "--invalid"}, mockExit)
	assert.Equal(t, 1, exitCode)
}
