package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/funcsearch/internal/searcher"
	"github.com/dshills/funcsearch/pkg/types"
)

func newTestSearcher(t *testing.T) *searcher.Searcher {
	t.Helper()
	corpus := types.NewCorpus([]types.Document{
		{FilePath: "math.go", FunctionName: "Add", Docstring: "Add returns the sum", LineNumber: 3, SearchText: "add numbers returns sum"},
		{FilePath: "math.go", FunctionName: "Subtract", Docstring: "", LineNumber: 8, SearchText: "subtract numbers returns difference"},
		{FilePath: "ints.go", FunctionName: "AddInts", Docstring: "AddInts adds two integers", LineNumber: 5, SearchText: "add two integers"},
	})
	s, err := searcher.New(corpus)
	require.NoError(t, err)
	return s
}

func runShell(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	reader := NewScannerReader(strings.NewReader(input), &out)
	sh := New(newTestSearcher(t), reader, &out, Options{NoColor: true})

	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestRun_Exit(t *testing.T) {
	output := runShell(t, "EXIT\nadd numbers\n")

	expected := "3 functions found in the specified directory.\n" +
		Prompt + MsgGoodbye + "\n"
	assert.Equal(t, expected, output)
}

func TestRun_Query(t *testing.T) {
	output := runShell(t, "add numbers\nexit\n")

	expected := "3 functions found in the specified directory.\n" +
		Prompt +
		"\nFile: math.go\n" +
		"Similarity Score: 65.03%\n" +
		"Function: Add (Line 3)\n" +
		"Docstring: Add returns the sum\n" +
		"\nFile: ints.go\n" +
		"Similarity Score: 33.49%\n" +
		"Function: AddInts (Line 5)\n" +
		"Docstring: AddInts adds two integers\n" +
		"\nFile: math.go\n" +
		"Similarity Score: 30.27%\n" +
		"Function: Subtract (Line 8)\n" +
		"Docstring: \n" +
		"\n\n" +
		Prompt + MsgGoodbye + "\n"
	assert.Equal(t, expected, output)
}

func TestRun_NoRelevant(t *testing.T) {
	output := runShell(t, "xyzzy plugh\nexit\n")

	assert.Contains(t, output, Prompt+MsgNoRelevant+"\n\n\n"+Prompt)
	assert.NotContains(t, output, "File:")
}

func TestRun_SkipsBlankInput(t *testing.T) {
	output := runShell(t, "\n   \t\nexit\n")

	assert.Equal(t, 3, strings.Count(output, Prompt))
	assert.NotContains(t, output, MsgNoRelevant)
	assert.True(t, strings.HasSuffix(output, MsgGoodbye+"\n"))
}

func TestRun_EOF(t *testing.T) {
	output := runShell(t, "add two integers")

	assert.Contains(t, output, "Function: AddInts (Line 5)")
	assert.NotContains(t, output, MsgGoodbye)
	assert.True(t, strings.HasSuffix(output, Prompt+"\n"))
}

type scriptedReader struct {
	lines []string
	err   error
}

func (r *scriptedReader) ReadLine(string) (string, error) {
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error { return nil }

func TestRun_Aborted(t *testing.T) {
	var out bytes.Buffer
	sh := New(newTestSearcher(t), &scriptedReader{err: ErrAborted}, &out, Options{NoColor: true})

	assert.NoError(t, sh.Run(context.Background()))
	assert.Equal(t, "3 functions found in the specified directory.\n\n", out.String())
}

func TestRun_ReadError(t *testing.T) {
	readErr := errors.New("terminal gone")
	sh := New(newTestSearcher(t), &scriptedReader{err: readErr}, io.Discard, Options{})

	err := sh.Run(context.Background())
	assert.ErrorIs(t, err, readErr)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh := New(newTestSearcher(t), &scriptedReader{lines: []string{"add"}}, io.Discard, Options{})
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestQuery_TopK(t *testing.T) {
	var out bytes.Buffer
	sh := New(newTestSearcher(t), &scriptedReader{}, &out, Options{TopK: 1, NoColor: true})

	sh.Query("add numbers")

	assert.Equal(t, 1, strings.Count(out.String(), "File:"))
	assert.Contains(t, out.String(), "Function: Add (Line 3)")
}

func TestNew_DefaultTopK(t *testing.T) {
	sh := New(newTestSearcher(t), &scriptedReader{}, io.Discard, Options{TopK: 0})
	assert.Equal(t, searcher.DefaultTopK, sh.topK)
}

func TestRender_SkipsZeroScores(t *testing.T) {
	var out bytes.Buffer
	sh := New(newTestSearcher(t), &scriptedReader{}, &out, Options{NoColor: true})

	sh.Render([]types.Result{
		{Document: types.Document{FilePath: "a.go", FunctionName: "A", LineNumber: 1}, Score: 0.5, Rank: 1},
		{Document: types.Document{FilePath: "b.go", FunctionName: "B", LineNumber: 2}, Score: 0, Rank: 2},
	})

	assert.Contains(t, out.String(), "Function: A (Line 1)")
	assert.Contains(t, out.String(), "Similarity Score: 50.00%")
	assert.NotContains(t, out.String(), "b.go")
}

func TestRender_Empty(t *testing.T) {
	var out bytes.Buffer
	sh := New(newTestSearcher(t), &scriptedReader{}, &out, Options{NoColor: true})

	sh.Render(nil)
	assert.Equal(t, MsgNoRelevant+"\n\n\n", out.String())
}
