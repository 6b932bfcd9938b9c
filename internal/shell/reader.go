package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrAborted is returned by a LineReader when the user presses Ctrl-C at the prompt
var ErrAborted = errors.New("input aborted")

// LineReader reads one line of user input after showing a prompt.
// It returns io.EOF when input ends and ErrAborted on Ctrl-C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewReader picks a line editor when both stdin and stdout are terminals and a
// plain scanner otherwise, so piped input works without escape sequences.
func NewReader(historyFile string) LineReader {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return NewLineEditor(historyFile)
	}
	return NewScannerReader(os.Stdin, os.Stdout)
}

// LineEditor provides history and line editing for interactive sessions
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a LineEditor and loads any existing history.
// An empty historyFile disables persistence.
func NewLineEditor(historyFile string) *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &LineEditor{
		line:        line,
		historyFile: historyFile,
	}
	e.loadHistory()

	return e
}

func (e *LineEditor) loadHistory() {
	if e.historyFile == "" {
		return
	}
	f, err := os.Open(e.historyFile)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := e.line.ReadHistory(f); err != nil {
		slog.Debug("Failed to read history", "file", e.historyFile, "error", err)
	}
}

// ReadLine reads a line of input with the given prompt
func (e *LineEditor) ReadLine(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory writes the session history with owner-only permissions
func (e *LineEditor) SaveHistory() error {
	if e.historyFile == "" {
		return nil
	}

	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := e.line.WriteHistory(f); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Close saves history and restores the terminal
func (e *LineEditor) Close() error {
	saveErr := e.SaveHistory()
	if err := e.line.Close(); err != nil {
		return err
	}
	return saveErr
}

// maxLineSize bounds a single line read by ScannerReader
const maxLineSize = 1024 * 1024

// ScannerReader reads newline-terminated input from any reader
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader creates a reader that writes prompts to out
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &ScannerReader{
		scanner: scanner,
		out:     out,
	}
}

// ReadLine writes the prompt and returns the next line without its terminator
func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

// Close is a no-op; the underlying reader belongs to the caller
func (r *ScannerReader) Close() error {
	return nil
}
