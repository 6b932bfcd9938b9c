package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/funcsearch/internal/searcher"
	"github.com/dshills/funcsearch/pkg/types"
)

// Messages shown to the user
const (
	Prompt         = "Enter your search query (or 'exit' to quit): "
	MsgNoFunctions = "No functions found in the specified directory."
	MsgNoRelevant  = "No relevant functions found for your query."
	MsgGoodbye     = "Exiting search engine. Goodbye!"

	msgFunctionsFound = "%d functions found in the specified directory.\n"
	exitCommand       = "exit"
)

// Options configures a Shell
type Options struct {
	TopK    int  // Results per query (default: searcher.DefaultTopK)
	NoColor bool // Plain headings even on a color terminal
	Logger  *slog.Logger
}

// Shell is a read-query-print loop over one Searcher
type Shell struct {
	searcher *searcher.Searcher
	reader   LineReader
	out      io.Writer
	topK     int
	heading  *color.Color
	logger   *slog.Logger
}

// New creates a Shell that reads queries from reader and writes results to out
func New(s *searcher.Searcher, reader LineReader, out io.Writer, opts Options) *Shell {
	topK := opts.TopK
	if topK < 1 {
		topK = searcher.DefaultTopK
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	heading := color.New(color.FgCyan, color.Bold)
	if opts.NoColor {
		heading.DisableColor()
	}

	return &Shell{
		searcher: s,
		reader:   reader,
		out:      out,
		topK:     topK,
		heading:  heading,
		logger:   logger,
	}
}

// Run reports the corpus size and answers queries until the user exits,
// input ends or ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	sh.Summary()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := sh.reader.ReadLine(Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read query: %w", err)
		}

		query := strings.TrimSpace(input)
		if strings.EqualFold(query, exitCommand) {
			fmt.Fprintln(sh.out, MsgGoodbye)
			return nil
		}
		if query == "" {
			continue
		}

		sh.Query(query)
	}
}

// Summary prints the number of functions available to search
func (sh *Shell) Summary() {
	fmt.Fprintf(sh.out, msgFunctionsFound, sh.searcher.Corpus().Len())
}

// Query scores one query and renders the results
func (sh *Shell) Query(query string) {
	results := sh.searcher.Search(query, sh.topK)
	sh.logger.Debug("Query scored", "query", query, "results", len(results), "relevant", types.HasRelevant(results))
	sh.Render(results)
}

// Render prints every relevant result, or a notice when none is relevant,
// followed by two blank lines.
func (sh *Shell) Render(results []types.Result) {
	if types.HasRelevant(results) {
		for _, r := range results {
			if !r.Relevant() {
				continue
			}
			fmt.Fprintf(sh.out, "\n%s %s\n", sh.heading.Sprint("File:"), r.Document.FilePath)
			fmt.Fprintf(sh.out, "%s %.2f%%\n", sh.heading.Sprint("Similarity Score:"), r.Percent())
			fmt.Fprintf(sh.out, "%s %s (Line %d)\n", sh.heading.Sprint("Function:"), r.Document.FunctionName, r.Document.LineNumber)
			fmt.Fprintf(sh.out, "%s %s\n", sh.heading.Sprint("Docstring:"), r.Document.Docstring)
		}
	} else {
		fmt.Fprintln(sh.out, MsgNoRelevant)
	}

	fmt.Fprint(sh.out, "\n\n")
}
