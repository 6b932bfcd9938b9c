package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/funcsearch/internal/parser"
	"github.com/dshills/funcsearch/pkg/types"
)

var (
	// ErrRootNotFound is returned when the scan root does not exist
	ErrRootNotFound = errors.New("directory does not exist")
	// ErrNotDirectory is returned when the scan root is a file
	ErrNotDirectory = errors.New("path is not a directory")
)

// Extractor walks a directory tree and extracts one document per Go function
type Extractor struct {
	logger *slog.Logger
}

// Config contains configuration for a scan
type Config struct {
	Workers       int      // Number of concurrent parsers (default: runtime.NumCPU())
	IncludeTests  bool     // Whether to scan _test.go files (default: true)
	IncludeVendor bool     // Whether to scan the vendor directory (default: false)
	Exclude       []string // Doublestar globs matched against root-relative slash paths
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.NumCPU(),
		IncludeTests:  true,
		IncludeVendor: false,
	}
}

// Statistics contains statistics about a scan
type Statistics struct {
	FilesDiscovered    int
	FilesParsed        int
	FilesFailed        int
	FunctionsExtracted int
	Duration           time.Duration
	ErrorMessages      []string
}

// fileResult is the outcome of extracting one file
type fileResult struct {
	documents []types.Document
	err       error
}

// New creates a new Extractor that logs to the default logger
func New() *Extractor {
	return NewWithLogger(slog.Default())
}

// NewWithLogger creates a new Extractor with a specific logger
func NewWithLogger(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract scans root and returns the corpus of every function found.
//
// Files that cannot be read or parsed are logged, counted and skipped. The
// corpus order is the lexical walk order, then declaration order within a
// file, regardless of how many workers parse in parallel.
func (e *Extractor) Extract(ctx context.Context, root string, config *Config) (*types.Corpus, *Statistics, error) {
	if config == nil {
		config = DefaultConfig()
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	if err := checkRoot(root); err != nil {
		return nil, nil, err
	}

	// Discover Go files
	files, err := e.discoverFiles(root, config, stats)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover files: %w", err)
	}
	stats.FilesDiscovered = len(files)

	// Parse files concurrently
	results, err := e.extractFiles(ctx, files, workers)
	if err != nil {
		return nil, nil, err
	}

	// Assemble in discovery order
	docs := make([]types.Document, 0, len(files)*4)
	for i, res := range results {
		if res.err != nil {
			stats.FilesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", files[i], res.err))
			e.logger.Warn("Skipping file", "file", files[i], "error", res.err)
			continue
		}
		stats.FilesParsed++
		docs = append(docs, res.documents...)
	}

	stats.FunctionsExtracted = len(docs)
	stats.Duration = time.Since(startTime)

	e.logger.Debug("Scan complete",
		"root", root,
		"files", stats.FilesDiscovered,
		"failed", stats.FilesFailed,
		"functions", stats.FunctionsExtracted,
		"duration", stats.Duration)

	return types.NewCorpus(docs), stats, nil
}

// checkRoot verifies the scan root is an existing directory
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}

// discoverFiles finds all Go files under root in lexical order.
// Unreadable paths below root are logged and recorded in stats, then skipped.
func (e *Extractor) discoverFiles(root string, config *Config, stats *Statistics) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			stats.FilesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
			e.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			// Skip vendor unless explicitly included
			if !config.IncludeVendor && d.Name() == "vendor" {
				return filepath.SkipDir
			}
			// Skip hidden directories
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesAny(config.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		// Check if it's a Go file
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		// Skip test files unless explicitly included
		if !config.IncludeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}

		if matchesAny(config.Exclude, rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// extractFiles parses files with a bounded worker pool.
// Each result lands at its file's index so ordering does not depend on scheduling.
func (e *Extractor) extractFiles(ctx context.Context, files []string, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	p := parser.New()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, filePath := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = extractFile(p, filePath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// extractFile parses a single file; syntax errors become the file's error
func extractFile(p *parser.Parser, filePath string) fileResult {
	parseResult, err := p.ParseFile(filePath)
	if err != nil {
		return fileResult{err: err}
	}

	if parseResult.HasErrors() {
		return fileResult{err: &parseResult.Errors[0]}
	}

	return fileResult{documents: parseResult.Documents}
}

// matchesAny reports whether a root-relative slash path matches any exclude glob
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidatePatterns checks exclude globs before a scan starts
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}
