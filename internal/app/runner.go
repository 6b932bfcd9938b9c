package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dshills/funcsearch/internal/config"
	"github.com/dshills/funcsearch/internal/extractor"
	"github.com/dshills/funcsearch/internal/mcp"
	"github.com/dshills/funcsearch/internal/searcher"
	"github.com/dshills/funcsearch/internal/shell"
	"github.com/dshills/funcsearch/internal/storage"
	"github.com/dshills/funcsearch/pkg/types"
)

var (
	// ErrDirectoryNotFound is returned when the directory to scan does not exist
	ErrDirectoryNotFound = errors.New("directory does not exist")
	// ErrEmptyQuery is returned when a one-shot query has no words
	ErrEmptyQuery = errors.New("query must not be empty")
)

// RunParams contains dependencies for the run functions
type RunParams struct {
	LoadSettings  func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings func(*config.Settings) error
	NewReader     func(historyFile string) shell.LineReader
	Serve         func(context.Context, *mcp.Server) error
	Out           io.Writer // Results and user messages
	ErrOut        io.Writer // Logs
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
		NewReader:     shell.NewReader,
		Serve: func(ctx context.Context, s *mcp.Server) error {
			return s.Serve(ctx)
		},
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

// setup loads and validates settings and installs the default logger
func setup(params RunParams, flags *pflag.FlagSet) (*config.Settings, *slog.Logger, error) {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Logs always go to stderr; stdout belongs to results and the MCP protocol
	logger, err := config.NewLogger(params.ErrOut, settings.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(logger)
	config.LogWithLogger(settings, logger)

	return settings, logger, nil
}

// resolveDir picks the directory argument, falling back to the configured one
func resolveDir(settings *config.Settings, dir string) string {
	if dir == "" {
		return settings.Dir
	}
	return dir
}

// scan extracts the corpus of dir, reporting progress to params.Out
func scan(ctx context.Context, params RunParams, settings *config.Settings, logger *slog.Logger, dir string) (*types.Corpus, *extractor.Statistics, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(params.Out, "Directory %s does not exist.\n", dir)
		return nil, nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	fmt.Fprintln(params.Out, "Scanning directory for Go files...")

	corpus, stats, err := extractor.NewWithLogger(logger).Extract(ctx, dir, settings.ExtractorConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	logger.Info("Scan complete",
		"dir", dir,
		"files", stats.FilesDiscovered,
		"failed", stats.FilesFailed,
		"functions", stats.FunctionsExtracted,
		"duration", stats.Duration)

	return corpus, stats, nil
}

// loadSnapshot reads the newest corpus saved in dbPath, for dir when it is not empty
func loadSnapshot(ctx context.Context, dbPath, dir string) (*types.Corpus, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	root := ""
	if dir != "" {
		if root, err = filepath.Abs(dir); err != nil {
			return nil, err
		}
	}

	snapshot, err := store.LatestSnapshot(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot in %s: %w", dbPath, err)
	}

	slog.Info("Loading snapshot", "id", snapshot.ID, "root", snapshot.RootPath, "documents", snapshot.Documents)
	return store.LoadCorpus(ctx, snapshot.ID)
}

// RunSearch scans dir (or loads a snapshot) and runs the interactive shell.
// An empty corpus is reported without entering the shell.
func RunSearch(ctx context.Context, params RunParams, flags *pflag.FlagSet, dir string) error {
	settings, logger, err := setup(params, flags)
	if err != nil {
		return err
	}

	var corpus *types.Corpus
	snapshotDB := ""
	if flags != nil {
		snapshotDB, _ = flags.GetString("snapshot")
	}
	if snapshotDB != "" {
		corpus, err = loadSnapshot(ctx, snapshotDB, dir)
	} else {
		corpus, _, err = scan(ctx, params, settings, logger, resolveDir(settings, dir))
	}
	if err != nil {
		return err
	}

	if corpus.IsEmpty() {
		fmt.Fprintln(params.Out, shell.MsgNoFunctions)
		return nil
	}

	srch, err := searcher.New(corpus)
	if err != nil {
		return err
	}

	reader := params.NewReader(settings.HistoryFile)
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn("Failed to close input", "error", err)
		}
	}()

	sh := shell.New(srch, reader, params.Out, shell.Options{
		TopK:    settings.TopK,
		NoColor: settings.NoColor,
		Logger:  logger,
	})
	return sh.Run(ctx)
}

// RunQuery scans dir and prints the results of a single query.
// A blank query is refused before anything is scanned.
func RunQuery(ctx context.Context, params RunParams, flags *pflag.FlagSet, dir, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	settings, logger, err := setup(params, flags)
	if err != nil {
		return err
	}

	corpus, _, err := scan(ctx, params, settings, logger, resolveDir(settings, dir))
	if err != nil {
		return err
	}

	if corpus.IsEmpty() {
		fmt.Fprintln(params.Out, shell.MsgNoFunctions)
		return nil
	}

	srch, err := searcher.New(corpus)
	if err != nil {
		return err
	}

	sh := shell.New(srch, nil, params.Out, shell.Options{
		TopK:    settings.TopK,
		NoColor: settings.NoColor,
		Logger:  logger,
	})
	sh.Summary()
	sh.Query(query)
	return nil
}

// RunExport scans dir and saves the corpus as a snapshot in the configured database
func RunExport(ctx context.Context, params RunParams, flags *pflag.FlagSet, dir string) error {
	settings, logger, err := setup(params, flags)
	if err != nil {
		return err
	}

	dir = resolveDir(settings, dir)
	corpus, stats, err := scan(ctx, params, settings, logger, dir)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	id, err := store.SaveCorpus(ctx, root, corpus, storage.ScanStats{
		FilesScanned: stats.FilesDiscovered,
		FilesFailed:  stats.FilesFailed,
		Duration:     stats.Duration,
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Fprintf(params.Out, "Saved %d functions from %s to %s (snapshot %d).\n", corpus.Len(), root, settings.DBPath, id)
	return nil
}

// RunServe starts the MCP server on stdio
func RunServe(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, logger, err := setup(params, flags)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(mcp.Config{
		Version:   version,
		CacheSize: settings.CacheSize,
		Scan:      settings.ExtractorConfig(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("Starting funcsearch MCP server", "version", version, "sqlite", storage.BuildMode)
	return params.Serve(ctx, server)
}
