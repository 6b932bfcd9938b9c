package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/funcsearch/internal/extractor"
	"github.com/dshills/funcsearch/internal/searcher"
	"github.com/dshills/funcsearch/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "funcsearch"
	// DefaultCacheSize is the number of indexed roots kept in memory
	DefaultCacheSize = 8
)

// Config configures the MCP server
type Config struct {
	Version   string
	CacheSize int               // Indexed roots kept before the least recently used is dropped
	Scan      *extractor.Config // Defaults for index_directory; tool arguments override test/vendor flags
	Logger    *slog.Logger
}

// Server wraps the MCP server with one searcher per indexed root
type Server struct {
	mcp       *server.MCPServer
	extractor *extractor.Extractor
	scan      extractor.Config
	logger    *slog.Logger
	searchers *lru.Cache[string, *searcher.Searcher]
}

// NewServer creates a new MCP server instance
func NewServer(cfg Config) (*Server, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Scan == nil {
		cfg.Scan = extractor.DefaultConfig()
	}

	logger := cfg.Logger
	searchers, err := lru.NewWithEvict(cfg.CacheSize, func(root string, _ *searcher.Searcher) {
		logger.Debug("Evicted index", "root", root)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher cache: %w", err)
	}

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, cfg.Version),
		extractor: extractor.NewWithLogger(logger),
		scan:      *cfg.Scan,
		logger:    logger,
		searchers: searchers,
	}

	s.registerTools()

	return s, nil
}

// Serve runs the MCP protocol on stdio until ctx is cancelled or stdin closes
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", "name", ServerName)
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchFunctionsTool(), s.handleSearchFunctions)
	s.mcp.AddTool(indexDirectoryTool(), s.handleIndexDirectory)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}

// cacheKey normalizes a root so equivalent paths share one searcher
func cacheKey(root string) string {
	return filepath.Clean(root)
}

// lookup returns the searcher for root without building one
func (s *Server) lookup(root string) (*searcher.Searcher, bool) {
	return s.searchers.Get(cacheKey(root))
}

// index scans root and publishes its index.
// An existing searcher is rebuilt in place so concurrent searches keep working.
func (s *Server) index(ctx context.Context, root string, config *extractor.Config) (*extractor.Statistics, *searcher.Searcher, error) {
	key := cacheKey(root)

	var stats *extractor.Statistics
	load := func(ctx context.Context) (*types.Corpus, error) {
		corpus, scanStats, err := s.extractor.Extract(ctx, key, config)
		if err != nil {
			return nil, err
		}
		stats = scanStats
		return corpus, nil
	}

	if existing, ok := s.searchers.Get(key); ok {
		if err := existing.Rebuild(ctx, load); err != nil {
			return stats, nil, err
		}
		return stats, existing, nil
	}

	corpus, err := load(ctx)
	if err != nil {
		return nil, nil, err
	}

	srch, err := searcher.New(corpus)
	if err != nil {
		return stats, nil, err
	}

	// Another call may have indexed the same root meanwhile; the newer build wins
	s.searchers.Add(key, srch)

	return stats, srch, nil
}
