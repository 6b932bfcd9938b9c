package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/funcsearch/internal/extractor"
	"github.com/dshills/funcsearch/internal/searcher"
	"github.com/dshills/funcsearch/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeNotIndexed         = -32003 // Directory not indexed
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
	ErrorCodeNoFunctions        = -32005 // Scan found no functions to index
)

// maxReportedErrors caps the per-file errors included in an index response
const maxReportedErrors = 5

// handleSearchFunctions handles the search_functions tool invocation
func (s *Server) handleSearchFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", MaxLimit), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	srch, ok := s.lookup(path)
	if !ok {
		return nil, newMCPError(ErrorCodeNotIndexed, "directory not indexed", map[string]interface{}{
			"path":    path,
			"message": "Use the index_directory tool to index this directory first.",
		})
	}

	results := srch.Search(query, limit)

	items := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		items = append(items, map[string]interface{}{
			"rank":      r.Rank,
			"file":      r.Document.FilePath,
			"line":      r.Document.LineNumber,
			"function":  r.Document.QualifiedName(),
			"signature": r.Document.Signature,
			"docstring": r.Document.Docstring,
			"score":     r.Score,
			"percent":   fmt.Sprintf("%.2f", r.Percent()),
		})
	}

	response := map[string]interface{}{
		"path":     path,
		"query":    query,
		"relevant": types.HasRelevant(results),
		"results":  items,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleIndexDirectory handles the index_directory tool invocation
func (s *Server) handleIndexDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	config := s.scan
	config.IncludeTests = getBoolDefault(args, "include_tests", config.IncludeTests)
	config.IncludeVendor = getBoolDefault(args, "include_vendor", config.IncludeVendor)

	start := time.Now()
	stats, srch, err := s.index(ctx, path, &config)
	switch {
	case errors.Is(err, searcher.ErrRebuildInProgress):
		return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", map[string]interface{}{
			"path": path,
		})
	case errors.Is(err, types.ErrEmptyCorpus):
		return nil, newMCPError(ErrorCodeNoFunctions, "no functions found in the specified directory", map[string]interface{}{
			"path": path,
		})
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	info := srch.Stats()
	response := map[string]interface{}{
		"indexed":         true,
		"path":            path,
		"functions":       info.Documents,
		"files":           info.Files,
		"vocabulary_size": info.VocabularySize,
		"duration_ms":     time.Since(start).Milliseconds(),
	}

	if stats != nil {
		response["files_scanned"] = stats.FilesDiscovered
		response["files_failed"] = stats.FilesFailed
		if errorCount := len(stats.ErrorMessages); errorCount > 0 {
			if errorCount > maxReportedErrors {
				response["errors"] = stats.ErrorMessages[:maxReportedErrors]
				response["error_count"] = errorCount
			} else {
				response["errors"] = stats.ErrorMessages
			}
		}
	}

	s.logger.Info("Indexed directory", "path", path, "functions", info.Documents, "vocabulary", info.VocabularySize)

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	srch, ok := s.lookup(path)
	if !ok {
		response := map[string]interface{}{
			"indexed": false,
			"path":    path,
			"message": "Directory not indexed. Use index_directory tool to index this directory.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	info := srch.Stats()
	response := map[string]interface{}{
		"indexed": true,
		"path":    path,
		"statistics": map[string]interface{}{
			"functions":         info.Documents,
			"files":             info.Files,
			"vocabulary_size":   info.VocabularySize,
			"built_at":          info.BuiltAt.Format(time.RFC3339),
			"build_duration_ms": info.BuildDuration.Milliseconds(),
		},
		"indexed_directories": s.searchers.Len(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// requirePath extracts and validates the path argument
func requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	return filepath.Clean(path), nil
}

// validatePath checks if a path is an absolute, readable directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return extractor.ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
)
