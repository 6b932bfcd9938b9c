package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Limits for the search_functions limit parameter
const (
	DefaultLimit = 3
	MaxLimit     = 100
)

// searchFunctionsTool returns the tool definition for search_functions
func searchFunctionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_functions",
		Description: "Rank the Go functions of an indexed directory by TF-IDF similarity to a free-text query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of a directory previously passed to index_directory",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text query; words are matched against function names, doc comments and source",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     DefaultLimit,
					"minimum":     1,
					"maximum":     MaxLimit,
				},
			},
			Required: []string{"path", "query"},
		},
	}
}

// indexDirectoryTool returns the tool definition for index_directory
func indexDirectoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_directory",
		Description: "Scan a directory for Go functions and build (or rebuild) its search index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory to scan",
				},
				"include_tests": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, scan *_test.go files",
					"default":     true,
				},
				"include_vendor": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, scan the vendor/ directory",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report whether a directory is indexed and the size of its index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory",
				},
			},
			Required: []string{"path"},
		},
	}
}
