// Package mcp implements the Model Context Protocol (MCP) server for funcsearch.
//
// The server exposes three tools to AI coding assistants:
//   - index_directory: scan a directory and build its TF-IDF index
//   - search_functions: rank the indexed functions against a query
//   - get_status: report whether a directory is indexed
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Stdout carries protocol messages only; logs go to stderr.
//
// # Tool: index_directory
//
//	Request:
//	{
//	  "name": "index_directory",
//	  "arguments": {"path": "/path/to/project", "include_tests": true}
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "functions": 1342,
//	  "files": 187,
//	  "files_scanned": 190,
//	  "files_failed": 3,
//	  "errors": ["/path/to/project/gen.go: syntax error: ..."],
//	  "vocabulary_size": 9120,
//	  "duration_ms": 412
//	}
//
// Indexing a directory that is already indexed rebuilds its index off to the
// side and swaps it in, so searches running at the same time keep answering
// from the previous index. A second index_directory call for the same
// directory while one is running fails with ErrorCodeIndexingInProgress.
//
// # Tool: search_functions
//
//	Request:
//	{
//	  "name": "search_functions",
//	  "arguments": {"path": "/path/to/project", "query": "parse config file", "limit": 3}
//	}
//
//	Response:
//	{
//	  "relevant": true,
//	  "results": [
//	    {"rank": 1, "function": "LoadSettings", "file": "...", "line": 42,
//	     "score": 0.41, "percent": "41.00", "docstring": "...", "signature": "..."}
//	  ]
//	}
//
// Results are computed for every call and never cached. "relevant" is false
// when no result scored above zero.
//
// # Index Cache
//
// Built indexes are kept per directory in an LRU cache (Config.CacheSize
// entries). When the cache is full the least recently used directory is
// dropped and must be indexed again.
//
// # Error Handling
//
// Tool failures are returned as *MCPError values carrying a JSON-RPC style
// code:
//
//	-32602  invalid parameters (bad path, limit out of range)
//	-32603  internal error
//	-32002  indexing already in progress
//	-32003  directory not indexed
//	-32004  empty query
//	-32005  no functions found
package mcp
