package app

import (
	"runtime"

	"github.com/spf13/pflag"
)

// RegisterScanFlags registers the flags shared by every command that scans a directory
func RegisterScanFlags(flags *pflag.FlagSet) {
	flags.IntP("top-k", "k", 3, "Number of results per query")
	flags.IntP("workers", "w", runtime.NumCPU(), "Number of files parsed concurrently")
	flags.Bool("include-tests", true, "Scan _test.go files")
	flags.Bool("include-vendor", false, "Scan the vendor directory")
	flags.StringSliceP("exclude", "x", nil, "Glob patterns to skip, e.g. '**/testdata/**' (comma-separated)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
}

// RegisterShellFlags registers the flags of the interactive shell
func RegisterShellFlags(flags *pflag.FlagSet) {
	flags.String("history-file", "", "File the shell keeps query history in")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("snapshot", "", "Search the latest corpus saved in this database instead of scanning")
}

// RegisterExportFlags registers the flags of the export command
func RegisterExportFlags(flags *pflag.FlagSet) {
	flags.String("db", "", "SQLite database to save the corpus snapshot to")
}

// RegisterServeFlags registers the flags of the MCP server
func RegisterServeFlags(flags *pflag.FlagSet) {
	flags.Int("cache-size", 8, "Number of indexed directories kept in memory")
}
