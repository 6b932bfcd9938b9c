// Package shell implements the interactive query loop.
//
// A Shell holds one searcher.Searcher and reads queries through a LineReader.
// On a terminal the reader is a liner line editor with persistent history;
// with piped input it is a plain line scanner, so
//
//	echo "parse config" | funcsearch ./project
//
// prints the results for one query and exits at end of input.
//
// Results with a zero score are never listed. When no result scores above
// zero the shell prints "No relevant functions found for your query." instead.
package shell
