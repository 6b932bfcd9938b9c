// Package types provides shared type definitions for funcsearch.
//
// # Core Types
//
// Document represents one Go function or method extracted from source code via
// AST parsing. Its SearchText is what the term-weighting index sees:
//
//	doc := types.Document{
//	    FilePath:     "internal/parser/parser.go",
//	    FunctionName: "ParseFile",
//	    Docstring:    "ParseFile parses a Go source file",
//	    LineNumber:   28,
//	    SearchText:   types.BuildSearchText(name, docstring, source),
//	}
//
// Corpus is the ordered, immutable collection of documents produced by one
// directory scan. Positions in the corpus are the document identities used by
// the index:
//
//	corpus := types.NewCorpus(docs)
//	first := corpus.At(0)
//
// # Search Results
//
// Result pairs a document with its cosine similarity to a query:
//
//	result := types.Result{
//	    Document: doc,
//	    Score:    0.65,
//	    Rank:     1,
//	}
//
// Scores are in the [0, 1] range. A score of exactly zero means the document
// shares no vocabulary with the query; HasRelevant tells a list of such
// results apart from a list with at least one match.
package types
