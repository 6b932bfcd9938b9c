// Package searcher ranks extracted functions against free-text queries.
//
// Score is the pure ranking function: it projects a query into the vector
// space of a tfidf.Index, takes the dot product with every document vector
// (cosine similarity, since all vectors are unit length) and returns the top k
// results by descending score. Ties keep corpus order, so two documents that
// both score 0.0 appear in the order they were discovered.
//
// # Basic Usage
//
//	idx, err := tfidf.Build(corpus)
//	if err != nil {
//	    return err // types.ErrEmptyCorpus for an empty scan
//	}
//
//	for _, r := range searcher.Score("parse go file", idx, corpus, 3) {
//	    fmt.Printf("[%d] %s %.2f%%\n", r.Rank, r.Document.FunctionName, r.Percent())
//	}
//
// # Sessions
//
// Searcher bundles a corpus with its index for long-lived callers such as the
// interactive shell and the MCP server:
//
//	s, err := searcher.New(corpus)
//	results := s.Search("parse go file", searcher.DefaultTopK)
//
// The corpus and index are held in one immutable snapshot. Rebuild loads a new
// corpus, builds its index completely and only then swaps the snapshot, so
// concurrent searches never observe a partially built index:
//
//	err := s.Rebuild(ctx, func(ctx context.Context) (*types.Corpus, error) {
//	    corpus, _, err := ext.Extract(ctx, root, cfg)
//	    return corpus, err
//	})
//
// Only one rebuild runs at a time; a second concurrent call returns
// ErrRebuildInProgress immediately.
//
// # Preconditions
//
// Score panics when the index was built from a different corpus or when k is
// below 1. Both indicate caller misuse rather than bad data.
package searcher
