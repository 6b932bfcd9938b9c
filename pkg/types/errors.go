package types

import "errors"

// Domain errors
var (
	// ErrEmptyCorpus is returned when an index is requested for a corpus with no documents
	ErrEmptyCorpus = errors.New("empty corpus: no functions found")

	// Search result errors
	ErrInvalidRank  = errors.New("rank must be >= 1")
	ErrInvalidScore = errors.New("score must be between 0 and 1")
)
