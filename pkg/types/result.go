package types

// Result is a document paired with its similarity to a query
type Result struct {
	Document Document
	Score    float64 // Cosine similarity in [0, 1]
	Rank     int     // Position in result set (1-based)
}

// Percent returns the score as a percentage
func (r *Result) Percent() float64 {
	return r.Score * 100
}

// Relevant returns true if the document shares at least one weighted term with the query
func (r *Result) Relevant() bool {
	return r.Score > 0
}

// Validate checks if the result is well formed
func (r *Result) Validate() error {
	if r.Rank < 1 {
		return ErrInvalidRank
	}

	if r.Score < 0 || r.Score > 1 {
		return ErrInvalidScore
	}

	return r.Document.Validate()
}

// HasRelevant reports whether any result scored above zero.
// It separates "no relevant results" from "no results".
func HasRelevant(results []Result) bool {
	for i := range results {
		if results[i].Relevant() {
			return true
		}
	}
	return false
}
