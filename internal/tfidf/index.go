package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/funcsearch/pkg/types"
)

// Index is an immutable TF-IDF model of a corpus: a vocabulary with smoothed
// inverse document frequencies and one unit-length vector per document.
//
// An Index is read-only after Build and safe for concurrent use.
type Index struct {
	terms   []string       // Vocabulary in lexicographic order; position is the term ID
	termIDs map[string]int // Term -> ID
	df      []int          // Document frequency per term ID
	idf     []float64      // Inverse document frequency per term ID
	vectors []Vector       // One L2-normalized vector per corpus position
}

// Build tokenizes every document's search text and weights its terms.
//
// Term frequency is the raw count of a term in a document. Inverse document
// frequency is ln((1+N)/(1+df)) + 1, which is positive for every term. Each
// document vector holds tf*idf per term and is scaled to unit length; a
// document without terms keeps the zero vector.
func Build(corpus *types.Corpus) (*Index, error) {
	if corpus.IsEmpty() {
		return nil, types.ErrEmptyCorpus
	}

	n := corpus.Len()
	counts := make([]map[string]int, n)
	seen := make(map[string]int)
	for i := 0; i < n; i++ {
		doc := corpus.At(i)
		counts[i] = termCounts(Tokenize(doc.SearchText))
		for term := range counts[i] {
			seen[term]++
		}
	}

	idx := &Index{
		terms:   make([]string, 0, len(seen)),
		termIDs: make(map[string]int, len(seen)),
		vectors: make([]Vector, n),
	}

	for term := range seen {
		idx.terms = append(idx.terms, term)
	}
	sort.Strings(idx.terms)

	idx.df = make([]int, len(idx.terms))
	idx.idf = make([]float64, len(idx.terms))
	for id, term := range idx.terms {
		idx.termIDs[term] = id
		idx.df[id] = seen[term]
		idx.idf[id] = smoothIDF(n, seen[term])
	}

	for i := range counts {
		idx.vectors[i] = idx.weigh(counts[i])
	}

	return idx, nil
}

// smoothIDF computes ln((1+n)/(1+df)) + 1
func smoothIDF(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}

// weigh turns term counts into a unit-length tf*idf vector.
// Terms outside the vocabulary are dropped.
func (idx *Index) weigh(counts map[string]int) Vector {
	vec := make(Vector, 0, len(counts))
	for term, count := range counts {
		id, ok := idx.termIDs[term]
		if !ok {
			continue
		}
		vec = append(vec, Entry{Term: id, Weight: float64(count)})
	}

	// Entries are weighted and summed in term ID order so equal input gives bit-identical vectors
	sort.Slice(vec, func(i, j int) bool { return vec[i].Term < vec[j].Term })
	for i := range vec {
		vec[i].Weight *= idx.idf[vec[i].Term]
	}
	vec.normalize()

	return vec
}

// Vectorize projects text into the index's vector space using the vocabulary
// and IDF weights fixed at build time.
func (idx *Index) Vectorize(text string) Vector {
	return idx.weigh(termCounts(Tokenize(text)))
}

// Len returns the number of document vectors
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Vector returns the normalized vector of the document at corpus position i
func (idx *Index) Vector(i int) Vector {
	if i < 0 || i >= len(idx.vectors) {
		panic(fmt.Sprintf("tfidf: document %d out of range [0,%d)", i, len(idx.vectors)))
	}
	return idx.vectors[i]
}

// VocabularySize returns the number of distinct terms
func (idx *Index) VocabularySize() int {
	return len(idx.terms)
}

// Terms returns the vocabulary in lexicographic order
func (idx *Index) Terms() []string {
	out := make([]string, len(idx.terms))
	copy(out, idx.terms)
	return out
}

// TermID returns the ID of a vocabulary term
func (idx *Index) TermID(term string) (int, bool) {
	id, ok := idx.termIDs[term]
	return id, ok
}

// IDF returns the inverse document frequency of a term, zero when unknown
func (idx *Index) IDF(term string) float64 {
	id, ok := idx.termIDs[term]
	if !ok {
		return 0
	}
	return idx.idf[id]
}

// DocumentFrequency returns how many documents contain the term
func (idx *Index) DocumentFrequency(term string) int {
	id, ok := idx.termIDs[term]
	if !ok {
		return 0
	}
	return idx.df[id]
}
