package types

import "fmt"

// Corpus is the ordered, read-only set of documents from one directory scan.
// A document's identity is its position.
type Corpus struct {
	docs []Document
}

// NewCorpus creates a corpus holding a copy of docs in the given order
func NewCorpus(docs []Document) *Corpus {
	c := &Corpus{docs: make([]Document, len(docs))}
	copy(c.docs, docs)
	return c
}

// Len returns the number of documents; a nil corpus is empty
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

// IsEmpty returns true if the corpus holds no documents
func (c *Corpus) IsEmpty() bool {
	return c.Len() == 0
}

// At returns the document at position i
func (c *Corpus) At(i int) Document {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("corpus: position %d out of range [0,%d)", i, c.Len()))
	}
	return c.docs[i]
}

// Documents returns a copy of the documents in corpus order
func (c *Corpus) Documents() []Document {
	out := make([]Document, c.Len())
	if c != nil {
		copy(out, c.docs)
	}
	return out
}

// Files returns the number of distinct files contributing documents
func (c *Corpus) Files() int {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		seen[c.docs[i].FilePath] = struct{}{}
	}
	return len(seen)
}
