package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dshills/funcsearch/internal/tfidf"
	"github.com/dshills/funcsearch/pkg/types"
)

// DefaultTopK is the number of results returned when no limit is given
const DefaultTopK = 3

// ErrRebuildInProgress is returned when a rebuild is requested while another one runs
var ErrRebuildInProgress = errors.New("index rebuild already in progress")

// Score ranks every corpus document against query and returns the top k.
//
// The query is projected with the index's fixed vocabulary and IDF weights;
// because all vectors are unit length the cosine similarity is their dot
// product. Documents are ordered by descending score and ties keep corpus
// order. Fewer than k documents yields all of them.
//
// Score panics if idx was not built from corpus or if k < 1.
func Score(query string, idx *tfidf.Index, corpus *types.Corpus, k int) []types.Result {
	if idx == nil || idx.Len() != corpus.Len() {
		panic(fmt.Sprintf("searcher: index/corpus size mismatch (%d documents, corpus of %d)", indexLen(idx), corpus.Len()))
	}
	if k < 1 {
		panic(fmt.Sprintf("searcher: k must be >= 1, got %d", k))
	}

	queryVec := idx.Vectorize(query)

	ranked := make([]rankedResult, corpus.Len())
	for i := range ranked {
		ranked[i] = rankedResult{
			position: i,
			score:    clampScore(queryVec.Dot(idx.Vector(i))),
		}
	}

	sortRankedResults(ranked)

	if k > len(ranked) {
		k = len(ranked)
	}

	results := make([]types.Result, k)
	for i := 0; i < k; i++ {
		results[i] = types.Result{
			Document: corpus.At(ranked[i].position),
			Score:    ranked[i].score,
			Rank:     i + 1,
		}
	}

	return results
}

// rankedResult is a corpus position with its similarity score
type rankedResult struct {
	position int
	score    float64
}

// sortRankedResults sorts results by score in descending order, keeping corpus order on ties
func sortRankedResults(results []rankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
}

// clampScore keeps rounding error from pushing a cosine similarity outside [0, 1]
func clampScore(score float64) float64 {
	return math.Max(0, math.Min(1, score))
}

func indexLen(idx *tfidf.Index) int {
	if idx == nil {
		return 0
	}
	return idx.Len()
}

// snapshot is a corpus with the index built from it. It is never modified after creation.
type snapshot struct {
	corpus        *types.Corpus
	index         *tfidf.Index
	builtAt       time.Time
	buildDuration time.Duration
}

// Stats describes the searcher's current snapshot
type Stats struct {
	Documents      int
	Files          int
	VocabularySize int
	BuiltAt        time.Time
	BuildDuration  time.Duration
}

// Loader produces a fresh corpus, typically by scanning a directory
type Loader func(ctx context.Context) (*types.Corpus, error)

// Searcher answers queries against one immutable index at a time.
//
// Search never blocks and never mutates shared state, so any number of
// goroutines may search concurrently. Rebuild constructs a new index off to
// the side and swaps it in atomically: a search sees either the old snapshot
// or the complete new one.
type Searcher struct {
	current atomic.Pointer[snapshot]
	lock    rebuildLock
}

// New builds the index for corpus and returns a searcher over it.
// An empty corpus fails with types.ErrEmptyCorpus.
func New(corpus *types.Corpus) (*Searcher, error) {
	s := &Searcher{}
	if err := s.swap(corpus); err != nil {
		return nil, err
	}
	return s, nil
}

// Search scores query against the current snapshot and returns the top k results.
// A k below 1 falls back to DefaultTopK.
func (s *Searcher) Search(query string, k int) []types.Result {
	if k < 1 {
		k = DefaultTopK
	}
	snap := s.current.Load()
	return Score(query, snap.index, snap.corpus, k)
}

// Corpus returns the corpus of the current snapshot
func (s *Searcher) Corpus() *types.Corpus {
	return s.current.Load().corpus
}

// Stats returns statistics about the current snapshot
func (s *Searcher) Stats() Stats {
	snap := s.current.Load()
	return Stats{
		Documents:      snap.corpus.Len(),
		Files:          snap.corpus.Files(),
		VocabularySize: snap.index.VocabularySize(),
		BuiltAt:        snap.builtAt,
		BuildDuration:  snap.buildDuration,
	}
}

// Rebuild loads a new corpus and replaces the current snapshot once its index is complete.
// On failure the current snapshot stays in place. A concurrent rebuild is refused
// with ErrRebuildInProgress rather than queued.
func (s *Searcher) Rebuild(ctx context.Context, load Loader) error {
	if !s.lock.tryAcquire() {
		return ErrRebuildInProgress
	}
	defer s.lock.release()

	corpus, err := load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.swap(corpus)
}

// swap builds an index for corpus and publishes it
func (s *Searcher) swap(corpus *types.Corpus) error {
	start := time.Now()

	idx, err := tfidf.Build(corpus)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	s.current.Store(&snapshot{
		corpus:        corpus,
		index:         idx,
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
	})

	return nil
}
