package searcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/funcsearch/internal/tfidf"
	"github.com/dshills/funcsearch/pkg/types"
)

func newCorpus(texts ...string) *types.Corpus {
	docs := make([]types.Document, len(texts))
	for i, text := range texts {
		docs[i] = types.Document{
			FilePath:     "calc.go",
			FunctionName: fmt.Sprintf("doc%d", i),
			LineNumber:   i*5 + 1,
			SearchText:   text,
		}
	}
	return types.NewCorpus(docs)
}

func scenarioCorpus() *types.Corpus {
	return newCorpus(
		"add numbers returns sum",
		"subtract numbers returns difference",
		"add two integers",
	)
}

func mustBuild(t testing.TB, corpus *types.Corpus) *tfidf.Index {
	t.Helper()
	idx, err := tfidf.Build(corpus)
	require.NoError(t, err)
	return idx
}

func names(results []types.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Document.FunctionName
	}
	return out
}

func TestScore_AddNumbersScenario(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	results := Score("add numbers", idx, corpus, 2)

	require.Len(t, results, 2)
	assert.Equal(t, []string{"doc0", "doc2"}, names(results))
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[1].Score, 0.0)
	assert.InDelta(t, 0.6503, results[0].Score, 1e-3)
	assert.InDelta(t, 0.3349, results[1].Score, 1e-3)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[1].Rank)

	// doc1 would be third
	all := Score("add numbers", idx, corpus, 3)
	assert.Equal(t, "doc1", all[2].Document.FunctionName)
	assert.InDelta(t, 0.3027, all[2].Score, 1e-3)
}

func TestScore_UnknownTerms(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	results := Score("xyzzy plugh", idx, corpus, 3)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"doc0", "doc1", "doc2"}, names(results))
	for _, r := range results {
		assert.Equal(t, 0.0, r.Score)
	}
	assert.False(t, types.HasRelevant(results))
}

func TestScore_EmptyQuery(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	results := Score("", idx, corpus, 2)
	require.Len(t, results, 2)
	assert.Equal(t, 0.0, results[0].Score)
	assert.Equal(t, "doc0", results[0].Document.FunctionName)

	results = Score("   \t", idx, corpus, 2)
	require.Len(t, results, 2)
	assert.False(t, types.HasRelevant(results))
}

func TestScore_SelfSimilarity(t *testing.T) {
	corpus := newCorpus(
		"add numbers returns sum",
		"subtract numbers returns difference",
		"add two integers",
		"func ParseFile(path string) (*Result, error) { return nil, nil }",
		"Grüße aus München",
	)
	idx := mustBuild(t, corpus)

	for i := 0; i < corpus.Len(); i++ {
		doc := corpus.At(i)
		results := Score(doc.SearchText, idx, corpus, corpus.Len())

		require.NotEmpty(t, results)
		assert.Equal(t, doc.FunctionName, results[0].Document.FunctionName)
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
		assert.LessOrEqual(t, results[0].Score, 1.0)
	}
}

func TestScore_ZeroCase(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	for _, r := range Score("quaternion", idx, corpus, 3) {
		assert.Equal(t, 0.0, r.Score)
	}
}

func TestScore_TopKBound(t *testing.T) {
	corpus := newCorpus(
		"parse file returns result",
		"parse request body",
		"write response body",
		"file system walk",
		"read file contents",
		"close file handle",
	)
	idx := mustBuild(t, corpus)

	for k := 1; k <= corpus.Len(); k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			results := Score("parse file body", idx, corpus, k)
			require.Len(t, results, k)
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
				assert.Equal(t, i+1, results[i].Rank)
			}
			for _, r := range results {
				assert.NoError(t, r.Validate())
			}
		})
	}
}

func TestScore_FewerDocumentsThanK(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	results := Score("add", idx, corpus, 10)
	assert.Len(t, results, 3)
}

func TestScore_OrderStability(t *testing.T) {
	corpus := newCorpus(
		"alpha beta",
		"gamma delta",
		"alpha beta",
		"epsilon zeta",
		"alpha beta",
	)
	idx := mustBuild(t, corpus)

	results := Score("alpha", idx, corpus, 5)

	// Equal scores keep corpus order
	assert.Equal(t, []string{"doc0", "doc2", "doc4", "doc1", "doc3"}, names(results))
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, results[1].Score, results[2].Score)
	assert.Equal(t, 0.0, results[3].Score)
	assert.Equal(t, 0.0, results[4].Score)
}

func TestScore_ZeroVectorDocument(t *testing.T) {
	corpus := newCorpus("a + b", "add numbers")
	idx := mustBuild(t, corpus)

	results := Score("add", idx, corpus, 2)
	assert.Equal(t, "doc1", results[0].Document.FunctionName)
	assert.Equal(t, "doc0", results[1].Document.FunctionName)
	assert.Equal(t, 0.0, results[1].Score)
}

func TestScore_Preconditions(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)
	other := newCorpus("only one document")

	assert.Panics(t, func() { Score("add", idx, other, 1) })
	assert.Panics(t, func() { Score("add", nil, corpus, 1) })
	assert.Panics(t, func() { Score("add", idx, corpus, 0) })
}

func TestScore_Pure(t *testing.T) {
	corpus := scenarioCorpus()
	idx := mustBuild(t, corpus)

	first := Score("add numbers", idx, corpus, 3)
	second := Score("add numbers", idx, corpus, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "add numbers returns sum", corpus.At(0).SearchText)
}

func TestNew_EmptyCorpus(t *testing.T) {
	s, err := New(types.NewCorpus(nil))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, types.ErrEmptyCorpus)
}

func TestSearcher_Search(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	results := s.Search("add numbers", 2)
	assert.Equal(t, []string{"doc0", "doc2"}, names(results))

	// Non-positive k falls back to the default
	assert.Len(t, s.Search("add numbers", 0), DefaultTopK)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 8, stats.VocabularySize)
	assert.False(t, stats.BuiltAt.IsZero())
	assert.Equal(t, 3, s.Corpus().Len())
}

func TestSearcher_Rebuild(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	err = s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
		return newCorpus("walk directory tree", "parse source file"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Corpus().Len())
	results := s.Search("parse", 1)
	assert.Equal(t, "doc1", results[0].Document.FunctionName)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestSearcher_RebuildFailureKeepsSnapshot(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	loadErr := errors.New("disk on fire")
	err = s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
		return nil, loadErr
	})
	assert.ErrorIs(t, err, loadErr)

	err = s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
		return types.NewCorpus(nil), nil
	})
	assert.ErrorIs(t, err, types.ErrEmptyCorpus)

	assert.Equal(t, 3, s.Corpus().Len())
	assert.Equal(t, "doc0", s.Search("add numbers", 1)[0].Document.FunctionName)
}

func TestSearcher_RebuildCancelled(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = s.Rebuild(ctx, func(ctx context.Context) (*types.Corpus, error) {
		cancel()
		return newCorpus("replacement"), nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, s.Corpus().Len())
}

func TestSearcher_ConcurrentRebuildRefused(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
			close(started)
			<-release
			return newCorpus("new corpus"), nil
		})
	}()

	<-started
	err = s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
		t.Error("second loader must not run")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrRebuildInProgress)

	// The in-flight rebuild has not been published yet
	assert.Equal(t, 3, s.Corpus().Len())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, s.Corpus().Len())

	// Lock is released after completion
	require.NoError(t, s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
		return scenarioCorpus(), nil
	}))
}

func TestSearcher_SearchDuringRebuild(t *testing.T) {
	s, err := New(scenarioCorpus())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				results := s.Search("add numbers", 3)
				// Either the old snapshot (3 docs) or the new one (2 docs), never a mix
				assert.Contains(t, []int{2, 3}, len(results))
			}
		}()
	}

	for i := 0; i < 10; i++ {
		corpus := scenarioCorpus()
		if i%2 == 0 {
			corpus = newCorpus("add numbers", "two integers")
		}
		_ = s.Rebuild(context.Background(), func(ctx context.Context) (*types.Corpus, error) {
			return corpus, nil
		})
	}

	wg.Wait()
}
