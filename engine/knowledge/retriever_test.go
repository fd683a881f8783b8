package knowledge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmasethu/sakhi/engine/knowledge"
	"github.com/janmasethu/sakhi/engine/knowledge/vectordb"
)

type stubEmbedder struct {
	fail bool
}

func (s *stubEmbedder) Dimension() int { return 3 }

func (s *stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	if s.fail {
		return nil, errors.New("embed query failed")
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) EmbedDocuments(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

type stubStore struct {
	matches []vectordb.Match
	fail    bool
	gotOpts vectordb.SearchOptions
}

func (s *stubStore) Upsert(context.Context, []vectordb.Record) error { return nil }

func (s *stubStore) Search(_ context.Context, _ []float32, opts vectordb.SearchOptions) ([]vectordb.Match, error) {
	s.gotOpts = opts
	if s.fail {
		return nil, errors.New("provider unavailable")
	}
	return append([]vectordb.Match(nil), s.matches...), nil
}

func (s *stubStore) Close(context.Context) error { return nil }

func docMatch(id string, score float64) vectordb.Match {
	return vectordb.Match{
		ID:    id,
		Score: score,
		Text:  "section body " + id,
		Metadata: map[string]any{
			"header_path": "Guide > " + id,
		},
	}
}

func faqMatch(id string, link string) vectordb.Match {
	meta := map[string]any{"question": "q-" + id}
	if link != "" {
		meta["youtube_link"] = link
	}
	return vectordb.Match{ID: id, Score: 0.6, Text: "faq answer " + id, Metadata: meta}
}

func TestRetriever_ShouldMergeDocumentsFirstThenFAQ(t *testing.T) {
	docs := &stubStore{matches: []vectordb.Match{docMatch("a", 0.9), docMatch("b", 0.8)}}
	faqs := &stubStore{matches: []vectordb.Match{faqMatch("f", "https://youtu.be/x")}}
	r, err := knowledge.NewRetriever(&stubEmbedder{}, docs, faqs)
	require.NoError(t, err)

	matches, err := r.Query(context.Background(), "how much does ivf cost", knowledge.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, knowledge.SourceDocument, matches[0].SourceType)
	assert.Equal(t, "Guide > a", matches[0].HeaderPath)
	assert.Equal(t, knowledge.SourceDocument, matches[1].SourceType)
	assert.Equal(t, "Guide > b", matches[1].HeaderPath)
	assert.Equal(t, knowledge.SourceFAQ, matches[2].SourceType)
	assert.Equal(t, "https://youtu.be/x", matches[2].YouTubeLink)
}

func TestRetriever_ShouldIncludeLinklessFAQOnlyAsLastResort(t *testing.T) {
	r, err := knowledge.NewRetriever(
		&stubEmbedder{},
		&stubStore{},
		&stubStore{matches: []vectordb.Match{faqMatch("f", "")}},
	)
	require.NoError(t, err)
	matches, err := r.Query(context.Background(), "anything", knowledge.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, knowledge.SourceFAQ, matches[0].SourceType)
}

func TestRetriever_ShouldExcludeLinklessFAQWhenDocumentsExist(t *testing.T) {
	r, err := knowledge.NewRetriever(
		&stubEmbedder{},
		&stubStore{matches: []vectordb.Match{docMatch("a", 0.9)}},
		&stubStore{matches: []vectordb.Match{faqMatch("f", "")}},
	)
	require.NoError(t, err)
	matches, err := r.Query(context.Background(), "anything", knowledge.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, knowledge.SourceDocument, matches[0].SourceType)
}

func TestRetriever_ShouldIsolateProviderFailures(t *testing.T) {
	faqs := &stubStore{matches: []vectordb.Match{faqMatch("f", "https://youtu.be/x")}}
	r, err := knowledge.NewRetriever(&stubEmbedder{}, &stubStore{fail: true}, faqs)
	require.NoError(t, err)
	matches, err := r.Query(context.Background(), "anything", knowledge.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, knowledge.SourceFAQ, matches[0].SourceType)

	docs := &stubStore{matches: []vectordb.Match{docMatch("a", 0.9)}}
	r, err = knowledge.NewRetriever(&stubEmbedder{}, docs, &stubStore{fail: true})
	require.NoError(t, err)
	matches, err = r.Query(context.Background(), "anything", knowledge.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, knowledge.SourceDocument, matches[0].SourceType)
}

func TestRetriever_ShouldPropagateEmbeddingFailure(t *testing.T) {
	r, err := knowledge.NewRetriever(&stubEmbedder{fail: true}, &stubStore{}, &stubStore{})
	require.NoError(t, err)
	_, err = r.Query(context.Background(), "anything", knowledge.DefaultQueryOptions())
	require.Error(t, err)
}

func TestRetriever_ShouldPassThresholdAndCountToDocumentSearch(t *testing.T) {
	docs := &stubStore{}
	faqs := &stubStore{}
	r, err := knowledge.NewRetriever(&stubEmbedder{}, docs, faqs)
	require.NoError(t, err)
	_, err = r.Query(context.Background(), "anything", knowledge.QueryOptions{
		MatchThreshold: 0.42,
		MatchCount:     7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, docs.gotOpts.TopK)
	assert.InDelta(t, 0.42, docs.gotOpts.MinScore, 1e-9)
	assert.Equal(t, 1, faqs.gotOpts.TopK)
}

func TestRetriever_ShouldDefaultZeroOptions(t *testing.T) {
	docs := &stubStore{}
	r, err := knowledge.NewRetriever(&stubEmbedder{}, docs, &stubStore{})
	require.NoError(t, err)
	// A partially-filled QueryOptions must not silently disable the
	// similarity threshold.
	_, err = r.Query(context.Background(), "anything", knowledge.QueryOptions{MatchCount: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, docs.gotOpts.TopK)
	assert.InDelta(t, 0.3, docs.gotOpts.MinScore, 1e-9)

	_, err = r.Query(context.Background(), "anything", knowledge.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, docs.gotOpts.TopK)
	assert.InDelta(t, 0.3, docs.gotOpts.MinScore, 1e-9)
}
