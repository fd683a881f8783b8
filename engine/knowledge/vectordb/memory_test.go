package vectordb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmasethu/sakhi/engine/knowledge/vectordb"
)

func TestMemoryStore_ShouldRankByCosineSimilarity(t *testing.T) {
	store := vectordb.NewMemoryStore(2)
	err := store.Upsert(context.Background(), []vectordb.Record{
		{ID: "close", Embedding: []float32{1, 0}, Text: "close"},
		{ID: "far", Embedding: []float32{0, 1}, Text: "far"},
		{ID: "mid", Embedding: []float32{1, 1}, Text: "mid"},
	})
	require.NoError(t, err)

	matches, err := store.Search(context.Background(), []float32{1, 0}, vectordb.SearchOptions{TopK: 3})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "close", matches[0].ID)
	assert.Equal(t, "mid", matches[1].ID)
	assert.Equal(t, "far", matches[2].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestMemoryStore_ShouldApplyTopKAndMinScore(t *testing.T) {
	store := vectordb.NewMemoryStore(2)
	require.NoError(t, store.Upsert(context.Background(), []vectordb.Record{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{1, 1}},
		{ID: "c", Embedding: []float32{0, 1}},
	}))

	matches, err := store.Search(context.Background(), []float32{1, 0}, vectordb.SearchOptions{TopK: 1})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].ID)

	matches, err = store.Search(context.Background(), []float32{1, 0}, vectordb.SearchOptions{TopK: 3, MinScore: 0.9})
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestMemoryStore_ShouldOverwriteOnUpsert(t *testing.T) {
	store := vectordb.NewMemoryStore(2)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, []vectordb.Record{{ID: "a", Embedding: []float32{1, 0}, Text: "old"}}))
	require.NoError(t, store.Upsert(ctx, []vectordb.Record{{ID: "a", Embedding: []float32{1, 0}, Text: "new"}}))

	matches, err := store.Search(ctx, []float32{1, 0}, vectordb.SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "new", matches[0].Text)
}

func TestMemoryStore_ShouldRejectDimensionMismatch(t *testing.T) {
	store := vectordb.NewMemoryStore(2)
	err := store.Upsert(context.Background(), []vectordb.Record{{ID: "a", Embedding: []float32{1, 0, 0}}})
	require.Error(t, err)

	_, err = store.Search(context.Background(), []float32{1}, vectordb.SearchOptions{TopK: 1})
	require.Error(t, err)
}

func TestNew_ShouldRejectInvalidConfig(t *testing.T) {
	_, err := vectordb.New(context.Background(), nil)
	require.Error(t, err)

	_, err = vectordb.New(context.Background(), &vectordb.Config{Provider: "bogus", Dimension: 3})
	require.Error(t, err)

	_, err = vectordb.New(context.Background(), &vectordb.Config{Provider: vectordb.ProviderPGVector, Dimension: 3})
	require.Error(t, err)
}
