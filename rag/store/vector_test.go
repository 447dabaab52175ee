package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

func TestMemoryVectorIndex(t *testing.T) {
	ctx := context.Background()

	newIndex := func(t *testing.T, contents ...string) *MemoryVectorIndex {
		t.Helper()
		index := NewMemoryVectorIndex(NewMockEmbedder(64))
		docs := make([]rag.Document, len(contents))
		for i, content := range contents {
			docs[i] = rag.Document{ID: content, Content: content}
		}
		assert.NoError(t, index.Add(ctx, docs...))
		return index
	}

	t.Run("ExactMatchRanksFirst", func(t *testing.T) {
		index := newIndex(t,
			"Aurora Dynamics acquired SolarOptima in 2021.",
			"The weather in Boston was mild.",
			"Quarterly revenue grew by twelve percent.",
		)

		docs, err := index.SimilaritySearch(ctx, "Aurora Dynamics acquired SolarOptima in 2021.", 2)
		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "Aurora Dynamics acquired SolarOptima in 2021.", docs[0].Content)
		assert.InDelta(t, 1.0, docs[0].Score, 1e-6)
		assert.GreaterOrEqual(t, docs[0].Score, docs[1].Score)
	})

	t.Run("KCapsResults", func(t *testing.T) {
		index := newIndex(t, "a", "b", "c", "d", "e")
		docs, err := index.SimilaritySearch(ctx, "a", 3)
		assert.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		index := NewMemoryVectorIndex(NewMockEmbedder(64))
		docs, err := index.SimilaritySearch(ctx, "anything", 4)
		assert.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("AddNothingIsFine", func(t *testing.T) {
		index := NewMemoryVectorIndex(NewMockEmbedder(64))
		assert.NoError(t, index.Add(ctx))
		assert.Equal(t, 0, index.Len())
	})

	t.Run("Len", func(t *testing.T) {
		index := newIndex(t, "a", "b")
		assert.Equal(t, 2, index.Len())
	})
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
