package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

func TestVectorRetriever(t *testing.T) {
	ctx := context.Background()

	t.Run("NumberedBlocks", func(t *testing.T) {
		vector := &mockVector{docs: map[string][]rag.Document{
			"q": {
				{Content: "first chunk"},
				{Content: "second chunk"},
			},
		}}
		r := NewVectorRetriever(vector, 4)

		out, err := r.Retrieve(ctx, "q")
		assert.NoError(t, err)
		assert.Equal(t, "Document 1:\nfirst chunk\n\nDocument 2:\nsecond chunk", out)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		r := NewVectorRetriever(&mockVector{}, 4)

		out, err := r.Retrieve(ctx, "q")
		assert.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("SearchErrorPropagates", func(t *testing.T) {
		searchErr := errors.New("index down")
		r := NewVectorRetriever(&mockVector{err: searchErr}, 4)

		_, err := r.Retrieve(ctx, "q")
		assert.ErrorIs(t, err, searchErr)
	})

	t.Run("RetrieveFormattedIncludesScores", func(t *testing.T) {
		vector := &mockVector{docs: map[string][]rag.Document{
			"q": {{Content: "chunk", Score: 0.8123}},
		}}
		r := NewVectorRetriever(vector, 4)

		out, err := r.RetrieveFormatted(ctx, "q", 1)
		assert.NoError(t, err)
		assert.Contains(t, out, "Document 1 (Similarity Score: 0.8123):")
		assert.Contains(t, out, "chunk")
	})

	t.Run("DefaultTopK", func(t *testing.T) {
		r := NewVectorRetriever(&mockVector{}, 0)
		assert.Equal(t, defaultBaseK, r.topK)
	})
}
