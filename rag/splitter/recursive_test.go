package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

func TestSplitText(t *testing.T) {
	t.Run("ShortTextIsOneChunk", func(t *testing.T) {
		s := NewRecursiveCharacterTextSplitter()
		chunks := s.SplitText("a short paragraph")
		assert.Equal(t, []string{"a short paragraph"}, chunks)
	})

	t.Run("EmptyText", func(t *testing.T) {
		s := NewRecursiveCharacterTextSplitter()
		assert.Empty(t, s.SplitText("   "))
	})

	t.Run("SplitsOnSectionRule", func(t *testing.T) {
		section := strings.Repeat("alpha ", 20)
		text := section + "\n________________________________________\n" + strings.Repeat("beta ", 20)

		s := NewRecursiveCharacterTextSplitter(WithChunkSize(120), WithChunkOverlap(0))
		chunks := s.SplitText(text)
		assert.Len(t, chunks, 2)
		assert.NotContains(t, chunks[0], "beta")
		assert.NotContains(t, chunks[1], "alpha")
	})

	t.Run("ChunksRespectSize", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 40; i++ {
			b.WriteString("Sentence number with several words in it. ")
		}

		s := NewRecursiveCharacterTextSplitter(WithChunkSize(200), WithChunkOverlap(0))
		chunks := s.SplitText(b.String())
		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 200)
		}
	})

	t.Run("OverlapCarriesTailForward", func(t *testing.T) {
		text := strings.Repeat("one two three four five six seven eight nine ten ", 10)

		s := NewRecursiveCharacterTextSplitter(WithChunkSize(120), WithChunkOverlap(30))
		chunks := s.SplitText(text)
		assert.Greater(t, len(chunks), 1)

		tail := chunks[0][len(chunks[0])-10:]
		assert.Contains(t, chunks[1], strings.TrimSpace(tail))
	})

	t.Run("UnbreakableTextFallsBackToWindows", func(t *testing.T) {
		text := strings.Repeat("x", 500)
		s := NewRecursiveCharacterTextSplitter(WithChunkSize(100), WithChunkOverlap(0))
		chunks := s.SplitText(text)
		assert.Len(t, chunks, 5)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 100)
		}
	})
}

func TestSplitDocuments(t *testing.T) {
	s := NewRecursiveCharacterTextSplitter(WithChunkSize(80), WithChunkOverlap(0))

	docs := []rag.Document{{
		ID:       "corpus",
		Content:  strings.Repeat("Aurora Dynamics works with HelioSoft. ", 10),
		Metadata: map[string]any{"source": "synthetic_data.txt"},
	}}

	chunks := s.SplitDocuments(docs)
	assert.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.Equal(t, "corpus", chunk.Metadata["parent_id"])
		assert.Equal(t, "synthetic_data.txt", chunk.Metadata["source"])
		assert.Equal(t, i, chunk.Metadata["chunk_index"])
		assert.Equal(t, len(chunks), chunk.Metadata["chunk_total"])
		assert.Contains(t, chunk.ID, "corpus_chunk_")
	}

	// Parent metadata must not be shared between chunks.
	chunks[0].Metadata["source"] = "changed"
	assert.Equal(t, "synthetic_data.txt", chunks[1].Metadata["source"])
	assert.Equal(t, "synthetic_data.txt", docs[0].Metadata["source"])
}
