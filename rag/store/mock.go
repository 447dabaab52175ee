package store

import (
	"context"
	"math"
)

// MockEmbedder is a deterministic embedder for tests and demos: identical
// texts get identical vectors, similar lengths land nearby.
type MockEmbedder struct {
	Dimension int
}

// NewMockEmbedder creates a mock embedder with the given dimension.
func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{Dimension: dimension}
}

// EmbedDocument generates a deterministic embedding for one text.
func (e *MockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.generateEmbedding(text), nil
}

// EmbedDocuments generates deterministic embeddings for a batch of texts.
func (e *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.generateEmbedding(text)
	}
	return embeddings, nil
}

func (e *MockEmbedder) generateEmbedding(text string) []float32 {
	embedding := make([]float32, e.Dimension)
	for i := 0; i < e.Dimension; i++ {
		var sum float64
		for j, char := range text {
			sum += float64(char) * float64(i+j+1)
		}
		embedding[i] = float32(math.Sin(sum / 1000.0))
	}

	var norm float32
	for _, v := range embedding {
		norm += v * v
	}
	norm = float32(math.Sqrt(float64(norm)))
	if norm > 0 {
		for i := range embedding {
			embedding[i] /= norm
		}
	}
	return embedding
}
