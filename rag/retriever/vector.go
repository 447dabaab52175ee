package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/manucet439/RAG-Vs-GraphRAG/log"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// VectorRetriever is the plain vector-similarity baseline: a single
// similarity search with no graph evidence and no role boosting.
type VectorRetriever struct {
	index rag.VectorIndex
	topK  int
}

// NewVectorRetriever creates a baseline retriever over a vector index.
func NewVectorRetriever(index rag.VectorIndex, topK int) *VectorRetriever {
	if topK <= 0 {
		topK = defaultBaseK
	}
	return &VectorRetriever{index: index, topK: topK}
}

// Retrieve returns the top-k chunks formatted as numbered document blocks.
func (r *VectorRetriever) Retrieve(ctx context.Context, question string) (string, error) {
	log.Info("vector search query: %s", question)

	docs, err := r.index.SimilaritySearch(ctx, question, r.topK)
	if err != nil {
		return "", fmt.Errorf("similarity search: %w", err)
	}

	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("Document %d:\n%s", i+1, doc.Content)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// RetrieveWithScores returns the top-k chunks with their similarity scores.
func (r *VectorRetriever) RetrieveWithScores(ctx context.Context, question string, k int) ([]rag.Document, error) {
	if k <= 0 {
		k = r.topK
	}
	docs, err := r.index.SimilaritySearch(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return docs, nil
}

// RetrieveFormatted formats the top-k chunks with scores, for side-by-side
// comparison output.
func (r *VectorRetriever) RetrieveFormatted(ctx context.Context, question string, k int) (string, error) {
	docs, err := r.RetrieveWithScores(ctx, question, k)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "Document %d (Similarity Score: %.4f):\n%s\n\n", i+1, doc.Score, doc.Content)
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
