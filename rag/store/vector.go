package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// MemoryVectorIndex is an in-memory rag.VectorIndex with cosine ranking.
// Documents are embedded through the injected embedder when added.
type MemoryVectorIndex struct {
	mu         sync.RWMutex
	documents  []rag.Document
	embeddings [][]float32
	embedder   rag.Embedder
}

// NewMemoryVectorIndex creates an empty index over the given embedder.
func NewMemoryVectorIndex(embedder rag.Embedder) *MemoryVectorIndex {
	return &MemoryVectorIndex{embedder: embedder}
}

var _ rag.VectorIndex = (*MemoryVectorIndex)(nil)

// Add embeds and stores documents.
func (s *MemoryVectorIndex) Add(ctx context.Context, docs ...rag.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if s.embedder == nil {
		return fmt.Errorf("no embedder configured")
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, docs...)
	s.embeddings = append(s.embeddings, embeddings...)
	return nil
}

// SimilaritySearch returns the k most similar documents with cosine scores.
func (s *MemoryVectorIndex) SimilaritySearch(ctx context.Context, query string, k int) ([]rag.Document, error) {
	queryEmbedding, err := s.embedder.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		doc   rag.Document
		score float64
	}
	results := make([]scored, len(s.documents))
	for i, doc := range s.documents {
		results[i] = scored{doc: doc, score: cosineSimilarity(queryEmbedding, s.embeddings[i])}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}

	docs := make([]rag.Document, len(results))
	for i, result := range results {
		docs[i] = result.doc
		docs[i].Score = result.score
	}
	return docs, nil
}

// Len returns the number of stored documents.
func (s *MemoryVectorIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
