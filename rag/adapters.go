package rag

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/vectorstores"
)

// LangChainVectorIndex adapts a langchaingo vectorstores.VectorStore to the
// VectorIndex interface.
type LangChainVectorIndex struct {
	store vectorstores.VectorStore
}

// NewLangChainVectorIndex creates a new adapter for langchaingo vector stores.
func NewLangChainVectorIndex(store vectorstores.VectorStore) *LangChainVectorIndex {
	return &LangChainVectorIndex{store: store}
}

var _ VectorIndex = (*LangChainVectorIndex)(nil)

// SimilaritySearch runs similarity search through the underlying store.
func (l *LangChainVectorIndex) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	schemaDocs, err := l.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("langchain similarity search: %w", err)
	}

	docs := make([]Document, len(schemaDocs))
	for i, schemaDoc := range schemaDocs {
		docs[i] = Document{
			Content:  schemaDoc.PageContent,
			Score:    float64(schemaDoc.Score),
			Metadata: schemaDoc.Metadata,
		}
		if source, ok := schemaDoc.Metadata["source"]; ok {
			docs[i].ID = fmt.Sprintf("%v", source)
		}
	}
	return docs, nil
}

// LangChainEmbedder adapts a langchaingo embeddings.Embedder to the Embedder
// interface.
type LangChainEmbedder struct {
	embedder embeddings.Embedder
}

// NewLangChainEmbedder creates a new adapter for langchaingo embedders.
func NewLangChainEmbedder(embedder embeddings.Embedder) *LangChainEmbedder {
	return &LangChainEmbedder{embedder: embedder}
}

var _ Embedder = (*LangChainEmbedder)(nil)

// EmbedDocument embeds a single text.
func (l *LangChainEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return l.embedder.EmbedQuery(ctx, text)
}

// EmbedDocuments embeds a batch of texts.
func (l *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return l.embedder.EmbedDocuments(ctx, texts)
}
