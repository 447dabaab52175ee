package indexer

import (
	"context"
	"fmt"

	"github.com/manucet439/RAG-Vs-GraphRAG/log"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// DocumentAdder is the write interface of the vector index.
type DocumentAdder interface {
	Add(ctx context.Context, docs ...rag.Document) error
}

// VectorIndexer embeds document chunks into a vector index.
type VectorIndexer struct {
	index DocumentAdder
}

// NewVectorIndexer creates a vector indexer over the given index.
func NewVectorIndexer(index DocumentAdder) *VectorIndexer {
	return &VectorIndexer{index: index}
}

// IndexDocuments stores the chunks in the vector index.
func (i *VectorIndexer) IndexDocuments(ctx context.Context, chunks []rag.Document) error {
	if err := i.index.Add(ctx, chunks...); err != nil {
		return fmt.Errorf("add chunks to vector index: %w", err)
	}
	return nil
}

// IngestPipeline loads a corpus, splits it into chunks, and feeds the same
// chunks to both the graph and the vector indexer, so the two retrieval
// strategies see identical source material.
type IngestPipeline struct {
	loader   rag.DocumentLoader
	splitter rag.TextSplitter
	graph    *GraphIndexer
	vector   *VectorIndexer
}

// NewIngestPipeline wires the ingest stages together. Either indexer may be
// nil to build only one side.
func NewIngestPipeline(loader rag.DocumentLoader, splitter rag.TextSplitter, graph *GraphIndexer, vector *VectorIndexer) *IngestPipeline {
	return &IngestPipeline{loader: loader, splitter: splitter, graph: graph, vector: vector}
}

// Run executes load, split, and index, and returns the chunks it indexed.
func (p *IngestPipeline) Run(ctx context.Context) ([]rag.Document, error) {
	docs, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	chunks := p.splitter.SplitDocuments(docs)
	log.Info("split %d documents into %d chunks", len(docs), len(chunks))

	if p.graph != nil {
		if err := p.graph.IndexDocuments(ctx, chunks); err != nil {
			return nil, fmt.Errorf("graph indexing: %w", err)
		}
	}
	if p.vector != nil {
		if err := p.vector.IndexDocuments(ctx, chunks); err != nil {
			return nil, fmt.Errorf("vector indexing: %w", err)
		}
	}
	return chunks, nil
}
