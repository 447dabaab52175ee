package rag

import (
	"context"
	"fmt"
)

// Document is the library's read-only view of one retrieved text chunk.
// Content equality is the deduplication key across retrieval passes; the
// underlying store owns the chunk, we never mutate it.
type Document struct {
	ID       string
	Content  string
	Score    float64
	Metadata map[string]any
}

// NodeMatch is a single full-text hit over entity nodes in the graph store.
type NodeMatch struct {
	NodeID string
	Score  float64
}

// Direction records which way a relationship was stored relative to the
// matched node.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// RelationshipTriple is one graph relationship, derived per query and never
// persisted by this library.
type RelationshipTriple struct {
	Source    string
	Type      string
	Target    string
	Direction Direction
}

// String formats the triple the way it is handed to the answering model.
func (t RelationshipTriple) String() string {
	return fmt.Sprintf("%s - %s -> %s", t.Source, t.Type, t.Target)
}

// MentionsRelation links document chunks to the entities they mention. It is
// provenance bookkeeping, not evidence, so entity traversal excludes it.
const MentionsRelation = "MENTIONS"

// EntityExtractor extracts person, organization and role/title names from a
// question. Implementations call a language model in structured-output mode
// and must return an error on any malformed response; an empty result that
// hides a failure would silently degrade retrieval quality.
type EntityExtractor interface {
	Extract(ctx context.Context, question string) ([]string, error)
}

// GraphStore is the read interface over the knowledge graph.
type GraphStore interface {
	// FullTextSearch runs a fuzzy full-text query (token~2 AND token~2 ...)
	// over entity nodes and returns up to limit matches, best first.
	FullTextSearch(ctx context.Context, query string, limit int) ([]NodeMatch, error)

	// Neighbors returns the immediate relationships of a node in both
	// directions, skipping relationships of type excludeRelType.
	Neighbors(ctx context.Context, nodeID, excludeRelType string) ([]RelationshipTriple, error)
}

// VectorIndex is the embedding-similarity search interface.
type VectorIndex interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// DocumentLoader reads source material into documents ready for splitting
// and indexing.
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}

// TextSplitter breaks documents into chunks sized for embedding and entity
// extraction.
type TextSplitter interface {
	SplitText(text string) []string
	SplitDocuments(docs []Document) []Document
}
