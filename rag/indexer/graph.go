// Package indexer builds the knowledge graph and the vector index from
// document chunks.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/manucet439/RAG-Vs-GraphRAG/log"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

const graphExtractionPrompt = `Extract a knowledge graph from the following text.
Identify the entities (people, organizations, products, locations, events) and the relationships between them.
Use short noun phrases as entity ids and UPPER_SNAKE_CASE verbs as relationship types (for example APPROVED, FOUNDED, ACQUIRED_BY, CEO_OF).
Return a JSON object with this structure and nothing else:
{
  "nodes": [
    {"id": "entity name", "type": "Person"}
  ],
  "relationships": [
    {"source": "entity name", "type": "RELATION_TYPE", "target": "entity name"}
  ]
}

Text: %s`

// GraphWriter is the write interface of the graph stores.
type GraphWriter interface {
	AddNode(ctx context.Context, id string, labels ...string) error
	AddDocumentNode(ctx context.Context, id string) error
	AddEdge(ctx context.Context, source, relType, target string) error
	EnsureFullTextIndex(ctx context.Context) error
}

type extractedGraph struct {
	Nodes []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"nodes"`
	Relationships []struct {
		Source string `json:"source"`
		Type   string `json:"type"`
		Target string `json:"target"`
	} `json:"relationships"`
}

// GraphIndexer turns document chunks into graph nodes and edges via LLM
// extraction. Each chunk also gets a provenance node linked to its entities
// with MENTIONS edges, so answers can be traced back to source text.
type GraphIndexer struct {
	llm           llms.Model
	graph         GraphWriter
	includeSource bool
}

// GraphIndexerOption configures the GraphIndexer.
type GraphIndexerOption func(*GraphIndexer)

// WithoutSourceNodes disables chunk provenance nodes and MENTIONS edges.
func WithoutSourceNodes() GraphIndexerOption {
	return func(i *GraphIndexer) {
		i.includeSource = false
	}
}

// NewGraphIndexer creates a graph indexer over the given model and store.
func NewGraphIndexer(llm llms.Model, graph GraphWriter, opts ...GraphIndexerOption) *GraphIndexer {
	i := &GraphIndexer{
		llm:           llm,
		graph:         graph,
		includeSource: true,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// IndexDocuments extracts a graph from each chunk and writes it to the
// store, then makes sure the entity full-text index exists. Chunks whose
// extraction comes back unparseable are skipped with a warning rather than
// aborting the whole ingest.
func (i *GraphIndexer) IndexDocuments(ctx context.Context, chunks []rag.Document) error {
	for _, chunk := range chunks {
		extracted, err := i.extractGraph(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("extract graph from chunk %s: %w", chunk.ID, err)
		}
		if extracted == nil {
			log.Warn("skipping chunk %s: unparseable graph extraction", chunk.ID)
			continue
		}

		if err := i.writeGraph(ctx, chunk, extracted); err != nil {
			return fmt.Errorf("write graph for chunk %s: %w", chunk.ID, err)
		}
	}

	if err := i.graph.EnsureFullTextIndex(ctx); err != nil {
		return fmt.Errorf("ensure fulltext index: %w", err)
	}
	return nil
}

// extractGraph calls the model for one chunk. A transport error is returned;
// a response that is not the requested JSON yields (nil, nil) so the caller
// can skip the chunk.
func (i *GraphIndexer) extractGraph(ctx context.Context, text string) (*extractedGraph, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, i.llm,
		fmt.Sprintf(graphExtractionPrompt, text),
		llms.WithTemperature(0))
	if err != nil {
		return nil, err
	}

	var extracted extractedGraph
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &extracted); err != nil {
		return nil, nil
	}
	return &extracted, nil
}

func (i *GraphIndexer) writeGraph(ctx context.Context, chunk rag.Document, extracted *extractedGraph) error {
	known := make(map[string]bool, len(extracted.Nodes))
	for _, node := range extracted.Nodes {
		id := strings.TrimSpace(node.ID)
		if id == "" {
			continue
		}
		if err := i.graph.AddNode(ctx, id, node.Type); err != nil {
			return err
		}
		known[id] = true
	}

	for _, rel := range extracted.Relationships {
		source := strings.TrimSpace(rel.Source)
		target := strings.TrimSpace(rel.Target)
		relType := normalizeRelType(rel.Type)
		if source == "" || target == "" || relType == "" {
			continue
		}
		// The model sometimes relates entities it forgot to list.
		for _, id := range []string{source, target} {
			if !known[id] {
				if err := i.graph.AddNode(ctx, id, ""); err != nil {
					return err
				}
				known[id] = true
			}
		}
		if err := i.graph.AddEdge(ctx, source, relType, target); err != nil {
			return err
		}
	}

	if !i.includeSource || len(known) == 0 {
		return nil
	}

	chunkID := chunk.ID
	if chunkID == "" {
		chunkID = uuid.NewString()
	}
	if err := i.graph.AddDocumentNode(ctx, chunkID); err != nil {
		return err
	}
	for id := range known {
		if err := i.graph.AddEdge(ctx, chunkID, rag.MentionsRelation, id); err != nil {
			return err
		}
	}
	return nil
}

var relTypeCleanup = regexp.MustCompile(`[^A-Z0-9_]`)

// normalizeRelType uppercases a relationship type and squeezes it into
// UPPER_SNAKE_CASE.
func normalizeRelType(relType string) string {
	upper := strings.ToUpper(strings.TrimSpace(relType))
	upper = strings.ReplaceAll(upper, " ", "_")
	upper = strings.ReplaceAll(upper, "-", "_")
	return relTypeCleanup.ReplaceAllString(upper, "")
}

// stripCodeFence removes a markdown code fence if the model wrapped its JSON
// in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
