package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/manucet439/RAG-Vs-GraphRAG/log"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

const (
	// defaultMatchLimit bounds full-text matches considered per entity.
	defaultMatchLimit = 3
	// defaultTripleCap bounds the triples accumulated per entity query so a
	// densely connected node cannot flood the context.
	defaultTripleCap = 100

	defaultBaseK    = 4
	defaultBoostK   = 2
	defaultFinalCap = 6
	defaultScanK    = 3
)

// GraphRetriever combines structured evidence from a knowledge graph with
// role-boosted similarity retrieval over document chunks.
type GraphRetriever struct {
	extractor rag.EntityExtractor
	graph     rag.GraphStore
	vector    rag.VectorIndex

	// The two keyword lists differ on purpose: the scanner list carries the
	// spelled-out titles that show up inside document sentences, the boost
	// list carries the short forms and verbs that show up in questions.
	roleIndicators []string
	boostKeywords  []string
	nameStoplist   map[string]bool

	matchLimit int
	tripleCap  int
	baseK      int
	boostK     int
	finalCap   int
	scanK      int
}

// GraphRetrieverOption configures a GraphRetriever.
type GraphRetrieverOption func(*GraphRetriever)

// WithRoleIndicators overrides the role tokens the role-context scanner
// looks for.
func WithRoleIndicators(indicators []string) GraphRetrieverOption {
	return func(r *GraphRetriever) {
		r.roleIndicators = indicators
	}
}

// WithBoostKeywords overrides the keywords that trigger the second,
// role-focused similarity search.
func WithBoostKeywords(keywords []string) GraphRetrieverOption {
	return func(r *GraphRetriever) {
		r.boostKeywords = keywords
	}
}

// WithNameStoplist overrides the capitalized function words ignored when
// counting name-like tokens in a sentence.
func WithNameStoplist(words []string) GraphRetrieverOption {
	return func(r *GraphRetriever) {
		r.nameStoplist = make(map[string]bool, len(words))
		for _, w := range words {
			r.nameStoplist[w] = true
		}
	}
}

// WithRetrievalCounts overrides the similarity-search sizes: baseK for the
// primary search, boostK for the role-focused search and finalCap for the
// merged, deduplicated result.
func WithRetrievalCounts(baseK, boostK, finalCap int) GraphRetrieverOption {
	return func(r *GraphRetriever) {
		if baseK > 0 {
			r.baseK = baseK
		}
		if boostK > 0 {
			r.boostK = boostK
		}
		if finalCap > 0 {
			r.finalCap = finalCap
		}
	}
}

// NewGraphRetriever creates a graph retriever over the given collaborators.
func NewGraphRetriever(extractor rag.EntityExtractor, graph rag.GraphStore, vector rag.VectorIndex, opts ...GraphRetrieverOption) *GraphRetriever {
	r := &GraphRetriever{
		extractor:  extractor,
		graph:      graph,
		vector:     vector,
		matchLimit: defaultMatchLimit,
		tripleCap:  defaultTripleCap,
		baseK:      defaultBaseK,
		boostK:     defaultBoostK,
		finalCap:   defaultFinalCap,
		scanK:      defaultScanK,
	}

	WithRoleIndicators(DefaultRoleIndicators)(r)
	WithBoostKeywords(DefaultBoostKeywords)(r)
	WithNameStoplist(DefaultNameStoplist)(r)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve runs both evidence paths for a question and composes the final
// context block handed to the answering model.
func (r *GraphRetriever) Retrieve(ctx context.Context, question string) (string, error) {
	log.Info("graph search query: %s", question)

	structured, err := r.StructuredRetrieve(ctx, question)
	if err != nil {
		return "", err
	}

	unstructured, err := r.UnstructuredRetrieve(ctx, question)
	if err != nil {
		return "", err
	}

	log.Debug("structured lines: %d, document chunks: %d",
		strings.Count(structured, "\n"), len(unstructured))

	return ComposeContext(structured, unstructured), nil
}

// StructuredRetrieve extracts entities from the question, resolves each one
// into the knowledge graph and accumulates its relationship triples, then
// appends the role-context scan. Zero extracted entities is a valid outcome
// and yields only the scanner's output; an extraction or store failure
// propagates.
func (r *GraphRetriever) StructuredRetrieve(ctx context.Context, question string) (string, error) {
	entities, err := r.extractor.Extract(ctx, question)
	if err != nil {
		return "", fmt.Errorf("entity extraction: %w", err)
	}

	var b strings.Builder
	for _, entity := range entities {
		log.Debug("resolving entity: %s", entity)

		triples, err := r.resolveEntity(ctx, entity)
		if err != nil {
			return "", err
		}
		for _, triple := range triples {
			b.WriteString(triple.String())
			b.WriteString("\n")
		}
	}

	roleContext, err := r.RoleContextScan(ctx, question)
	if err != nil {
		return "", err
	}
	if roleContext != "" {
		b.WriteString("\nRole-to-person context from documents:\n")
		b.WriteString(roleContext)
	}

	return b.String(), nil
}

// resolveEntity finds the best-matching graph nodes for one entity name and
// returns their immediate relationships, provenance edges excluded.
func (r *GraphRetriever) resolveEntity(ctx context.Context, entity string) ([]rag.RelationshipTriple, error) {
	query := FullTextQuery(entity)
	if query == "" {
		// Nothing searchable survived stripping; distinct from a failed search.
		return nil, nil
	}

	matches, err := r.graph.FullTextSearch(ctx, query, r.matchLimit)
	if err != nil {
		return nil, fmt.Errorf("full-text search for %q: %w", entity, err)
	}

	var triples []rag.RelationshipTriple
	for _, match := range matches {
		neighbors, err := r.graph.Neighbors(ctx, match.NodeID, rag.MentionsRelation)
		if err != nil {
			return nil, fmt.Errorf("neighbors of %q: %w", match.NodeID, err)
		}
		triples = append(triples, neighbors...)
		if len(triples) >= r.tripleCap {
			triples = triples[:r.tripleCap]
			break
		}
	}
	return triples, nil
}

// documentSeparator joins unstructured chunks in the composed context.
const documentSeparator = "#Document "

// roleResolutionInstructions is the fixed guidance block appended to every
// composed context, directing the answering model to resolve roles against
// person names found anywhere in the combined evidence.
const roleResolutionInstructions = `Instructions for role resolution:
- When you see a role mentioned (like CFO, CTO, etc.), look through ALL the context to find who holds that role
- Connect actions performed by roles to the specific people who hold those roles
- If someone "approved" something and they're described by a role, identify the person's name`

// ComposeContext merges the structured and unstructured evidence streams into
// the single context block handed to the answering stage.
func ComposeContext(structured string, unstructured []string) string {
	var b strings.Builder
	b.WriteString("Structured data (Graph relationships):\n")
	b.WriteString(structured)
	b.WriteString("\n\nUnstructured data (Document chunks):\n")
	b.WriteString(strings.Join(unstructured, documentSeparator))
	b.WriteString("\n\n")
	b.WriteString(roleResolutionInstructions)
	b.WriteString("\n")
	return b.String()
}
