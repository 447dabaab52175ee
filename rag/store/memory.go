// Package store provides graph and vector store backends for the retrieval
// pipeline: an in-memory pair for tests and demos, and a FalkorDB-backed
// graph for a real deployment.
package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// MemoryGraph is an in-memory knowledge graph implementing rag.GraphStore.
// Full-text search interprets the same fuzzy query syntax the FalkorDB
// backend forwards to its index: whitespace-free tokens suffixed with ~N for
// edit-distance-N tolerance, joined with AND.
type MemoryGraph struct {
	mu    sync.RWMutex
	nodes map[string][]string // node id -> labels
	edges []memoryEdge
}

type memoryEdge struct {
	source  string
	relType string
	target  string
}

// NewMemoryGraph creates an empty in-memory graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{nodes: make(map[string][]string)}
}

var _ rag.GraphStore = (*MemoryGraph)(nil)

// AddNode adds or replaces a node. The id doubles as the indexed entity name.
func (g *MemoryGraph) AddNode(ctx context.Context, id string, labels ...string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[id] = labels
	return nil
}

// AddDocumentNode adds a chunk provenance node. Document nodes are kept out
// of the full-text matcher so chunk ids never surface as entity matches.
func (g *MemoryGraph) AddDocumentNode(ctx context.Context, id string) error {
	return g.AddNode(ctx, id, documentLabel)
}

// AddEdge adds a directed, typed edge between two node ids.
func (g *MemoryGraph) AddEdge(ctx context.Context, source, relType, target string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, memoryEdge{source: source, relType: relType, target: target})
	return nil
}

// EnsureFullTextIndex is a no-op; the in-memory matcher needs no index.
func (g *MemoryGraph) EnsureFullTextIndex(ctx context.Context) error {
	return nil
}

// FullTextSearch matches the fuzzy query against node ids. Every query token
// must match some word of the id within its edit-distance tolerance; closer
// matches score higher.
func (g *MemoryGraph) FullTextSearch(ctx context.Context, query string, limit int) ([]rag.NodeMatch, error) {
	terms := parseFuzzyQuery(query)
	if len(terms) == 0 {
		return nil, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var matches []rag.NodeMatch
	for id, labels := range g.nodes {
		if isDocumentNode(labels) {
			continue
		}
		idWords := strings.Fields(strings.ToLower(id))
		totalDistance := 0
		matched := true
		for _, term := range terms {
			best := -1
			for _, word := range idWords {
				if d, ok := distanceWithin(term.token, word, term.tolerance); ok {
					if best < 0 || d < best {
						best = d
					}
				}
			}
			if best < 0 {
				matched = false
				break
			}
			totalDistance += best
		}
		if matched {
			matches = append(matches, rag.NodeMatch{
				NodeID: id,
				Score:  1.0 / float64(1+totalDistance),
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].NodeID < matches[j].NodeID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Neighbors returns the immediate relationships of a node in both
// directions, skipping excludeRelType edges.
func (g *MemoryGraph) Neighbors(ctx context.Context, nodeID, excludeRelType string) ([]rag.RelationshipTriple, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var triples []rag.RelationshipTriple
	for _, edge := range g.edges {
		if edge.relType == excludeRelType {
			continue
		}
		switch nodeID {
		case edge.source:
			triples = append(triples, rag.RelationshipTriple{
				Source:    edge.source,
				Type:      edge.relType,
				Target:    edge.target,
				Direction: rag.DirectionOutgoing,
			})
		case edge.target:
			triples = append(triples, rag.RelationshipTriple{
				Source:    edge.source,
				Type:      edge.relType,
				Target:    edge.target,
				Direction: rag.DirectionIncoming,
			})
		}
	}
	return triples, nil
}

// Stats returns node and edge counts.
func (g *MemoryGraph) Stats(ctx context.Context) (nodes, edges int, err error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes), len(g.edges), nil
}

func isDocumentNode(labels []string) bool {
	for _, label := range labels {
		if label == documentLabel {
			return true
		}
	}
	return false
}

type fuzzyTerm struct {
	token     string
	tolerance int
}

// parseFuzzyQuery splits "aurora~2 AND dynamics~2" into lowercase tokens with
// their edit-distance tolerances. Tokens without a ~N suffix require an exact
// match.
func parseFuzzyQuery(query string) []fuzzyTerm {
	var terms []fuzzyTerm
	for _, part := range strings.Split(query, " AND ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		term := fuzzyTerm{token: strings.ToLower(part)}
		if idx := strings.LastIndex(part, "~"); idx >= 0 {
			if tol, err := strconv.Atoi(part[idx+1:]); err == nil {
				term.token = strings.ToLower(part[:idx])
				term.tolerance = tol
			}
		}
		if term.token != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// distanceWithin reports the Levenshtein distance between a and b when it
// does not exceed max. The row values are bounded so the scan can bail out
// early on hopeless pairs.
func distanceWithin(a, b string, max int) (int, bool) {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > max {
		return 0, false
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > max {
			return 0, false
		}
		prev, curr = curr, prev
	}

	if prev[len(rb)] > max {
		return 0, false
	}
	return prev[len(rb)], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
