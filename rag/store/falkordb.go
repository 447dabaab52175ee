package store

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// entityLabel is the node label carrying the full-text index over entity
// ids. documentLabel marks chunk provenance nodes, which stay out of that
// index.
const (
	entityLabel   = "Entity"
	documentLabel = "Document"
)

// FalkorDBGraph implements rag.GraphStore over FalkorDB's RedisGraph
// protocol. The same connection serves the indexing write path used by
// rag/indexer.
type FalkorDBGraph struct {
	client    redis.UniversalClient
	graphName string
}

var _ rag.GraphStore = (*FalkorDBGraph)(nil)

// NewFalkorDBGraph connects to a FalkorDB instance. The connection string
// has the form falkordb://host:port/graph_name.
func NewFalkorDBGraph(connectionString string) (*FalkorDBGraph, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid connection string: missing host")
	}

	graphName := strings.TrimPrefix(u.Path, "/")
	if graphName == "" {
		graphName = "rag"
	}

	client := redis.NewClient(&redis.Options{Addr: u.Host})
	return &FalkorDBGraph{client: client, graphName: graphName}, nil
}

// FullTextSearch queries the entity full-text index with the fuzzy query and
// returns node ids with their index scores, best first.
func (f *FalkorDBGraph) FullTextSearch(ctx context.Context, query string, limit int) ([]rag.NodeMatch, error) {
	cypher := fmt.Sprintf(
		"CALL db.idx.fulltext.queryNodes('%s', '%s') YIELD node, score RETURN node.id, score ORDER BY score DESC LIMIT %d",
		entityLabel, escapeCypher(query), limit)

	rows, err := f.query(ctx, cypher)
	if err != nil {
		return nil, fmt.Errorf("fulltext query: %w", err)
	}

	matches := make([]rag.NodeMatch, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		score, _ := strconv.ParseFloat(fmt.Sprint(row[1]), 64)
		matches = append(matches, rag.NodeMatch{
			NodeID: fmt.Sprint(row[0]),
			Score:  score,
		})
	}
	return matches, nil
}

// Neighbors fetches a node's immediate relationships in both directions,
// excluding excludeRelType edges.
func (f *FalkorDBGraph) Neighbors(ctx context.Context, nodeID, excludeRelType string) ([]rag.RelationshipTriple, error) {
	id := escapeCypher(nodeID)
	exclude := escapeCypher(excludeRelType)

	outgoing := fmt.Sprintf(
		"MATCH (n {id: '%s'})-[r]->(m) WHERE type(r) <> '%s' RETURN n.id, type(r), m.id", id, exclude)
	incoming := fmt.Sprintf(
		"MATCH (n {id: '%s'})<-[r]-(m) WHERE type(r) <> '%s' RETURN m.id, type(r), n.id", id, exclude)

	var triples []rag.RelationshipTriple
	for _, q := range []struct {
		cypher    string
		direction rag.Direction
	}{
		{outgoing, rag.DirectionOutgoing},
		{incoming, rag.DirectionIncoming},
	} {
		rows, err := f.query(ctx, q.cypher)
		if err != nil {
			return nil, fmt.Errorf("neighbors query: %w", err)
		}
		for _, row := range rows {
			if len(row) < 3 {
				continue
			}
			triples = append(triples, rag.RelationshipTriple{
				Source:    fmt.Sprint(row[0]),
				Type:      fmt.Sprint(row[1]),
				Target:    fmt.Sprint(row[2]),
				Direction: q.direction,
			})
		}
	}
	return triples, nil
}

// AddNode merges a node by id. The first label becomes the node label, with
// the entity label always attached so the node is covered by the full-text
// index.
func (f *FalkorDBGraph) AddNode(ctx context.Context, id string, labels ...string) error {
	label := entityLabel
	if len(labels) > 0 && labels[0] != "" {
		label = sanitizeLabel(labels[0]) + ":" + entityLabel
	}

	cypher := fmt.Sprintf("MERGE (n:%s {id: '%s'})", label, escapeCypher(id))
	_, err := f.query(ctx, cypher)
	return err
}

// AddDocumentNode merges a chunk provenance node. It carries only the
// document label, keeping chunk ids out of the entity full-text index.
func (f *FalkorDBGraph) AddDocumentNode(ctx context.Context, id string) error {
	cypher := fmt.Sprintf("MERGE (n:%s {id: '%s'})", documentLabel, escapeCypher(id))
	_, err := f.query(ctx, cypher)
	return err
}

// AddEdge merges a typed edge between two existing nodes.
func (f *FalkorDBGraph) AddEdge(ctx context.Context, source, relType, target string) error {
	cypher := fmt.Sprintf("MATCH (a {id: '%s'}), (b {id: '%s'}) MERGE (a)-[:%s]->(b)",
		escapeCypher(source), escapeCypher(target), sanitizeLabel(relType))
	_, err := f.query(ctx, cypher)
	return err
}

// EnsureFullTextIndex creates the entity full-text index if it is missing.
func (f *FalkorDBGraph) EnsureFullTextIndex(ctx context.Context) error {
	cypher := fmt.Sprintf("CALL db.idx.fulltext.createNodeIndex('%s', 'id')", entityLabel)
	if _, err := f.query(ctx, cypher); err != nil {
		// FalkorDB reports an already existing index as an error.
		if strings.Contains(err.Error(), "already indexed") {
			return nil
		}
		return fmt.Errorf("create fulltext index: %w", err)
	}
	return nil
}

// Stats returns node and edge counts.
func (f *FalkorDBGraph) Stats(ctx context.Context) (nodes, edges int, err error) {
	rows, err := f.query(ctx, "MATCH (n) RETURN count(n)")
	if err != nil {
		return 0, 0, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		nodes, _ = strconv.Atoi(fmt.Sprint(rows[0][0]))
	}

	rows, err = f.query(ctx, "MATCH ()-[r]->() RETURN count(r)")
	if err != nil {
		return 0, 0, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		edges, _ = strconv.Atoi(fmt.Sprint(rows[0][0]))
	}
	return nodes, edges, nil
}

// Close closes the underlying connection.
func (f *FalkorDBGraph) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// query runs a Cypher statement and returns the result rows. All statements
// this store issues return scalar columns, which keeps the reply parsing to
// a plain row scan.
func (f *FalkorDBGraph) query(ctx context.Context, cypher string) ([][]any, error) {
	res, err := f.client.Do(ctx, "GRAPH.QUERY", f.graphName, cypher).Result()
	if err != nil {
		return nil, err
	}

	reply, ok := res.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected reply type: %T", res)
	}

	// Reply is [header, rows, stats] for reads and [stats] or [rows, stats]
	// for writes.
	var rawRows []any
	switch len(reply) {
	case 3:
		rawRows, _ = reply[1].([]any)
	case 2:
		rawRows, _ = reply[0].([]any)
	default:
		return nil, nil
	}

	rows := make([][]any, 0, len(rawRows))
	for _, raw := range rawRows {
		if row, ok := raw.([]any); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

var labelRegex = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeLabel(l string) string {
	clean := labelRegex.ReplaceAllString(l, "_")
	if clean == "" {
		return entityLabel
	}
	return clean
}

func escapeCypher(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
