package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/store"
)

type scriptedLLM struct {
	responses []string
	err       error
	calls     int
}

func (m *scriptedLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	response := "{}"
	if m.calls < len(m.responses) {
		response = m.responses[m.calls]
	}
	m.calls++
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: response}}}, nil
}

func (m *scriptedLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

const acquisitionGraph = `{
  "nodes": [
    {"id": "SolarOptima", "type": "Organization"},
    {"id": "Aurora Dynamics", "type": "Organization"}
  ],
  "relationships": [
    {"source": "SolarOptima", "type": "acquired by", "target": "Aurora Dynamics"}
  ]
}`

func TestGraphIndexer(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesNodesEdgesAndProvenance", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		llm := &scriptedLLM{responses: []string{acquisitionGraph}}

		idx := NewGraphIndexer(llm, graph)
		err := idx.IndexDocuments(ctx, []rag.Document{{ID: "chunk-0", Content: "Aurora Dynamics acquired SolarOptima."}})
		assert.NoError(t, err)

		triples, err := graph.Neighbors(ctx, "SolarOptima", rag.MentionsRelation)
		assert.NoError(t, err)
		assert.Len(t, triples, 1)
		assert.Equal(t, "SolarOptima - ACQUIRED_BY -> Aurora Dynamics", triples[0].String())

		// The provenance edge exists but carries the excluded type.
		withMentions, err := graph.Neighbors(ctx, "SolarOptima", "")
		assert.NoError(t, err)
		assert.Len(t, withMentions, 2)

		nodes, edges, err := graph.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, nodes) // two entities and the chunk node
		assert.Equal(t, 3, edges) // one relation and two MENTIONS edges
	})

	t.Run("WithoutSourceNodes", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		llm := &scriptedLLM{responses: []string{acquisitionGraph}}

		idx := NewGraphIndexer(llm, graph, WithoutSourceNodes())
		assert.NoError(t, idx.IndexDocuments(ctx, []rag.Document{{ID: "chunk-0", Content: "..."}}))

		nodes, edges, err := graph.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, nodes)
		assert.Equal(t, 1, edges)
	})

	t.Run("UnlistedEntityInRelationshipGetsNode", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		llm := &scriptedLLM{responses: []string{`{
			"nodes": [{"id": "Priya Nair", "type": "Person"}],
			"relationships": [{"source": "Priya Nair", "type": "CFO_OF", "target": "Aurora Dynamics"}]
		}`}}

		idx := NewGraphIndexer(llm, graph, WithoutSourceNodes())
		assert.NoError(t, idx.IndexDocuments(ctx, []rag.Document{{ID: "c", Content: "..."}}))

		matches, err := graph.FullTextSearch(ctx, "Aurora~2 AND Dynamics~2", 3)
		assert.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("UnparseableChunkIsSkipped", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		llm := &scriptedLLM{responses: []string{"I could not find a graph here.", acquisitionGraph}}

		idx := NewGraphIndexer(llm, graph, WithoutSourceNodes())
		err := idx.IndexDocuments(ctx, []rag.Document{
			{ID: "bad", Content: "..."},
			{ID: "good", Content: "..."},
		})
		assert.NoError(t, err)

		nodes, _, err := graph.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, nodes)
	})

	t.Run("FencedJSONIsAccepted", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		llm := &scriptedLLM{responses: []string{"```json\n" + acquisitionGraph + "\n```"}}

		idx := NewGraphIndexer(llm, graph, WithoutSourceNodes())
		assert.NoError(t, idx.IndexDocuments(ctx, []rag.Document{{ID: "c", Content: "..."}}))

		nodes, _, err := graph.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, nodes)
	})

	t.Run("ModelErrorAborts", func(t *testing.T) {
		llmErr := errors.New("rate limited")
		idx := NewGraphIndexer(&scriptedLLM{err: llmErr}, store.NewMemoryGraph())

		err := idx.IndexDocuments(ctx, []rag.Document{{ID: "c", Content: "..."}})
		assert.ErrorIs(t, err, llmErr)
	})
}

func TestNormalizeRelType(t *testing.T) {
	assert.Equal(t, "ACQUIRED_BY", normalizeRelType("acquired by"))
	assert.Equal(t, "CFO_OF", normalizeRelType("CFO_OF"))
	assert.Equal(t, "HEAD_OF_RESEARCH", normalizeRelType(" head-of research "))
	assert.Equal(t, "", normalizeRelType("!!!"))
}

type recordingAdder struct {
	docs []rag.Document
	err  error
}

func (a *recordingAdder) Add(ctx context.Context, docs ...rag.Document) error {
	if a.err != nil {
		return a.err
	}
	a.docs = append(a.docs, docs...)
	return nil
}

func TestVectorIndexer(t *testing.T) {
	ctx := context.Background()

	adder := &recordingAdder{}
	idx := NewVectorIndexer(adder)
	chunks := []rag.Document{{ID: "a", Content: "x"}, {ID: "b", Content: "y"}}

	assert.NoError(t, idx.IndexDocuments(ctx, chunks))
	assert.Equal(t, chunks, adder.docs)

	addErr := errors.New("embedding failed")
	idx = NewVectorIndexer(&recordingAdder{err: addErr})
	assert.ErrorIs(t, idx.IndexDocuments(ctx, chunks), addErr)
}

type staticLoader struct {
	docs []rag.Document
	err  error
}

func (l *staticLoader) Load(ctx context.Context) ([]rag.Document, error) {
	return l.docs, l.err
}

type passthroughSplitter struct{}

func (passthroughSplitter) SplitText(text string) []string { return []string{text} }
func (passthroughSplitter) SplitDocuments(docs []rag.Document) []rag.Document {
	return docs
}

func TestIngestPipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("FeedsBothIndexers", func(t *testing.T) {
		graph := store.NewMemoryGraph()
		adder := &recordingAdder{}
		pipeline := NewIngestPipeline(
			&staticLoader{docs: []rag.Document{{ID: "c", Content: "Aurora Dynamics acquired SolarOptima."}}},
			passthroughSplitter{},
			NewGraphIndexer(&scriptedLLM{responses: []string{acquisitionGraph}}, graph),
			NewVectorIndexer(adder),
		)

		chunks, err := pipeline.Run(ctx)
		assert.NoError(t, err)
		assert.Len(t, chunks, 1)
		assert.Len(t, adder.docs, 1)

		nodes, _, err := graph.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, nodes)
	})

	t.Run("LoaderErrorPropagates", func(t *testing.T) {
		loadErr := errors.New("missing corpus")
		pipeline := NewIngestPipeline(&staticLoader{err: loadErr}, passthroughSplitter{}, nil, &VectorIndexer{index: &recordingAdder{}})

		_, err := pipeline.Run(ctx)
		assert.ErrorIs(t, err, loadErr)
	})
}
