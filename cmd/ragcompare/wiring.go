package main

import (
	"context"
	"fmt"

	openaiapi "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/engine"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/extract"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/indexer"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/loader"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/retriever"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/splitter"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/store"
)

// app holds the wired components shared by the subcommands.
type app struct {
	llm         *lcopenai.LLM
	graphStore  *store.FalkorDBGraph
	vectorIndex *store.MemoryVectorIndex
}

func newApp() (*app, error) {
	llm, err := lcopenai.New(
		lcopenai.WithToken(cfg.OpenAIAPIKey),
		lcopenai.WithModel(cfg.OpenAIModel),
		lcopenai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	graphStore, err := store.NewFalkorDBGraph(cfg.FalkorDBURL)
	if err != nil {
		return nil, fmt.Errorf("connect to graph store: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &app{
		llm:         llm,
		graphStore:  graphStore,
		vectorIndex: store.NewMemoryVectorIndex(rag.NewLangChainEmbedder(embedder)),
	}, nil
}

func (a *app) Close() {
	if a.graphStore != nil {
		a.graphStore.Close()
	}
}

func (a *app) corpusSplitter() *splitter.RecursiveCharacterTextSplitter {
	return splitter.NewRecursiveCharacterTextSplitter(
		splitter.WithChunkSize(cfg.ChunkSize),
		splitter.WithChunkOverlap(cfg.ChunkOverlap),
	)
}

// loadVectorIndex embeds the corpus into the in-process vector index. The
// graph lives in FalkorDB across runs; the embedding side is small enough to
// rebuild on startup.
func (a *app) loadVectorIndex(ctx context.Context) error {
	pipeline := indexer.NewIngestPipeline(
		loader.NewTextLoader(cfg.CorpusPath),
		a.corpusSplitter(),
		nil,
		indexer.NewVectorIndexer(a.vectorIndex),
	)
	if _, err := pipeline.Run(ctx); err != nil {
		return fmt.Errorf("build vector index: %w", err)
	}
	return nil
}

// buildGraphIndex extracts the knowledge graph from the corpus and writes it
// to FalkorDB.
func (a *app) buildGraphIndex(ctx context.Context) error {
	pipeline := indexer.NewIngestPipeline(
		loader.NewTextLoader(cfg.CorpusPath),
		a.corpusSplitter(),
		indexer.NewGraphIndexer(a.llm, a.graphStore),
		nil,
	)
	if _, err := pipeline.Run(ctx); err != nil {
		return fmt.Errorf("build graph index: %w", err)
	}
	return nil
}

func (a *app) graphEngine() *engine.RAGEngine {
	extractor := extract.NewOpenAIExtractor(openaiapi.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
	graphRetriever := retriever.NewGraphRetriever(extractor, a.graphStore, a.vectorIndex)
	return engine.NewGraphEngine(a.llm, graphRetriever)
}

func (a *app) vectorEngine() *engine.RAGEngine {
	return engine.NewVectorEngine(a.llm, retriever.NewVectorRetriever(a.vectorIndex, 4))
}
