// Package rag holds the shared types and collaborator interfaces of the
// RAG-vs-GraphRAG comparison library.
//
// The library compares two retrieval strategies over the same corpus:
//
//   - Unstructured retrieval: embedding-similarity search over document
//     chunks (rag/retriever.VectorRetriever).
//   - Structured retrieval: entity extraction, fuzzy full-text resolution
//     into a knowledge graph and relationship traversal
//     (rag/retriever.GraphRetriever).
//
// The core is a library invoked in-process by an answering chain
// (rag/engine). External services - the language model, the graph store and
// the vector index - are supplied as interfaces at construction time:
//
//	extractor := extract.NewOpenAIExtractor(client, "gpt-4o-mini")
//	graph, _ := store.NewFalkorDBGraph("falkordb://localhost:6379/corp")
//	index := store.NewMemoryVectorIndex(embedder)
//
//	gr := retriever.NewGraphRetriever(extractor, graph, index)
//	context, err := gr.Retrieve(ctx, "Who approved the acquisition of SolarOptima?")
//
// All calls are synchronous and request scoped. The library issues read-only
// queries, holds no locks and implements no retries: a failed external call
// propagates to the caller, which owns timeout and retry policy.
package rag
