// Package engine wires a retriever and a language model into an answering
// chain, and runs the two retrieval strategies side by side.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/manucet439/RAG-Vs-GraphRAG/log"
)

const condensePrompt = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question, in its original language.

Chat History:
%s
Follow Up Input: %s
Standalone question:`

const answerPrompt = `Answer the question based only on the following context:
%s

Question: %s
Use natural language and be concise.
Answer:`

// Retriever produces the grounding context for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

// Exchange is one human/assistant turn of prior conversation.
type Exchange struct {
	Human string
	AI    string
}

// Engine answers questions grounded in retrieved context.
type Engine interface {
	Answer(ctx context.Context, question string) (string, error)
	AnswerWithHistory(ctx context.Context, question string, history []Exchange) (string, error)
}

// RAGEngine implements Engine over any Retriever.
type RAGEngine struct {
	name      string
	llm       llms.Model
	retriever Retriever
}

var _ Engine = (*RAGEngine)(nil)

// NewGraphEngine creates the answering chain for the graph retrieval path.
func NewGraphEngine(llm llms.Model, retriever Retriever) *RAGEngine {
	return &RAGEngine{name: "graph", llm: llm, retriever: retriever}
}

// NewVectorEngine creates the answering chain for the vector baseline.
func NewVectorEngine(llm llms.Model, retriever Retriever) *RAGEngine {
	return &RAGEngine{name: "vector", llm: llm, retriever: retriever}
}

// Name identifies the retrieval strategy behind this engine.
func (e *RAGEngine) Name() string {
	return e.name
}

// Answer retrieves context for the question and generates an answer from it.
func (e *RAGEngine) Answer(ctx context.Context, question string) (string, error) {
	return e.AnswerWithHistory(ctx, question, nil)
}

// AnswerWithHistory first condenses a follow-up question against the chat
// history into a standalone question, then answers it.
func (e *RAGEngine) AnswerWithHistory(ctx context.Context, question string, history []Exchange) (string, error) {
	if len(history) > 0 {
		condensed, err := e.condenseQuestion(ctx, question, history)
		if err != nil {
			return "", fmt.Errorf("condense question: %w", err)
		}
		question = condensed
	}

	retrievalContext, err := e.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%s retrieval: %w", e.name, err)
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, e.llm,
		fmt.Sprintf(answerPrompt, retrievalContext, question),
		llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("%s answer generation: %w", e.name, err)
	}
	return strings.TrimSpace(answer), nil
}

func (e *RAGEngine) condenseQuestion(ctx context.Context, question string, history []Exchange) (string, error) {
	var buffer strings.Builder
	for _, exchange := range history {
		buffer.WriteString("Human: ")
		buffer.WriteString(exchange.Human)
		buffer.WriteString("\nAssistant: ")
		buffer.WriteString(exchange.AI)
		buffer.WriteString("\n")
	}

	condensed, err := llms.GenerateFromSinglePrompt(ctx, e.llm,
		fmt.Sprintf(condensePrompt, buffer.String(), question),
		llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(condensed), nil
}

// Comparison holds the side-by-side result for one question.
type Comparison struct {
	Question      string
	GraphAnswer   string
	VectorAnswer  string
	GraphLatency  time.Duration
	VectorLatency time.Duration
}

// Compare answers the question through both engines and reports answers and
// latencies. The vector baseline runs first, mirroring the comparison order
// of the demo output.
func Compare(ctx context.Context, graphEngine, vectorEngine Engine, question string) (*Comparison, error) {
	comparison := &Comparison{Question: question}

	start := time.Now()
	vectorAnswer, err := vectorEngine.Answer(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("vector engine: %w", err)
	}
	comparison.VectorAnswer = vectorAnswer
	comparison.VectorLatency = time.Since(start)
	log.Debug("vector answer in %s", comparison.VectorLatency)

	start = time.Now()
	graphAnswer, err := graphEngine.Answer(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("graph engine: %w", err)
	}
	comparison.GraphAnswer = graphAnswer
	comparison.GraphLatency = time.Since(start)
	log.Debug("graph answer in %s", comparison.GraphLatency)

	return comparison, nil
}
