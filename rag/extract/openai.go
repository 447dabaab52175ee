// Package extract implements entity extraction from questions via a language
// model in structured-output mode.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

const (
	// DefaultModel is the extraction model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	extractionSystemPrompt = `You are extracting organization, person entities, and job titles/roles from the text. Include specific names, company names, and roles like CEO, CFO, CTO, etc. Respond with a JSON object of the form {"names": ["..."]} and nothing else.`

	extractionUserPrompt = "Use the given format to extract information from the following input: %s"
)

// Entities is the structured extraction result.
type Entities struct {
	// Names holds all person, organization and role/title surface forms that
	// appear in the text, in order of appearance.
	Names []string `json:"names"`
}

// OpenAIExtractor extracts entities through the OpenAI chat completion API
// with a JSON response format.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

var _ rag.EntityExtractor = (*OpenAIExtractor)(nil)

// NewOpenAIExtractor creates an extractor over an existing client. An empty
// model selects DefaultModel.
func NewOpenAIExtractor(client *openai.Client, model string) *OpenAIExtractor {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIExtractor{client: client, model: model}
}

// Extract returns the entity names found in the question, in extraction
// order. A transport failure or a response that does not decode into the
// expected structure is an error; there is no silent fallback to an empty
// set.
func (e *OpenAIExtractor) Extract(ctx context.Context, question string) ([]string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractionUserPrompt, question)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("entity extraction call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("entity extraction: %w: no choices returned", rag.ErrMalformedExtraction)
	}

	var entities Entities
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &entities); err != nil {
		return nil, fmt.Errorf("entity extraction: %w: %v", rag.ErrMalformedExtraction, err)
	}
	return entities.Names, nil
}
