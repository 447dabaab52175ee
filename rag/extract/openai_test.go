package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// fakeCompletionServer returns an httptest server answering every chat
// completion request with the given message content.
func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Messages)

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestExtractor(t *testing.T, server *httptest.Server) *OpenAIExtractor {
	t.Helper()
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewOpenAIExtractor(openai.NewClientWithConfig(cfg), "")
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("NamesInOrder", func(t *testing.T) {
		server := fakeCompletionServer(t, `{"names": ["CFO", "SolarOptima", "Priya Nair"]}`)
		defer server.Close()

		names, err := newTestExtractor(t, server).Extract(ctx, "Did the CFO of SolarOptima, Priya Nair, approve it?")
		assert.NoError(t, err)
		assert.Equal(t, []string{"CFO", "SolarOptima", "Priya Nair"}, names)
	})

	t.Run("EmptyNames", func(t *testing.T) {
		server := fakeCompletionServer(t, `{"names": []}`)
		defer server.Close()

		names, err := newTestExtractor(t, server).Extract(ctx, "What is the weather?")
		assert.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("MalformedJSONFailsLoudly", func(t *testing.T) {
		server := fakeCompletionServer(t, `the entities are: CFO and SolarOptima`)
		defer server.Close()

		_, err := newTestExtractor(t, server).Extract(ctx, "anything")
		assert.ErrorIs(t, err, rag.ErrMalformedExtraction)
	})

	t.Run("NoChoicesFailsLoudly", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		_, err := newTestExtractor(t, server).Extract(ctx, "anything")
		assert.ErrorIs(t, err, rag.ErrMalformedExtraction)
	})

	t.Run("TransportErrorPropagates", func(t *testing.T) {
		server := fakeCompletionServer(t, "{}")
		server.Close()

		_, err := newTestExtractor(t, server).Extract(ctx, "anything")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, rag.ErrMalformedExtraction)
	})

	t.Run("DefaultModel", func(t *testing.T) {
		server := fakeCompletionServer(t, `{"names": []}`)
		defer server.Close()

		e := newTestExtractor(t, server)
		assert.Equal(t, DefaultModel, e.model)
	})
}
