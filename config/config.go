// Package config loads application settings from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the CLI needs to wire the two RAG stacks.
type Config struct {
	OpenAIAPIKey   string
	OpenAIModel    string
	EmbeddingModel string

	FalkorDBURL string

	CorpusPath  string
	HistoryPath string

	ChunkSize    int
	ChunkOverlap int
}

// Load reads configuration with the usual precedence: explicit file (when
// path is non-empty), then ragcompare.yaml in the working directory, then
// environment variables, then defaults. A missing config file is fine;
// everything has a default except the OpenAI key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ragcompare")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ragcompare")
	}

	v.SetEnvPrefix("RAGCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional variable names win over the prefixed ones.
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("graph.url", "FALKORDB_URL")

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("graph.url", "falkordb://localhost:6379/ragcompare")
	v.SetDefault("corpus.path", "synthetic_data.txt")
	v.SetDefault("history.path", "ragcompare.db")
	v.SetDefault("splitter.chunk_size", 1024)
	v.SetDefault("splitter.chunk_overlap", 48)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		OpenAIAPIKey:   v.GetString("openai.api_key"),
		OpenAIModel:    v.GetString("openai.model"),
		EmbeddingModel: v.GetString("openai.embedding_model"),
		FalkorDBURL:    v.GetString("graph.url"),
		CorpusPath:     v.GetString("corpus.path"),
		HistoryPath:    v.GetString("history.path"),
		ChunkSize:      v.GetInt("splitter.chunk_size"),
		ChunkOverlap:   v.GetInt("splitter.chunk_overlap"),
	}, nil
}

// Validate checks the settings a live run cannot do without.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return nil
}
