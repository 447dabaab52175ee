package main

import (
	"fmt"

	"github.com/kataras/golog"
	"github.com/spf13/cobra"

	"github.com/manucet439/RAG-Vs-GraphRAG/config"
	"github.com/manucet439/RAG-Vs-GraphRAG/log"
)

var (
	cfg *config.Config

	configPath string
	question   string
	verbose    bool
)

// testQuestions are the built-in questions, chosen so the two strategies
// answer differently: they hinge on relationships and role-to-person links
// scattered across document sections.
var testQuestions = []string{
	"Name Who approved the acquisition of SolarOptima?",
	"What is the relationship between Sophia Martinez and Aurora Dynamics?",
	"Tell me about the partnership between Aurora Dynamics and HelioSoft Technologies.",
	"Who founded SolarOptima and what was their previous company name?",
	"What role did Priya Nair play in the acquisition?",
	"How are Amelia Green, NorthBridge Capital, and Aurelia Corp connected?",
}

var rootCmd = &cobra.Command{
	Use:   "ragcompare",
	Short: "Compare knowledge-graph RAG against vector-similarity RAG",
	Long: `ragcompare indexes a document corpus twice, once as a knowledge graph
and once as an embedding index, then answers questions through both stacks
so their strengths can be compared side by side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger := log.NewGologLogger(golog.New())
		if verbose {
			logger.SetLevel(log.LogLevelDebug)
		} else {
			logger.SetLevel(log.LogLevelInfo)
		}
		log.SetDefaultLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default: ./ragcompare.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, cmd := range []*cobra.Command{graphCmd, vectorCmd, compareCmd} {
		cmd.Flags().StringVarP(&question, "question", "q", "", "single question to ask (default: the built-in test questions)")
	}

	rootCmd.AddCommand(indexCmd, graphCmd, vectorCmd, compareCmd, historyCmd)
}

// questionsToRun resolves the --question flag against the built-in set.
func questionsToRun() []string {
	if question != "" {
		return []string{question}
	}
	return testQuestions
}

func requireAPIKey() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	return nil
}
