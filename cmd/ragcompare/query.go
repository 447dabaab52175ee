package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag/engine"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Answer through the knowledge-graph RAG stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleStrategy(cmd.Context(), func(a *app) engine.Engine {
			return a.graphEngine()
		})
	},
}

var vectorCmd = &cobra.Command{
	Use:   "vector",
	Short: "Answer through the vector-similarity RAG stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleStrategy(cmd.Context(), func(a *app) engine.Engine {
			return a.vectorEngine()
		})
	},
}

func runSingleStrategy(ctx context.Context, build func(*app) engine.Engine) error {
	if err := requireAPIKey(); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.loadVectorIndex(ctx); err != nil {
		return err
	}
	eng := build(a)

	for _, q := range questionsToRun() {
		fmt.Println(questionStyle.Render("Q: " + q))

		start := time.Now()
		answer, err := eng.Answer(ctx, q)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", answerStyle.Render("A:"), answer)
		fmt.Println(latencyStyle.Render(fmt.Sprintf("(%s)", time.Since(start).Round(time.Millisecond))))
		fmt.Println()
	}
	return nil
}
