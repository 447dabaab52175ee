package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manucet439/RAG-Vs-GraphRAG/history"
	"github.com/manucet439/RAG-Vs-GraphRAG/log"
	"github.com/manucet439/RAG-Vs-GraphRAG/rag/engine"
)

var noSave bool

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Answer through both stacks and show the results side by side",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.loadVectorIndex(ctx); err != nil {
			return err
		}

		var store *history.Store
		if !noSave {
			store, err = history.NewStore(history.Options{Path: cfg.HistoryPath})
			if err != nil {
				return err
			}
			defer store.Close()
		}

		graphEngine := a.graphEngine()
		vectorEngine := a.vectorEngine()

		for _, q := range questionsToRun() {
			comparison, err := engine.Compare(ctx, graphEngine, vectorEngine, q)
			if err != nil {
				return err
			}
			renderComparison(comparison)

			if store != nil {
				if _, err := store.Save(ctx, comparison); err != nil {
					log.Warn("could not save comparison: %v", err)
				}
			}
		}
		return nil
	},
}

func renderComparison(c *engine.Comparison) {
	fmt.Println(headerStyle.Render("Question: " + c.Question))
	fmt.Printf("%s %s\n", vectorLabelStyle.Render("Vector RAG:"), c.VectorAnswer)
	fmt.Println(latencyStyle.Render(fmt.Sprintf("(%s)", c.VectorLatency.Round(roundTo))))
	fmt.Printf("%s  %s\n", graphLabelStyle.Render("Graph RAG:"), c.GraphAnswer)
	fmt.Println(latencyStyle.Render(fmt.Sprintf("(%s)", c.GraphLatency.Round(roundTo))))
	fmt.Println()
}

func init() {
	compareCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record this run in the history database")
}
