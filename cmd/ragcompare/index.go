package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge graph from the corpus",
	Long: `index reads the corpus, splits it into chunks, extracts entities and
relationships from each chunk with the language model, and writes the
resulting graph to FalkorDB. Run it once before asking graph questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.buildGraphIndex(cmd.Context()); err != nil {
			return err
		}

		nodes, edges, err := a.graphStore.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s %d nodes, %d edges\n", successStyle.Render("Graph index built:"), nodes, edges)
		return nil
	},
}
