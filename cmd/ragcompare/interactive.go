package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag/engine"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Compare both stacks on questions typed at a prompt",
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

		graphEngine := a.graphEngine()
		vectorEngine := a.vectorEngine()

		fmt.Println("Both systems ready. Enter your questions (type 'quit' to exit):")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			q := strings.TrimSpace(scanner.Text())
			if q == "" {
				continue
			}
			if q == "quit" || q == "exit" || q == "q" {
				return nil
			}

			comparison, err := engine.Compare(ctx, graphEngine, vectorEngine, q)
			if err != nil {
				return err
			}
			renderComparison(comparison)
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
