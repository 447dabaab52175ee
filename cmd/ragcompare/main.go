// Command ragcompare runs the same questions through a knowledge-graph RAG
// stack and a plain vector-similarity RAG stack and shows their answers side
// by side.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
