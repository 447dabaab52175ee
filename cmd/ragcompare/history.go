package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/manucet439/RAG-Vs-GraphRAG/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past comparison runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(history.Options{Path: cfg.HistoryPath})
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No comparisons recorded yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoFormatHeaders(false)
		table.SetHeader([]string{"When", "Question", "Graph", "Vector", "Graph ms", "Vector ms"})
		for _, r := range records {
			table.Append([]string{
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Question, 40),
				truncate(r.GraphAnswer, 40),
				truncate(r.VectorAnswer, 40),
				fmt.Sprint(r.GraphLatency.Milliseconds()),
				fmt.Sprint(r.VectorLatency.Milliseconds()),
			})
		}
		table.Render()
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show (0 for all)")
}
