package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coderag/internal/orchestrator"
)

var (
	flagLimit     int
	flagThreshold float64
	flagSnippet   bool
	flagMode      string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := orch.Search(args[0], orchestrator.SearchOptions{
			Limit:          flagLimit,
			Threshold:      flagThreshold,
			IncludeSnippet: flagSnippet,
			Mode:           flagMode,
		})
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("no results")
			return nil
		}

		for i, r := range results {
			name := r.Name
			if name == "" {
				name = "(anonymous)"
			}
			fmt.Printf("%d. %s  [%s]  %s:%d-%d  score=%.4f\n",
				i+1, name, r.Kind, r.FilePath, r.StartLine, r.EndLine, r.Score)
			if r.Signature != "" {
				fmt.Printf("   %s\n", r.Signature)
			}
			if flagSnippet && r.Snippet != "" {
				fmt.Printf("   ---\n%s\n   ---\n", r.Snippet)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagLimit, "limit", 5, "maximum results (1-50)")
	searchCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "minimum score (0-1)")
	searchCmd.Flags().BoolVar(&flagSnippet, "snippet", false, "include full chunk source in results")
	searchCmd.Flags().StringVar(&flagMode, "mode", "semantic", "search mode: semantic, keyword, or hybrid")
	rootCmd.AddCommand(searchCmd)
}
