package cmd

import (
	"github.com/spf13/cobra"

	"coderag/internal/orchestrator"
	"coderag/internal/store"
	"coderag/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		search := func(query, mode string) ([]store.SearchResult, error) {
			return orch.Search(query, orchestrator.SearchOptions{
				Limit:          20,
				IncludeSnippet: true,
				Mode:           mode,
			})
		}

		return tui.Run(search, true)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
