package cmd

import (
	"github.com/spf13/cobra"

	"coderag/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing index_codebase, search_codebase, list_codebases, and list_files",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		return mcpserver.New(orch).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
