package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coderag/internal/orchestrator"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the index is in a searchable state",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		size, err := st.DBSize()
		if err != nil {
			fmt.Printf("database: %s (not yet created)\n", st.DBPath())
		} else {
			fmt.Printf("database: %s (%d bytes)\n", st.DBPath(), size)
		}

		codebases, err := st.ListCodebases()
		if err != nil {
			return err
		}
		fmt.Printf("codebases: %d\n", len(codebases))

		embedded, err := st.CountEmbeddedChunks()
		if err != nil {
			return err
		}
		fmt.Printf("embedded chunks: %d\n", embedded)

		// Run a zero-result probe search solely to trigger the
		// once-per-process searchability health check.
		if _, err := orch.Search("", orchestrator.SearchOptions{Mode: "keyword", Limit: 1}); err != nil {
			fmt.Println("status: UNSEARCHABLE —", err)
			return err
		}

		fmt.Println("status: ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
