package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List codebases or files in the index",
}

var listCodebasesCmd = &cobra.Command{
	Use:   "codebases",
	Short: "List every registered codebase",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		codebases, err := st.ListCodebases()
		if err != nil {
			return err
		}
		for _, c := range codebases {
			fmt.Printf("%d  %s  %s  indexed_at=%s\n", c.ID, c.Name, c.RootPath, c.IndexedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	},
}

var listFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed files, optionally filtered by codebase",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		files, err := st.ListFiles(flagCodebaseID)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("%s  %s  chunks=%d  indexed_at=%s\n",
				f.FilePath, f.Language, f.ChunkCount, f.IndexedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	},
}

var flagCodebaseID int64

func init() {
	listFilesCmd.Flags().Int64Var(&flagCodebaseID, "codebase", 0, "restrict to this codebase id (0 = all)")
	listCmd.AddCommand(listCodebasesCmd, listFilesCmd)
	rootCmd.AddCommand(listCmd)
}
