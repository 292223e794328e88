package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coderag/internal/orchestrator"
)

var (
	flagLanguages []string
	flagVerbose   bool
)

var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Index a directory of source code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, st, err := openOrchestrator()
		if err != nil {
			return err
		}
		defer st.Close()

		opts := orchestrator.IndexOptions{
			Languages: flagLanguages,
			Verbose:   flagVerbose,
		}
		if flagVerbose {
			opts.Progress = func(stage string, done, total int) {
				if total > 0 {
					fmt.Printf("  %s: %d/%d\n", stage, done, total)
				} else {
					fmt.Printf("  %s\n", stage)
				}
			}
		}

		result, err := orch.Index(args[0], opts)
		if result != nil {
			fmt.Printf("files: %d  chunks: %d  embedded: %d  skipped: %d  removed: %d  (%dms)\n",
				result.Files, result.Chunks, result.Embedded, result.Skipped, result.Removed, result.DurationMS)
			if flagVerbose {
				for _, e := range result.Errors {
					fmt.Println("  warn:", e)
				}
			} else if len(result.Errors) > 0 {
				fmt.Printf("  %d non-fatal errors (rerun with --verbose to see them)\n", len(result.Errors))
			}
		}
		return err
	},
}

func init() {
	indexCmd.Flags().StringSliceVar(&flagLanguages, "languages", nil, "restrict indexing to these languages")
	indexCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print per-file errors")
	rootCmd.AddCommand(indexCmd)
}
