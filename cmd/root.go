// Package cmd implements the coderag command-line front-end: cobra
// subcommands wired over internal/orchestrator.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"coderag/internal/embedder"
	"coderag/internal/lang"
	"coderag/internal/orchestrator"
	"coderag/internal/store"
)

var (
	flagDB     string
	flagOllama string
	flagModel  string
)

var rootCmd = &cobra.Command{
	Use:   "coderag",
	Short: "Local, embedded code search for AI coding agents",
	Long: "coderag builds an incremental, hybrid (keyword + vector) search index over a\n" +
		"directory of source code and serves it to CLI, agent-tool (MCP), and\n" +
		"interactive consumers.",
}

// Execute runs the root command, exiting the process with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".config", "coderag", "coderag.db")

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", defaultDB, "path to the index database")
	rootCmd.PersistentFlags().StringVar(&flagOllama, "ollama", "http://localhost:11434", "Ollama base URL")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "nomic-embed-text", "embedding model name")
}

// openOrchestrator opens the store at flagDB and wires it to an Ollama
// embedder and the built-in language registry. Callers must Close the
// returned store when done.
func openOrchestrator() (*orchestrator.Orchestrator, store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(flagDB), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db directory: %w", err)
	}

	st, err := store.Open(flagDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open index: %w", err)
	}

	emb := embedder.NewOllamaEmbedder(flagOllama, flagModel)
	orch := orchestrator.New(st, emb, lang.NewRegistry())
	return orch, st, nil
}
