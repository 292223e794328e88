package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"coderag/internal/orchestrator"
	"coderag/internal/store"
)

func (s *Server) handleIndexCodebase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	path := getString(args, "path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	var languages []string
	if raw := getString(args, "languages", ""); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				languages = append(languages, l)
			}
		}
	}

	result, err := s.orch.Index(path, orchestrator.IndexOptions{Languages: languages})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"indexed %s: files=%d chunks=%d embedded=%d skipped=%d removed=%d (%dms)",
		path, result.Files, result.Chunks, result.Embedded, result.Skipped, result.Removed, result.DurationMS,
	)), nil
}

func (s *Server) handleSearchCodebase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	query := getString(args, "query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	mode := getString(args, "mode", "hybrid")
	limit := getInt(args, "limit", 5)
	includeSnippet := getBool(args, "include_snippet", false)

	results, err := s.orch.Search(query, orchestrator.SearchOptions{
		Limit:          limit,
		IncludeSnippet: includeSnippet,
		Mode:           mode,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSearchResults(query, results)), nil
}

func (s *Server) handleListCodebases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	codebases, err := s.orch.Store.ListCodebases()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list codebases failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Codebases (%d)\n\n", len(codebases))
	for _, c := range codebases {
		fmt.Fprintf(&sb, "- **%d** %s — %s (indexed %s)\n",
			c.ID, c.Name, c.RootPath, c.IndexedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleListFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)
	codebaseID := int64(getInt(args, "codebase_id", 0))

	files, err := s.orch.Store.ListFiles(codebaseID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list files failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Files (%d)\n\n", len(files))
	for _, f := range files {
		fmt.Fprintf(&sb, "- **%s** (%s, %d chunks)\n", f.FilePath, f.Language, f.ChunkCount)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSearchResults(query string, results []store.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search results for %q (%d)\n\n", query, len(results))
	for i, r := range results {
		name := r.Name
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Fprintf(&sb, "### %d. %s `%s`\n\n", i+1, name, r.FilePath)
		fmt.Fprintf(&sb, "**Kind:** %s  \n**Lines:** %d-%d  \n**Score:** %.4f\n\n",
			r.Kind, r.StartLine, r.EndLine, r.Score)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "```\n%s\n```\n\n", r.Snippet)
		}
	}
	return sb.String()
}
