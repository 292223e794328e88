package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func indexCodebaseTool() mcp.Tool {
	return mcp.NewTool("index_codebase",
		mcp.WithDescription("Index or re-index a directory of source code, updating only files whose content changed since the last run."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{
			ReadOnlyHint:    mcp.ToBoolPtr(false),
			DestructiveHint: mcp.ToBoolPtr(false),
			IdempotentHint:  mcp.ToBoolPtr(true),
			OpenWorldHint:   mcp.ToBoolPtr(false),
		}),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("absolute or relative path to the directory to index"),
		),
		mcp.WithString("languages",
			mcp.Description("comma-separated language names to restrict indexing to (default: all supported languages)"),
		),
	)
}

func searchCodebaseTool() mcp.Tool {
	return mcp.NewTool("search_codebase",
		mcp.WithDescription("Search the indexed codebase with a natural-language or keyword query. Returns ranked code chunks with file paths and line numbers."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language or keyword query"),
		),
		mcp.WithString("mode",
			mcp.Description("semantic, keyword, or hybrid (default hybrid)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("maximum number of results, 1-50 (default 5)"),
		),
		mcp.WithBoolean("include_snippet",
			mcp.Description("include the full chunk source in each result (default false)"),
		),
	)
}

func listCodebasesTool() mcp.Tool {
	return mcp.NewTool("list_codebases",
		mcp.WithDescription("List every codebase currently registered in the index."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List indexed files and their chunk counts, optionally restricted to one codebase."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithNumber("codebase_id",
			mcp.Description("restrict to this codebase id (default: all codebases)"),
		),
	)
}
