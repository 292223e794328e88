package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coderag/internal/store"
)

func TestFormatSearchResultsReportsNoResults(t *testing.T) {
	got := formatSearchResults("nonexistent thing", nil)
	assert.Contains(t, got, "No results found")
	assert.Contains(t, got, "nonexistent thing")
}

func TestFormatSearchResultsIncludesSnippetWhenPresent(t *testing.T) {
	results := []store.SearchResult{
		{Name: "Greet", Kind: "function", FilePath: "a.go", StartLine: 3, EndLine: 9, Score: 0.87, Snippet: "func Greet() {}"},
	}
	got := formatSearchResults("greet", results)
	assert.Contains(t, got, "Greet")
	assert.Contains(t, got, "a.go")
	assert.Contains(t, got, "func Greet() {}")
}

func TestFormatSearchResultsLabelsAnonymousChunks(t *testing.T) {
	results := []store.SearchResult{{FilePath: "a.go", Kind: "variable", StartLine: 1, EndLine: 1}}
	got := formatSearchResults("x", results)
	assert.Contains(t, got, "(anonymous)")
}
