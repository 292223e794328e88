package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func TestArgumentsReturnsNilForEmptyRequest(t *testing.T) {
	var req mcp.CallToolRequest
	assert.Nil(t, arguments(req))
}

func TestGetStringFallsBackOnMissingOrEmpty(t *testing.T) {
	args := map[string]interface{}{"query": "hello", "empty": ""}
	assert.Equal(t, "hello", getString(args, "query", "default"))
	assert.Equal(t, "default", getString(args, "empty", "default"))
	assert.Equal(t, "default", getString(args, "missing", "default"))
}

func TestGetIntHandlesJSONFloat64(t *testing.T) {
	args := map[string]interface{}{"limit": float64(7)}
	assert.Equal(t, 7, getInt(args, "limit", 5))
	assert.Equal(t, 5, getInt(args, "missing", 5))
}

func TestGetBoolDefaultsWhenAbsent(t *testing.T) {
	args := map[string]interface{}{"include_snippet": true}
	assert.True(t, getBool(args, "include_snippet", false))
	assert.False(t, getBool(args, "missing", false))
}
