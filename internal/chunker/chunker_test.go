package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/lang"
)

func registry(t *testing.T) *lang.Registry {
	t.Helper()
	return lang.NewRegistry()
}

func TestParseSimpleGoFunction(t *testing.T) {
	desc := registry(t).Lookup("go")
	require.NotNil(t, desc)

	src := []byte("package p\n\nfunc foo(x int) int {\n\treturn x + 1\n}\n")
	chunks, err := Parse(desc, src)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, "foo", c.Name)
	assert.Equal(t, "function", c.Kind)
	assert.Equal(t, 3, c.StartLine)
	assert.Equal(t, 5, c.EndLine)
	assert.Equal(t, "func foo(x int) int {", c.Signature)
}

func TestParseGoMethodReceiverName(t *testing.T) {
	desc := registry(t).Lookup("go")
	require.NotNil(t, desc)

	src := []byte("package p\n\ntype T struct{}\n\nfunc (t *T) Bar() {}\n")
	chunks, err := Parse(desc, src)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "T.Bar", chunks[1].Name)
	assert.Equal(t, "method", chunks[1].Kind)
}

func TestOversizePythonClassSplitsIntoMethods(t *testing.T) {
	desc := registry(t).Lookup("py")
	require.NotNil(t, desc)

	var body strings.Builder
	body.WriteString("class Widget:\n")
	body.WriteString("    def m1(self):\n        pass\n")
	for i := 0; i < 80; i++ {
		body.WriteString("    # padding\n")
	}
	body.WriteString("    def m2(self):\n        pass\n")
	for i := 0; i < 80; i++ {
		body.WriteString("    # padding\n")
	}
	body.WriteString("    def m3(self):\n        pass\n")

	chunks, err := Parse(desc, []byte(body.String()))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	names := []string{chunks[0].Name, chunks[1].Name, chunks[2].Name}
	assert.ElementsMatch(t, []string{"m1", "m2", "m3"}, names)
	for _, c := range chunks {
		assert.Equal(t, "function", c.Kind)
	}
}

func TestExportUnwrapsInnerDeclarationButKeepsOuterRange(t *testing.T) {
	desc := registry(t).Lookup("ts")
	require.NotNil(t, desc)

	src := []byte("export const x = 1;\nexport function named() {}\n")
	chunks, err := Parse(desc, src)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "x", chunks[0].Name)
	assert.Equal(t, "variable", chunks[0].Kind)
	assert.True(t, strings.HasPrefix(chunks[0].Snippet, "export"))

	assert.Equal(t, "named", chunks[1].Name)
	assert.Equal(t, "function", chunks[1].Kind)
}

func TestNilDescriptorReturnsNoChunks(t *testing.T) {
	chunks, err := Parse(nil, []byte("anything"))
	require.NoError(t, err)
	assert.Nil(t, chunks)
}
