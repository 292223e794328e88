package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/lang"
)

// fakeEmbedder returns a deterministic, fixed-length vector per input text
// and counts how many texts it has been asked to embed.
type fakeEmbedder struct {
	model     string
	callCount int
	embedded  int
}

func (f *fakeEmbedder) Embed(texts []string) ([][]float32, error) {
	f.callCount++
	f.embedded += len(texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) Model() string { return f.model }

func writeGoFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const tenLineFunc = `package sample

func Greet(name string) string {
	if name == "" {
		name = "world"
	}
	msg := "hello, " + name
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return msg
}
`

func newTestOrchestrator() (*Orchestrator, *fakeStore, *fakeEmbedder) {
	s := newFakeStore()
	e := &fakeEmbedder{model: "fake-model"}
	o := New(s, e, lang.NewRegistry())
	return o, s, e
}

func TestIndexRoundTripsASingleFile(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, filepath.Join(dir, "a.go"), tenLineFunc)

	o, _, embedder := newTestOrchestrator()
	result, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)
	assert.Equal(t, 1, result.Chunks)
	assert.Equal(t, 1, result.Embedded)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Removed)
	assert.Equal(t, 1, embedder.embedded)
}

func TestIndexSkipsUnchangedFilesOnRepeatRun(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, filepath.Join(dir, "a.go"), tenLineFunc)

	o, _, _ := newTestOrchestrator()
	_, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	result, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Files)
	assert.Equal(t, 0, result.Chunks)
	assert.Equal(t, 0, result.Embedded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Removed)
}

func TestIndexRemovesFilesDeletedFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	writeGoFile(t, path, tenLineFunc)

	o, _, _ := newTestOrchestrator()
	_, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	result, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Files)
	assert.Equal(t, 1, result.Removed)

	files, err := o.Store.ListFiles(1)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIndexIgnoresHardcodedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, filepath.Join(dir, "src", "a.go"), tenLineFunc)
	writeGoFile(t, filepath.Join(dir, "node_modules", "b.go"), tenLineFunc)

	o, _, _ := newTestOrchestrator()
	result, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)

	files, err := o.Store.ListFiles(1)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].FilePath, filepath.Join("src", "a.go"))
}

func TestIndexReportsProgressThroughEachStage(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, filepath.Join(dir, "a.go"), tenLineFunc)

	o, _, _ := newTestOrchestrator()

	var stages []string
	_, err := o.Index(dir, IndexOptions{
		Progress: func(stage string, done, total int) {
			stages = append(stages, stage)
		},
	})
	require.NoError(t, err)

	assert.Contains(t, stages, "scan")
	assert.Contains(t, stages, "chunk")
	assert.Contains(t, stages, "embed")
	assert.Contains(t, stages, "finalize")
}

func TestIndexReembedsOnlyAfterModelChange(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, filepath.Join(dir, "a.go"), tenLineFunc)

	s := newFakeStore()
	e := &fakeEmbedder{model: "model-a"}
	o := New(s, e, lang.NewRegistry())

	_, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, e.embedded)

	e.model = "model-b"
	result, err := o.Index(dir, IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Files)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Embedded)
}
