package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goLangOf(ext string) string {
	switch ext {
	case "go":
		return "go"
	case "rs":
		return "rust"
	default:
		return ""
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanIgnoresHardcodedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.rs"), "fn a() {}\n")
	writeFile(t, filepath.Join(root, "node_modules", "b.rs"), "fn b() {}\n")

	res, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "src/a.rs", res.Files[0].RelPath)
}

func TestScanRejectsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden", "a.go"), "package p\n")
	writeFile(t, filepath.Join(root, "visible.go"), "package p\n")

	res, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "visible.go", res.Files[0].RelPath)
}

func TestScanRejectsOversizeAndEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "empty.go"), "")

	big := make([]byte, maxFileSize+1)
	for i := range big {
		big[i] = 'a'
	}
	writeFile(t, filepath.Join(root, "big.go"), string(big))
	writeFile(t, filepath.Join(root, "ok.go"), "package p\n")

	res, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "ok.go", res.Files[0].RelPath)
}

func TestScanHonorsSimpleGitignoreDirectoryPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "vendored\n")
	writeFile(t, filepath.Join(root, "vendored", "a.go"), "package p\n")
	writeFile(t, filepath.Join(root, "kept", "b.go"), "package p\n")

	res, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "kept/b.go", res.Files[0].RelPath)
}

func TestScanComputesStableContentHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package p\n")

	res, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.NotEmpty(t, res.Files[0].Hash)

	res2, err := Scan(root, goLangOf)
	require.NoError(t, err)
	require.Len(t, res2.Files, 1)
	assert.Equal(t, res.Files[0].Hash, res2.Files[0].Hash)
}
