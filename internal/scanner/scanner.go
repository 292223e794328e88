// Package scanner walks a directory tree and yields candidate source files
// for indexing, applying hard-coded and .gitignore-derived ignore rules.
package scanner

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxFileSize is the largest file the scanner will consider.
const maxFileSize = 1_000_000

// hardIgnores are rejected regardless of .gitignore content.
var hardIgnores = set(
	".git", "node_modules", "target", "build", "dist", ".next",
	"__pycache__", ".tox", ".venv", "venv", ".mypy_cache", ".cargo", ".rustup",
)

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// File is one accepted source file discovered by a scan.
type File struct {
	AbsPath  string
	RelPath  string
	Language string
	Hash     string
	Content  []byte
}

// Result is the outcome of a single scan.
type Result struct {
	Files  []File
	Errors []string
}

// LanguageLookup maps a file extension (without leading dot) to a language
// name, or "" if unrecognized.
type LanguageLookup func(ext string) string

// Scan walks root recursively and returns every accepted source file along
// with any non-fatal per-entry errors encountered.
func Scan(root string, langOf LanguageLookup) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	ignores := loadGitignoreDirs(absRoot)

	res := &Result{}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Errors = append(res.Errors, path+": "+err.Error())
			return nil
		}

		name := d.Name()
		isRoot := path == absRoot

		if !isRoot && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if isRoot {
				return nil
			}
			if hardIgnores[name] || ignores[name] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		language := langOf(ext)
		if language == "" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			res.Errors = append(res.Errors, path+": "+err.Error())
			return nil
		}
		if info.Size() == 0 || info.Size() > maxFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, path+": "+err.Error())
			return nil
		}

		sum := sha256.Sum256(content)
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}

		res.Files = append(res.Files, File{
			AbsPath:  path,
			RelPath:  filepath.ToSlash(relPath),
			Language: language,
			Hash:     hex.EncodeToString(sum[:]),
			Content:  content,
		})
		return nil
	})
	if walkErr != nil {
		res.Errors = append(res.Errors, walkErr.Error())
	}

	return res, nil
}

// loadGitignoreDirs reads .gitignore at root and returns the set of simple
// directory-name patterns it declares (no wildcards, optional trailing
// slash). This is deliberately not full gitignore semantics.
func loadGitignoreDirs(root string) map[string]bool {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	dirs := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := strings.TrimSuffix(line, "/")
		if strings.ContainsAny(name, "*?[!") || strings.Contains(name, "/") {
			continue
		}
		dirs[name] = true
	}
	return dirs
}
