// Package lang holds the static table of supported source languages: their
// file extensions, tree-sitter grammar, and the AST node kinds that count as
// top-level definitions or as splittable containers.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Descriptor describes one supported language.
type Descriptor struct {
	// Name is the canonical language name, e.g. "go", "rust".
	Name string
	// Extensions are file extensions (without dot) recognized for this language.
	Extensions []string
	// Grammar is the tree-sitter grammar used to parse source in this language.
	Grammar *sitter.Language
	// TopLevel is the set of AST node kinds emitted as chunks when found as a
	// direct child of the parsed tree's root node.
	TopLevel map[string]bool
	// Splittable is the subset of TopLevel that, when a chunk's line span
	// exceeds the oversize threshold, is decomposed into member chunks
	// instead of emitted whole. A node with no recognized members is still
	// emitted whole.
	Splittable map[string]bool
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// Registry is a lookup table from file extension to Descriptor.
type Registry struct {
	byExt map[string]*Descriptor
	all   []*Descriptor
}

// NewRegistry builds the registry with every language this build was
// compiled with a tree-sitter grammar for.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]*Descriptor)}
	for _, d := range builtins() {
		r.Register(d)
	}
	return r
}

// Register adds a descriptor, indexing it by every extension it declares.
func (r *Registry) Register(d *Descriptor) {
	r.all = append(r.all, d)
	for _, ext := range d.Extensions {
		r.byExt[ext] = d
	}
}

// Lookup returns the descriptor for a file extension (without leading dot),
// or nil if the extension is unrecognized.
func (r *Registry) Lookup(ext string) *Descriptor {
	return r.byExt[ext]
}

// All returns every registered descriptor.
func (r *Registry) All() []*Descriptor {
	return r.all
}

// Extensions returns the set of every extension any descriptor recognizes.
func (r *Registry) Extensions() map[string]bool {
	exts := make(map[string]bool, len(r.byExt))
	for ext := range r.byExt {
		exts[ext] = true
	}
	return exts
}
