// Package chunker performs AST-aware chunking of source files: it parses a
// file with the language's tree-sitter grammar and walks the root node's
// direct children, emitting one chunk per top-level definition, splitting
// oversized container nodes into their member definitions.
package chunker

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"coderag/internal/lang"
)

// oversizeLines is the line-span threshold above which a splittable node is
// decomposed into member chunks instead of emitted whole.
const oversizeLines = 150

// Chunk is a chunk extracted from a source file, prior to storage.
type Chunk struct {
	Name      string
	Kind      string
	Signature string
	Snippet   string
	StartLine int
	EndLine   int
}

// exportLikeKinds are wrapper node kinds whose inner declaration must be
// unwrapped for naming, kind classification, and split decisions, while the
// chunk's line range stays the outer node's range.
var exportLikeKinds = map[string]bool{
	"export_statement":     true,
	"decorated_definition": true,
	"template_declaration": true,
}

// Parse parses src with the given language descriptor and returns the
// top-level chunks. It returns (nil, nil) if desc has no grammar.
func Parse(desc *lang.Descriptor, src []byte) ([]Chunk, error) {
	if desc == nil || desc.Grammar == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(desc.Grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var chunks []Chunk

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if !desc.TopLevel[child.Type()] {
			continue
		}

		inner, ok := unwrap(child, desc)
		if !ok {
			continue
		}

		startLine := int(child.StartPoint().Row) + 1
		endLine := int(child.EndPoint().Row) + 1
		span := endLine - startLine + 1

		if desc.Splittable[inner.Type()] && span > oversizeLines {
			members := collectMembers(inner, desc)
			if len(members) > 0 {
				for _, m := range members {
					chunks = append(chunks, buildChunk(m, m, src))
				}
				continue
			}
			// No recognized members: fall back to the whole node.
		}

		chunks = append(chunks, buildChunk(child, inner, src))
	}

	return chunks, nil
}

// unwrap resolves the inner declaration used for naming, kind, and split
// decisions for export/decorator/template wrapper nodes. ok is false when an
// export has no recognizable inner declaration and should be skipped,
// except default-exported functions or classes, which are kept.
func unwrap(node *sitter.Node, desc *lang.Descriptor) (*sitter.Node, bool) {
	if !exportLikeKinds[node.Type()] {
		return node, true
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		ch := node.NamedChild(i)
		if desc.TopLevel[ch.Type()] || isKeepableDefault(ch) {
			return ch, true
		}
	}

	return nil, false
}

// isKeepableDefault reports whether a node is an (often anonymous) function
// or class declaration/expression, kept even when no name can be extracted.
func isKeepableDefault(n *sitter.Node) bool {
	switch n.Type() {
	case "function_declaration", "class_declaration", "function_expression",
		"arrow_function", "class_expression":
		return true
	}
	return false
}

// collectMembers finds member definitions (functions, methods, constructors,
// or any top-level kind) for an oversized splittable node, first among its
// direct children, then inside a recognized body-wrapper child.
func collectMembers(node *sitter.Node, desc *lang.Descriptor) []*sitter.Node {
	isMember := func(n *sitter.Node) bool {
		t := n.Type()
		return desc.TopLevel[t] || strings.Contains(t, "function") ||
			strings.Contains(t, "method") || strings.Contains(t, "constructor")
	}

	var members []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		ch := node.NamedChild(i)
		if isMember(ch) {
			members = append(members, ch)
		}
	}
	if len(members) > 0 {
		return members
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		wrapper := node.NamedChild(i)
		if !lang.BodyWrapperKinds[wrapper.Type()] {
			continue
		}
		for j := 0; j < int(wrapper.NamedChildCount()); j++ {
			gc := wrapper.NamedChild(j)
			if isMember(gc) {
				members = append(members, gc)
			}
		}
	}
	return members
}

// buildChunk builds a Chunk whose line range comes from rangeNode (the outer
// node for export/decorator/template wraps, or the member node when
// splitting) and whose name/kind come from declNode (the unwrapped inner
// declaration).
func buildChunk(rangeNode, declNode *sitter.Node, src []byte) Chunk {
	snippet := rangeNode.Content(src)
	signature := snippet
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		signature = snippet[:idx]
	}

	return Chunk{
		Name:      extractName(declNode, src),
		Kind:      normalizeKind(declNode.Type()),
		Signature: strings.TrimSpace(signature),
		Snippet:   snippet,
		StartLine: int(rangeNode.StartPoint().Row) + 1,
		EndLine:   int(rangeNode.EndPoint().Row) + 1,
	}
}
