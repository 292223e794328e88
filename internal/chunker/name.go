package chunker

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractName applies per-language, per-kind naming rules, trying each in
// turn and returning the first one that produces a non-empty name.
func extractName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "singleton_method":
		if obj := node.ChildByFieldName("object"); obj != nil {
			if nm := node.ChildByFieldName("name"); nm != nil {
				return obj.Content(src) + "." + nm.Content(src)
			}
		}
	case "assignment":
		if left := node.ChildByFieldName("left"); left != nil {
			return strings.TrimSpace(left.Content(src))
		}
	case "function_definition":
		// C: declarator.declarator, unwrapping function_declarator.
		if decl := node.ChildByFieldName("declarator"); decl != nil {
			inner := decl
			if decl.Type() == "function_declarator" {
				if d2 := decl.ChildByFieldName("declarator"); d2 != nil {
					inner = d2
				}
			}
			if n := firstIdentifierLike(inner, src); n != "" {
				return n
			}
		}
	case "type_definition":
		if n := firstChildOfType(node, "type_identifier", src); n != "" {
			return n
		}
	case "method_declaration":
		// Go: Receiver.Name. Java method_declaration falls through to the
		// generic rule below since it has no "receiver" field.
		if recv := node.ChildByFieldName("receiver"); recv != nil {
			if nm := node.ChildByFieldName("name"); nm != nil {
				if recvType := firstTypeIdentifier(recv, src); recvType != "" {
					return recvType + "." + nm.Content(src)
				}
			}
		}
	case "type_declaration", "const_declaration", "var_declaration":
		if spec := node.NamedChild(0); spec != nil {
			if nm := spec.ChildByFieldName("name"); nm != nil {
				return nm.Content(src)
			}
		}
	case "val_definition", "var_definition":
		if pat := node.ChildByFieldName("pattern"); pat != nil {
			return strings.TrimSpace(pat.Content(src))
		}
	case "impl_item":
		typ := node.ChildByFieldName("type")
		if typ == nil {
			break
		}
		if tr := node.ChildByFieldName("trait"); tr != nil {
			return tr.Content(src) + " for " + typ.Content(src)
		}
		return typ.Content(src)
	case "lexical_declaration", "variable_declaration":
		if decl := node.NamedChild(0); decl != nil && decl.Type() == "variable_declarator" {
			if nm := decl.ChildByFieldName("name"); nm != nil {
				return nm.Content(src)
			}
		}
	}

	// Generic fallback: first non-empty of name, identifier, type_identifier
	// child fields.
	for _, field := range []string{"name", "identifier", "type_identifier"} {
		if n := node.ChildByFieldName(field); n != nil {
			if txt := strings.TrimSpace(n.Content(src)); txt != "" {
				return txt
			}
		}
	}

	// Last resort: scan direct named children for a bare identifier node.
	for _, kind := range []string{"identifier", "type_identifier", "field_identifier", "property_identifier", "constant"} {
		if n := firstChildOfType(node, kind, src); n != "" {
			return n
		}
	}

	return ""
}

// firstIdentifierLike returns the node's own text if it already is an
// identifier-shaped node, otherwise the first identifier found among its
// named children.
func firstIdentifierLike(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "identifier", "field_identifier", "type_identifier":
		return node.Content(src)
	}
	for _, kind := range []string{"identifier", "field_identifier", "type_identifier"} {
		if n := firstChildOfType(node, kind, src); n != "" {
			return n
		}
	}
	return ""
}

// firstChildOfType returns the text of the first direct named child whose
// kind equals typ, or "".
func firstChildOfType(node *sitter.Node, typ string, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		ch := node.NamedChild(i)
		if ch.Type() == typ {
			return ch.Content(src)
		}
	}
	return ""
}

// firstTypeIdentifier walks a receiver parameter list looking for the
// receiver's named type, unwrapping a leading pointer_type if present.
func firstTypeIdentifier(node *sitter.Node, src []byte) string {
	var walk func(n *sitter.Node) string
	walk = func(n *sitter.Node) string {
		if n.Type() == "type_identifier" {
			return n.Content(src)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if found := walk(n.NamedChild(i)); found != "" {
				return found
			}
		}
		return ""
	}
	return walk(node)
}
