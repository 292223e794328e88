package chunker

import "strings"

// exactKinds maps raw AST node kinds that don't carry an obvious substring
// onto the normalized kind vocabulary shared across languages.
var exactKinds = map[string]string{
	"namespace_definition":        "namespace",
	"template_declaration":        "template",
	"type_alias_declaration":      "type",
	"type_declaration":            "type",
	"type_definition":             "type",
	"type_item":                   "type",
	"type_spec":                   "type",
	"const_declaration":           "const",
	"const_item":                  "const",
	"const_spec":                  "const",
	"static_item":                 "static",
	"var_declaration":             "variable",
	"var_definition":              "variable",
	"var_spec":                    "variable",
	"val_definition":              "variable",
	"variable_declaration":        "variable",
	"lexical_declaration":         "variable",
	"assignment":                  "variable",
	"macro_definition":            "macro",
	"mod_item":                    "module",
	"record_declaration":          "record",
	"object_definition":           "object",
	"singleton_method":            "method",
	"method":                      "method",
	"method_declaration":          "method",
	"method_definition":           "method",
	"constructor_declaration":     "constructor",
	"annotation_type_declaration": "interface",
	"test_declaration":            "test",
}

// substrKinds are checked, in order, as a substring of the raw kind.
var substrKinds = []struct {
	substr string
	normal string
}{
	{"function", "function"},
	{"struct", "struct"},
	{"enum", "enum"},
	{"impl", "impl"},
	{"trait", "trait"},
	{"class", "class"},
	{"method", "method"},
	{"interface", "interface"},
	{"macro", "macro"},
	{"mod", "module"},
	{"test", "test"},
}

// normalizeKind maps a raw tree-sitter node kind to the shared vocabulary,
// falling back to the raw kind when nothing matches.
func normalizeKind(rawKind string) string {
	if n, ok := exactKinds[rawKind]; ok {
		return n
	}
	for _, s := range substrKinds {
		if strings.Contains(rawKind, s.substr) {
			return s.normal
		}
	}
	return rawKind
}
