package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// BodyWrapperKinds are AST node kinds that wrap a container's member list.
// When an oversized splittable node has no top-level members among its
// direct children, the chunker looks inside a child of one of these kinds.
var BodyWrapperKinds = set(
	"class_body",
	"declaration_list",
	"field_declaration_list",
	"body_statement",
	"block",
)

// builtins returns the language table for every grammar this build links.
// Zig is named in the core language set but has no published
// go-tree-sitter grammar binding available anywhere in the dependency
// pack, so it is omitted rather than faked — a known gap against the
// registry, not a design choice; see SPEC_FULL.md's "KNOWN GAP" section
// and DESIGN.md. Files with unregistered extensions are skipped by the
// scanner regardless of the reason they're unregistered.
func builtins() []*Descriptor {
	return []*Descriptor{
		{
			Name:       "go",
			Extensions: []string{"go"},
			Grammar:    golang.GetLanguage(),
			TopLevel: set(
				"function_declaration",
				"method_declaration",
				"type_declaration",
				"const_declaration",
				"var_declaration",
			),
			Splittable: set(),
		},
		{
			Name:       "c",
			Extensions: []string{"c", "h"},
			Grammar:    c.GetLanguage(),
			TopLevel: set(
				"function_definition",
				"type_definition",
				"struct_specifier",
				"union_specifier",
				"enum_specifier",
				"declaration",
				"preproc_def",
				"preproc_function_def",
			),
			Splittable: set("struct_specifier", "union_specifier"),
		},
		{
			Name:       "cpp",
			Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"},
			Grammar:    cpp.GetLanguage(),
			TopLevel: set(
				"function_definition",
				"class_specifier",
				"struct_specifier",
				"union_specifier",
				"namespace_definition",
				"template_declaration",
				"enum_specifier",
				"declaration",
			),
			Splittable: set("class_specifier", "struct_specifier", "namespace_definition"),
		},
		{
			Name:       "python",
			Extensions: []string{"py", "pyi"},
			Grammar:    python.GetLanguage(),
			TopLevel: set(
				"function_definition",
				"class_definition",
				"decorated_definition",
			),
			Splittable: set("class_definition"),
		},
		{
			Name:       "java",
			Extensions: []string{"java"},
			Grammar:    java.GetLanguage(),
			TopLevel: set(
				"class_declaration",
				"interface_declaration",
				"enum_declaration",
				"record_declaration",
				"annotation_type_declaration",
				"method_declaration",
				"constructor_declaration",
			),
			Splittable: set("class_declaration", "interface_declaration", "enum_declaration", "record_declaration"),
		},
		{
			Name:       "scala",
			Extensions: []string{"scala", "sc"},
			Grammar:    scala.GetLanguage(),
			TopLevel: set(
				"class_definition",
				"object_definition",
				"trait_definition",
				"function_definition",
				"val_definition",
				"var_definition",
			),
			Splittable: set("class_definition", "object_definition", "trait_definition"),
		},
		{
			Name:       "javascript",
			Extensions: []string{"js", "jsx", "mjs", "cjs"},
			Grammar:    javascript.GetLanguage(),
			TopLevel: set(
				"function_declaration",
				"class_declaration",
				"lexical_declaration",
				"variable_declaration",
				"export_statement",
			),
			Splittable: set("class_declaration"),
		},
		{
			Name:       "typescript",
			Extensions: []string{"ts", "mts", "cts"},
			Grammar:    typescript.GetLanguage(),
			TopLevel: set(
				"function_declaration",
				"class_declaration",
				"interface_declaration",
				"type_alias_declaration",
				"enum_declaration",
				"lexical_declaration",
				"export_statement",
			),
			Splittable: set("class_declaration", "interface_declaration"),
		},
		{
			Name:       "tsx",
			Extensions: []string{"tsx"},
			Grammar:    tsx.GetLanguage(),
			TopLevel: set(
				"function_declaration",
				"class_declaration",
				"interface_declaration",
				"type_alias_declaration",
				"enum_declaration",
				"lexical_declaration",
				"export_statement",
			),
			Splittable: set("class_declaration", "interface_declaration"),
		},
		{
			Name:       "php",
			Extensions: []string{"php"},
			Grammar:    php.GetLanguage(),
			TopLevel: set(
				"function_definition",
				"class_declaration",
				"interface_declaration",
				"trait_declaration",
				"enum_declaration",
			),
			Splittable: set("class_declaration", "interface_declaration", "trait_declaration"),
		},
		{
			Name:       "ruby",
			Extensions: []string{"rb"},
			Grammar:    ruby.GetLanguage(),
			TopLevel: set(
				"method",
				"singleton_method",
				"class",
				"module",
				"assignment",
			),
			Splittable: set("class", "module"),
		},
		{
			Name:       "rust",
			Extensions: []string{"rs"},
			Grammar:    rust.GetLanguage(),
			TopLevel: set(
				"function_item",
				"struct_item",
				"enum_item",
				"trait_item",
				"impl_item",
				"mod_item",
				"const_item",
				"static_item",
				"macro_definition",
				"type_item",
			),
			Splittable: set("impl_item", "trait_item", "mod_item"),
		},
	}
}

// ensure the sitter import is used even if a future edit trims grammars above.
var _ *sitter.Language = golang.GetLanguage()
