// Package model defines the shared data model that flows between the
// analyzer's phases: parsed file records in, resolution context and
// reverse index built once, reachable/dead verdicts out.
//
// Everything here is a plain value type. Nothing in this package touches
// the filesystem; construction of the richer structures (ResolutionContext,
// ReverseIndex) lives in internal/resolvectx and internal/index.
package model

// Language tags the source language of a file record.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangCSharp     Language = "csharp"
)

// ImportKind classifies how a module reference was spelled in source.
type ImportKind string

const (
	ImportESImport        ImportKind = "es-import"
	ImportESFrom          ImportKind = "es-from"
	ImportCommonJSRequire ImportKind = "commonjs-require"
	ImportDynamic         ImportKind = "dynamic-import"
	ImportPythonFrom      ImportKind = "python-from"
	ImportPythonDotted    ImportKind = "python-dotted"
	ImportJavaClass       ImportKind = "java-class"
	ImportJavaStatic      ImportKind = "java-static"
	ImportJavaWildcard    ImportKind = "java-wildcard"
	ImportGo              ImportKind = "go"
	ImportRustUse         ImportKind = "rust-use"
	ImportRustMod         ImportKind = "rust-mod"
	ImportCSharpUsing     ImportKind = "csharp-using"
)

// Import is a single import/include reference extracted by a parser.
type Import struct {
	Module string // raw specifier, as written in source
	Kind   ImportKind
	Name   string // imported symbol name, when the parser can tell
	IsGlob bool   // true for glob/wildcard specifiers (e.g. import.meta.glob)
	Line   int
}

// ExportType classifies what kind of binding an Export entry names.
type ExportType string

const (
	ExportFunction  ExportType = "function"
	ExportClass     ExportType = "class"
	ExportConst     ExportType = "const"
	ExportType_     ExportType = "type"
	ExportNamespace ExportType = "namespace"
	ExportReExport  ExportType = "re-export"
)

// Export is a single named export extracted by a parser. A non-empty
// SourceModule marks the entry as a re-export (`export * from "./sub"`),
// which the reachability walker treats as an additional import edge.
type Export struct {
	Name         string
	Type         ExportType
	Line         int
	EndLine      int
	IsDefault    bool
	SourceModule string // non-empty only for re-exports
}

// Decorator is a class-level decorator or annotation with optional
// arguments (used to recognize framework markers: @Injectable({providedIn:...}),
// @RestController, @SpringBootApplication, etc).
type Decorator struct {
	Name string
	Args []string
}

// ClassInfo describes a single top-level (or nested) class/struct/component
// declaration, carrying the decorators attached to it.
type ClassInfo struct {
	Name       string
	Decorators []Decorator
}

// Annotation is a bare Java/Kotlin annotation with no argument tracking
// (distinct from Decorator, which the JS/TS extractors populate).
type Annotation struct {
	Name string
}

// Metadata carries language-specific flags that the entry-point detector
// consults. Only the fields relevant to a file's language are set; the
// zero value of every field means "not applicable / not detected".
type Metadata struct {
	PackageName       string // Java/Kotlin
	HasMainBlock      bool   // Python: `if __name__ == "__main__":`
	IsMainPackage     bool   // Go: `package main`
	HasMainFunction   bool   // Go: `func main()`
	HasInitFunction   bool   // Go: `func init()`
	IsTestFile        bool   // Go (and general): `_test.go` / test-suffix convention
	IsBinaryCrate     bool   // Rust: the file is a crate's main.rs
	IsLibraryCrate    bool   // Rust: crate root is lib.rs
	HasMainMethod     bool   // Java: `public static void main(String[] args)`
	IsSpringComponent bool   // Java: annotated with a recognized stereotype
}

// FileRecord is the parser's output contract (spec §3, §6): given file
// bytes, a parser returns exactly this shape. The core never parses
// source itself; it only consumes FileRecord values.
type FileRecord struct {
	RelativePath string // forward-slash-normalized, rooted at project root
	Language     Language
	Imports      []Import
	Exports      []Export
	Mods         []string // Rust only: `mod` declarations
	Classes      []ClassInfo
	Annotations  []Annotation // Java/Kotlin
	Metadata     Metadata
}
