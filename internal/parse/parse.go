// Package parse provides the default, regex-based implementation of the
// parser contract spec §3/§6 fixes: given a file's bytes, return a
// model.FileRecord. Per-language parsers are an explicit external
// collaborator in the spec ("the core does not care" how a record is
// produced, §6) — this package is one concrete, swappable implementation,
// not part of the core's contract surface.
package parse

import (
	"path/filepath"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

// LanguageForPath maps a file extension to the Language tag the core
// dispatches on, or "" if the extension isn't recognized (the discovery
// collaborator should exclude such files from the candidate set).
func LanguageForPath(path string) model.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return model.LangTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return model.LangJavaScript
	case ".py", ".pyi":
		return model.LangPython
	case ".java":
		return model.LangJava
	case ".kt", ".kts":
		return model.LangKotlin
	case ".go":
		return model.LangGo
	case ".rs":
		return model.LangRust
	case ".cs":
		return model.LangCSharp
	default:
		return ""
	}
}

// File parses a single file's bytes into a FileRecord, dispatching by
// language. An unrecognized language produces an empty record (the caller
// should have already filtered the candidate set via LanguageForPath).
func File(relativePath string, source []byte, lang model.Language) model.FileRecord {
	rec := model.FileRecord{
		RelativePath: filepath.ToSlash(relativePath),
		Language:     lang,
	}

	switch lang {
	case model.LangTypeScript, model.LangJavaScript:
		parseJS(&rec, source)
	case model.LangPython:
		parsePython(&rec, source)
	case model.LangJava, model.LangKotlin:
		parseJavaKotlin(&rec, source)
	case model.LangGo:
		parseGo(&rec, source)
	case model.LangRust:
		parseRust(&rec, source)
	case model.LangCSharp:
		parseCSharp(&rec, source)
	}

	return rec
}

// lineOf returns the 1-based line number of byte offset idx within src.
func lineOf(src []byte, idx int) int {
	return 1 + strings.Count(string(src[:idx]), "\n")
}
