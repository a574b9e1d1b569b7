package parse

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	rustUseRe = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+([A-Za-z0-9_:{},\s*]+?)\s*;`)
	rustModRe = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+(\w+)\s*;`)
)

// parseRust extracts `use` edges and `mod` declarations (spec §4.5/§4.6
// "Rust"), plus the crate-kind metadata flags the entry-point detector's
// parser-metadata source consults (spec §4.3 source 6).
func parseRust(rec *model.FileRecord, source []byte) {
	text := string(source)

	for _, m := range rustUseRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(source, m[0])
		for _, path := range expandRustUseGroup(text[m[2]:m[3]]) {
			rec.Imports = append(rec.Imports, model.Import{Module: path, Kind: model.ImportRustUse, Line: line})
		}
	}

	for _, m := range rustModRe.FindAllStringSubmatch(text, -1) {
		rec.Mods = append(rec.Mods, m[1])
	}

	base := filepath.Base(rec.RelativePath)
	rec.Metadata.IsBinaryCrate = base == "main.rs"
	rec.Metadata.IsLibraryCrate = base == "lib.rs"
}

// expandRustUseGroup expands a `use a::b::{c, d as e}` grouped path into
// its individual leaf paths ("a::b::c", "a::b::d"), and strips `as`
// aliases. A bare `use a::b;` (no group) returns itself unchanged.
func expandRustUseGroup(raw string) []string {
	raw = strings.TrimSpace(raw)
	open := strings.Index(raw, "{")
	if open == -1 {
		if idx := strings.Index(raw, " as "); idx >= 0 {
			raw = strings.TrimSpace(raw[:idx])
		}
		return []string{raw}
	}
	prefix := strings.TrimSuffix(raw[:open], "::")
	close := strings.LastIndex(raw, "}")
	if close == -1 || close < open {
		return []string{prefix}
	}
	inner := raw[open+1 : close]
	var out []string
	for _, leaf := range strings.Split(inner, ",") {
		leaf = strings.TrimSpace(leaf)
		if leaf == "" {
			continue
		}
		if idx := strings.Index(leaf, " as "); idx >= 0 {
			leaf = strings.TrimSpace(leaf[:idx])
		}
		if leaf == "self" {
			out = append(out, prefix)
			continue
		}
		out = append(out, prefix+"::"+leaf)
	}
	return out
}
