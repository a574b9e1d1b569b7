package resolvectx

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
)

// jsExtensions are tried, in order, against a base path that has no
// extension or that points at a build artifact being rewritten to source.
var jsExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
var jsIndexExtensions = []string{
	"/index.ts", "/index.tsx", "/index.js", "/index.jsx",
}

// buildDirNames are directories a package's declared entry commonly points
// into; targets under them are paired with a src/-rewritten candidate
// (spec §4.1 "Build-to-source mapping").
var buildDirNames = []string{"dist", "lib", "build", "out"}

// buildToSourceCandidates returns, for a declared target path that may live
// under dist/lib/build/out (possibly nested, e.g. "pkg/dist/thing"), the
// original path plus every plausible src/-rewritten candidate with every
// source extension tried. The declared path itself is always first.
func buildToSourceCandidates(target string) []string {
	candidates := []string{target}

	dir := filepath.ToSlash(filepath.Dir(target))
	base := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))

	segments := strings.Split(dir, "/")
	for i, seg := range segments {
		for _, bd := range buildDirNames {
			if seg != bd {
				continue
			}
			rewritten := make([]string, len(segments))
			copy(rewritten, segments)
			rewritten[i] = "src"
			srcDir := strings.Join(rewritten, "/")
			stem := srcDir + "/" + base
			candidates = append(candidates, stem)
			for _, ext := range jsExtensions {
				candidates = append(candidates, stem+ext)
			}
		}
	}
	return candidates
}

// probeKnown returns the first candidate present in knownSet, or "" if none
// match. knownSet additionally supports extensionless matching against
// byStem-like membership via the caller passing pre-suffixed candidates.
func probeKnown(knownSet map[string]bool, candidates []string) string {
	for _, c := range candidates {
		c = filepath.ToSlash(filepath.Clean(c))
		if knownSet[c] {
			return c
		}
	}
	return ""
}

// resolveConditionalExport extracts a file path from a package.json
// `exports` condition value, which may be a plain string or a nested
// conditional object. Priority: code, source, import, require, module,
// default — types is explicitly skipped (spec §4.2).
func resolveConditionalExport(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"code", "source", "import", "require", "module", "default"} {
		if v, ok := obj[key]; ok {
			return resolveConditionalExport(v)
		}
	}
	return ""
}

// parseExportsMap builds the subpath -> raw conditional target map for a
// package's `exports` field, skipping "." and "./package.json" (those are
// handled by the entry-point priority chain directly).
func parseExportsMap(raw json.RawMessage) map[string]string {
	out := make(map[string]string)
	if len(raw) == 0 {
		return out
	}
	// A bare string/conditional-object `exports` field has no subpaths.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return out
	}
	for key, val := range obj {
		if key == "." || key == "./package.json" {
			continue
		}
		target := resolveConditionalExport(val)
		if target != "" {
			out[key] = target
		}
	}
	return out
}

// scriptInvocationRegex matches script command tokens that look like a
// source-file invocation: a runner (node/tsx/ts-node/python/go run) followed
// by a path argument, or a bare relative path carrying a recognized source
// extension (spec §4.3 "Script commands").
var scriptInvocationRegex = regexp.MustCompile(
	`(?:\b(?:node|tsx|ts-node|python3?|go run)\s+)?((?:\.{1,2}/|[\w./-]+/)[\w.-]+\.(?:ts|tsx|js|jsx|mjs|py|go))\b`,
)

// entryFallbackStems is tried, in priority order, when a package's main
// entry points at a build artifact with no matching source and the build
// script itself yields nothing parseable (spec §4.2, Open Question §9).
var entryFallbackStems = []string{"src/index", "src/main", "src/entry-bundler", "src/entry"}

// AllExportTargets returns every conditional target across every subpath of
// an `exports` field, including nested conditions (spec §4.3 source 1:
// entry-point detection wants *all* condition targets, since different
// conditions may point at different source files — unlike
// resolveConditionalExport's single-target priority used for the primary
// entry point).
func AllExportTargets(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if str == "" {
			return nil
		}
		return []string{str}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	var out []string
	for key, val := range obj {
		if key == "./package.json" {
			continue
		}
		out = append(out, allTargetsRec(val)...)
	}
	return out
}

func allTargetsRec(raw json.RawMessage) []string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if str == "" {
			return nil
		}
		return []string{str}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	var out []string
	for key, v := range obj {
		if key == "types" {
			continue
		}
		out = append(out, allTargetsRec(v)...)
	}
	return out
}

// ExtractScriptRoots scans every `scripts` value for source-file
// invocations and returns the matched relative paths (spec §4.3 "Script
// commands"). Exported for reuse by internal/entrypoint.
func ExtractScriptRoots(scripts map[string]string) []string {
	var roots []string
	for _, cmd := range scripts {
		for _, m := range scriptInvocationRegex.FindAllStringSubmatch(cmd, -1) {
			roots = append(roots, m[1])
		}
	}
	return roots
}
