// Package reachability implements C6: the reachability walker. It runs a
// cooperative, single-threaded BFS from the entry-point set, asking the
// resolver (C5) to turn each import into concrete files and folding in
// every language-specific same-package/re-export/mod-declaration link the
// spec calls out (spec §4.6).
package reachability

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/resolver"
)

// antiEntryRegex mirrors the resolver and entrypoint packages' safety
// rail (spec §9): same-package/mod expansion never pulls in a file whose
// path or name flags it as dead/deprecated/legacy/old/unused.
var antiEntryRegex = regexp.MustCompile(`(?i)(^|/)(dead|deprecated|legacy|old|unused)([._-]|/|$)`)

// CSharpRefEdges is a pre-built map from a C# file to every other file it
// references via `new T()`, `typeof(T)`, or a generic type argument (spec
// §4.6 step 6); extension-method invocations add no edges. Computed once by the
// caller (it requires scanning source text the parser contract doesn't
// otherwise carry) and passed in read-only.
type CSharpRefEdges map[string][]string

// Result is the outcome of a single BFS run.
type Result struct {
	// Reachable is the full set of reachable file paths, including every
	// entry point.
	Reachable map[string]bool

	// VisitOrder is the order files were first enqueued. Roots are seeded
	// from a map, so this order can differ between runs over the same input.
	VisitOrder []string
}

// Walk runs the BFS described in spec §4.6. roots is the entry-point set
// (spec §4.3); preseeded is pre-seeded reachable members computed once by
// the caller — glob-matched files (spec §4.6 closing paragraph) — since
// auto-loader siblings are already folded into roots by
// internal/entrypoint. csharpRefs may be nil.
func Walk(records []model.FileRecord, idx *model.ReverseIndex, res *resolver.Resolver, roots map[string]bool, preseeded map[string]bool, csharpRefs CSharpRefEdges) *Result {
	byPath := make(map[string]*model.FileRecord, len(records))
	for i := range records {
		byPath[records[i].RelativePath] = &records[i]
	}

	visited := make(map[string]bool, len(records))
	result := &Result{Reachable: make(map[string]bool, len(records))}

	var queue []string
	enqueue := func(path string) {
		if path == "" || visited[path] {
			return
		}
		if _, known := byPath[path]; !known {
			return // not a parsed file record (e.g. resolver returned a dir probe miss)
		}
		visited[path] = true
		result.Reachable[path] = true
		result.VisitOrder = append(result.VisitOrder, path)
		queue = append(queue, path)
	}

	for path := range roots {
		enqueue(path)
	}
	for path := range preseeded {
		enqueue(path)
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		rec := byPath[path]
		if rec == nil {
			continue
		}

		// Same-package linking (spec §4.6 step 2).
		switch rec.Language {
		case model.LangGo:
			for _, sib := range goSiblings(byPath, path) {
				enqueue(sib)
			}
		case model.LangJava, model.LangKotlin:
			if rec.Metadata.PackageName != "" {
				pkgDir := strings.ReplaceAll(rec.Metadata.PackageName, ".", "/")
				for _, sib := range idx.JavaPackageDirMap[pkgDir] {
					if !isAntiEntry(sib) {
						enqueue(sib)
					}
				}
			}
		}

		// Imports (spec §4.6 step 3).
		for _, imp := range rec.Imports {
			for _, target := range res.Resolve(path, imp.Module, rec.Language) {
				enqueue(target)
			}
			// Python "from X import Y": Y may itself be a submodule.
			if rec.Language == model.LangPython && imp.Kind == model.ImportPythonFrom && imp.Name != "" {
				combined := imp.Module + "." + imp.Name
				for _, target := range res.Resolve(path, combined, rec.Language) {
					enqueue(target)
				}
			}
		}

		// Re-exports (spec §4.6 step 4).
		for _, exp := range rec.Exports {
			if exp.SourceModule == "" {
				continue
			}
			for _, target := range res.Resolve(path, exp.SourceModule, rec.Language) {
				enqueue(target)
			}
		}

		// Rust mod declarations (spec §4.6 step 5).
		if rec.Language == model.LangRust {
			dir := filepath.ToSlash(filepath.Dir(path))
			if dir == "." {
				dir = ""
			}
			for _, name := range rec.Mods {
				if isAntiEntry(name) {
					continue
				}
				base := name
				if dir != "" {
					base = dir + "/" + name
				}
				if rec2, ok := idx.ByPath[base+".rs"]; ok {
					enqueue(rec2.RelativePath)
				}
				if rec2, ok := idx.ByPath[base+"/mod.rs"]; ok {
					enqueue(rec2.RelativePath)
				}
			}
		}

		// C# pre-computed reference edges (spec §4.6 step 6).
		if rec.Language == model.LangCSharp {
			for _, target := range csharpRefs[path] {
				enqueue(target)
			}
		}
	}

	return result
}

// goSiblings returns every other non-test .go file in the same directory
// as path, excluding anti-entry matches (Go compiles a whole package
// together, spec §4.6 step 2).
func goSiblings(byPath map[string]*model.FileRecord, path string) []string {
	dir := filepath.ToSlash(filepath.Dir(path))
	var out []string
	for p, rec := range byPath {
		if rec.Language != model.LangGo || p == path {
			continue
		}
		if strings.HasSuffix(p, "_test.go") {
			continue
		}
		if filepath.ToSlash(filepath.Dir(p)) != dir {
			continue
		}
		if isAntiEntry(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isAntiEntry(path string) bool {
	return antiEntryRegex.MatchString(path)
}

// GlobMatches computes the pre-seeded reachable set contributed by
// glob/wildcard import specifiers (spec §4.6 closing paragraph): for every
// import record flagged IsGlob, every known file path matching the
// specifier (translated from a simple glob into a path-prefix/suffix
// match) is reachable regardless of whether resolve() would otherwise find
// it.
func GlobMatches(records []model.FileRecord, knownFiles []string) map[string]bool {
	out := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		dir := filepath.ToSlash(filepath.Dir(rec.RelativePath))
		if dir == "." {
			dir = ""
		}
		for _, imp := range rec.Imports {
			if !imp.IsGlob {
				continue
			}
			pattern := imp.Module
			if dir != "" && (strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../")) {
				pattern = filepath.ToSlash(filepath.Join(dir, pattern))
			}
			for _, f := range knownFiles {
				if matched, _ := filepath.Match(pattern, f); matched {
					out[f] = true
				}
			}
		}
	}
	return out
}
