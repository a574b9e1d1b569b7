// Package resolver implements C5: given (from-file, module-specifier), it
// returns the concrete file(s) the specifier targets, applying the
// per-language strategy spec.md §4.5 describes. The resolver never reads
// the filesystem; it queries only the pre-built ResolutionContext and
// ReverseIndex.
package resolver

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

// antiEntryRegex mirrors internal/entrypoint's safety rail: paths matching
// it are excluded from the Java class-name fallback and the Go same-
// directory/package expansion (spec §4.5 Go, §9).
var antiEntryRegex = regexp.MustCompile(`(?i)(^|/)(dead|deprecated|legacy|old|unused)([._-]|/|$)`)

// platformSuffixes are tried, in order, as a last-resort stem variant
// (spec §4.5 JS/TS "platform-suffix variants").
var platformSuffixes = []string{".ios", ".android", ".web", ".native", ".macos", ".windows"}

// javaFrameworkPrefixes are known external framework packages that the
// Java/Kotlin pipeline's framework filter (strategy 4) short-circuits on
// (spec §4.5).
var javaFrameworkPrefixes = []string{
	"java.", "javax.", "jakarta.",
	"org.springframework.", "org.springframework",
	"org.hibernate.",
	"kotlin.", "kotlinx.",
}

// Resolver is built once per scan from the ResolutionContext (C1/C2) and
// ReverseIndex (C4), then consulted by the reachability walker (C6) once
// per import edge.
type Resolver struct {
	ctx *model.ResolutionContext
	idx *model.ReverseIndex
}

// New builds a Resolver. Both arguments are read-only for the Resolver's
// entire lifetime (spec §5 "Shared-resource policy").
func New(ctx *model.ResolutionContext, idx *model.ReverseIndex) *Resolver {
	return &Resolver{ctx: ctx, idx: idx}
}

// Resolve dispatches to the per-language strategy by the extension/language
// of fromFile, returning every concrete file the import targets (spec
// §4.5). An empty, non-nil-vs-nil-agnostic slice means "external or
// unresolvable" — never an error.
func (r *Resolver) Resolve(fromFile, specifier string, lang model.Language) []string {
	switch lang {
	case model.LangJavaScript, model.LangTypeScript:
		return r.resolveJS(fromFile, specifier)
	case model.LangPython:
		return r.resolvePython(fromFile, specifier)
	case model.LangJava, model.LangKotlin:
		return r.resolveJava(specifier)
	case model.LangGo:
		return r.resolveGo(specifier)
	case model.LangRust:
		return r.resolveRust(fromFile, specifier)
	case model.LangCSharp:
		return r.resolveCSharp(specifier)
	default:
		return nil
	}
}

// probe tries, in order: the exact path, the extensionless stem, the stem
// with "/index" appended, then each platform-suffix variant — against both
// byPath and byStem (spec §4.5 JS/TS "Final matching").
func (r *Resolver) probe(base string) []string {
	base = filepath.ToSlash(filepath.Clean(base))

	if rec, ok := r.idx.ByPath[base]; ok {
		return []string{rec.RelativePath}
	}
	if recs, ok := r.idx.ByStem[base]; ok && len(recs) > 0 {
		return pathsOf(recs)
	}
	if recs, ok := r.idx.ByStem[base+"/index"]; ok && len(recs) > 0 {
		return pathsOf(recs)
	}
	for _, suffix := range platformSuffixes {
		if recs, ok := r.idx.ByStem[base+suffix]; ok && len(recs) > 0 {
			return pathsOf(recs)
		}
	}
	return nil
}

func pathsOf(recs []*model.FileRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.RelativePath)
	}
	return out
}

func isAntiEntry(path string) bool {
	return antiEntryRegex.MatchString(path)
}

func filterAntiEntry(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if !isAntiEntry(p) {
			out = append(out, p)
		}
	}
	return out
}

func dirOf(path string) string {
	d := filepath.ToSlash(filepath.Dir(path))
	if d == "." {
		return ""
	}
	return d
}

// mergedAliases is used by the JS/TS strategy: it merges
// the most-specific PackageAliases for dir over GlobalAliases and tries
// them longest-prefix-first (spec §4.5 "merged over globalAliases").
func (r *Resolver) mergedAliases(dir string) []model.AliasRule {
	pkgRules, hasPkg := r.ctx.PackageAliases[dir]
	if !hasPkg {
		return r.ctx.GlobalAliases
	}

	merged := make(map[string]string, len(r.ctx.GlobalAliases)+len(pkgRules))
	for _, rule := range r.ctx.GlobalAliases {
		merged[rule.Prefix] = rule.Target
	}
	for _, rule := range pkgRules {
		merged[rule.Prefix] = rule.Target // package rules override globals on a shared prefix
	}

	out := make([]model.AliasRule, 0, len(merged))
	for prefix, target := range merged {
		out = append(out, model.AliasRule{Prefix: prefix, Target: target})
	}
	sortByPrefixLenDesc(out)
	return out
}

func sortByPrefixLenDesc(rules []model.AliasRule) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && len(rules[j-1].Prefix) < len(rules[j].Prefix); j-- {
			rules[j-1], rules[j] = rules[j], rules[j-1]
		}
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
