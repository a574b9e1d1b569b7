// Package entrypoint implements C3: the entry-point detector. It combines
// nine independent sources of evidence into a single root-file set, each
// source contributing to a union (spec §4.3).
package entrypoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/resolvectx"
)

// Config carries the project's entry-point-related overrides (spec §6:
// dynamicPatterns, diDecorators, diContainerPatterns, dynamicPackageFields).
type Config struct {
	DynamicPatterns      []string
	DIDecorators         []string
	DIContainerPatterns  []string
	DynamicPackageFields []string
}

// Result is the union of every root file found, plus which files matched a
// dynamic pattern (spec §4.3, used later for the possibly-live verdict).
type Result struct {
	Roots       map[string]bool
	DynamicHits map[string]string // file -> matched dynamicPatterns entry
}

func newResult() *Result {
	return &Result{Roots: map[string]bool{}, DynamicHits: map[string]string{}}
}

func (r *Result) add(path string) {
	if path != "" && !isAntiEntry(path) {
		r.Roots[path] = true
	}
}

func isAntiEntry(path string) bool {
	return antiEntryRegex.MatchString(path)
}

// FileContentReader returns a file's raw text, for the three sources (HTML
// script tags, DI container scans, auto-loader tokens) that need to see
// source bytes the parser contract doesn't carry on FileRecord.
type FileContentReader func(relativePath string) (string, bool)

// Detect runs all nine sources against the candidate set and returns their
// union (spec §4.3). records is the full parsed file set; knownFiles is the
// complete candidate path list (used by the HTML/auto-loader sources, which
// reference sibling files that may not themselves be source records).
func Detect(repoRoot string, ctx *model.ResolutionContext, records []model.FileRecord, knownFiles []string, cfg Config, readFile FileContentReader) *Result {
	result := newResult()

	recordsByPath := make(map[string]*model.FileRecord, len(records))
	for i := range records {
		recordsByPath[records[i].RelativePath] = &records[i]
	}

	detectManifestEntries(ctx, result)
	detectScriptsAndRootManifest(repoRoot, knownFiles, result)
	detectDynamicPackageFields(repoRoot, knownFiles, cfg, result)
	detectHTMLScriptTags(knownFiles, readFile, result)
	detectFileNamePatterns(knownFiles, result)
	detectParserMetadataHints(records, result)
	detectDecoratorAnnotationHints(records, cfg, result)
	detectDIContainerReferences(records, recordsByPath, cfg, readFile, result)
	detectAutoLoaders(knownFiles, readFile, result)
	detectDynamicPatterns(knownFiles, cfg, result)

	return result
}

// detectManifestEntries is source 1: every workspace package's resolved
// entry point (gated by the monorepo "abandoned workspace" rule, spec §4.3
// final paragraph), its resolved exports-map subpath targets, and its bin
// files. The root manifest is handled by detectScriptsAndRootManifest.
func detectManifestEntries(ctx *model.ResolutionContext, result *Result) {
	for _, pkg := range ctx.WorkspacePackages {
		if pkg.EntryPoint != "" && pkg.DependsOnInternal {
			result.add(pkg.EntryPoint)
		}
		for _, target := range pkg.ExportsMap {
			result.add(target)
		}
		for _, bin := range pkg.BinFiles {
			result.add(bin)
		}
	}
}

// detectHTMLScriptTags is source 3: every index.html's <script src="...">
// values resolve relative to the HTML file's own directory, not the
// project root.
var scriptSrcRegex = regexp.MustCompile(`<script[^>]+src=["']([^"']+)["']`)

func detectHTMLScriptTags(knownFiles []string, readFile FileContentReader, result *Result) {
	if readFile == nil {
		return
	}
	for _, f := range knownFiles {
		if filepath.Base(f) != "index.html" {
			continue
		}
		text, ok := readFile(f)
		if !ok {
			continue
		}
		dir := filepath.Dir(f)
		for _, m := range scriptSrcRegex.FindAllStringSubmatch(text, -1) {
			src := m[1]
			if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "//") {
				continue
			}
			src = strings.TrimPrefix(src, "/")
			result.add(filepath.ToSlash(filepath.Join(dir, src)))
		}
	}
}

// detectFileNamePatterns is source 5.
func detectFileNamePatterns(knownFiles []string, result *Result) {
	for _, f := range knownFiles {
		if isAntiEntry(f) {
			continue
		}
		for _, p := range fileNamePatterns {
			if p.re.MatchString(f) {
				result.add(f)
				break
			}
		}
	}
}

// detectParserMetadataHints is source 6.
func detectParserMetadataHints(records []model.FileRecord, result *Result) {
	for _, rec := range records {
		m := rec.Metadata
		switch {
		case m.HasMainBlock:
			result.add(rec.RelativePath)
		case m.HasMainMethod, m.IsSpringComponent:
			result.add(rec.RelativePath)
		case m.IsMainPackage && m.HasMainFunction:
			result.add(rec.RelativePath)
		case m.HasInitFunction:
			result.add(rec.RelativePath)
		case m.IsTestFile:
			result.add(rec.RelativePath)
		case m.IsBinaryCrate, m.IsLibraryCrate:
			result.add(rec.RelativePath)
		}
	}
}

// detectDecoratorAnnotationHints is source 7, including the providedIn
// special rule.
func detectDecoratorAnnotationHints(records []model.FileRecord, cfg Config, result *Result) {
	markers := make(map[string]bool, len(defaultDIDecorators)+len(cfg.DIDecorators))
	for _, d := range defaultDIDecorators {
		markers[d] = true
	}
	for _, d := range cfg.DIDecorators {
		markers[d] = true
	}

	for _, rec := range records {
		for _, cls := range rec.Classes {
			for _, dec := range cls.Decorators {
				if dec.Name == "Injectable" || dec.Name == "Injectable()" {
					scoped := false
					for _, arg := range dec.Args {
						if m := providedInRegex.FindStringSubmatch(arg); m != nil {
							scoped = !providedInRootValues[m[1]]
						}
					}
					if scoped {
						continue
					}
				}
				if markers[dec.Name] {
					result.add(rec.RelativePath)
				}
			}
		}
		for _, ann := range rec.Annotations {
			if markers[ann.Name] {
				result.add(rec.RelativePath)
			}
		}
	}
}

// detectDIContainerReferences is source 8: scans file content for a
// container-lookup pattern and marks the file declaring the class named by
// the captured token.
func detectDIContainerReferences(records []model.FileRecord, recordsByPath map[string]*model.FileRecord, cfg Config, readFile FileContentReader, result *Result) {
	if readFile == nil {
		return
	}
	patterns := make([]*regexp.Regexp, 0, len(defaultDIContainerPatterns)+len(cfg.DIContainerPatterns))
	for _, p := range defaultDIContainerPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	for _, p := range cfg.DIContainerPatterns {
		if re, err := regexp.Compile(p); err == nil {
			patterns = append(patterns, re)
		}
	}
	if len(patterns) == 0 {
		return
	}

	classOwner := make(map[string]string, len(records))
	for _, rec := range records {
		for _, cls := range rec.Classes {
			classOwner[cls.Name] = rec.RelativePath
		}
	}

	for _, rec := range records {
		text, ok := readFile(rec.RelativePath)
		if !ok {
			continue
		}
		for _, re := range patterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if owner, found := classOwner[m[1]]; found {
					result.add(owner)
				}
			}
		}
	}
}

// detectAutoLoaders is source 9: an index file whose content contains a
// directory-auto-load token marks every sibling file as a root.
func detectAutoLoaders(knownFiles []string, readFile FileContentReader, result *Result) {
	if readFile == nil {
		return
	}
	siblings := map[string][]string{}
	for _, f := range knownFiles {
		dir := filepath.Dir(f)
		siblings[dir] = append(siblings[dir], f)
	}

	for _, f := range knownFiles {
		base := filepath.Base(f)
		if !strings.HasPrefix(base, "index.") {
			continue
		}
		text, ok := readFile(f)
		if !ok || !autoLoaderTokenRegex.MatchString(text) {
			continue
		}
		dir := filepath.Dir(f)
		for _, sib := range siblings[dir] {
			if sib != f {
				result.add(sib)
			}
		}
	}
}

// detectDynamicPatterns records, separately from the root union, which
// candidate files match a configured dynamicPatterns regex (spec §4.3,
// used by the reachability/classify phases for the possibly-live verdict,
// not as an outright root).
func detectDynamicPatterns(knownFiles []string, cfg Config, result *Result) {
	if len(cfg.DynamicPatterns) == 0 {
		return
	}
	patterns := make([]*regexp.Regexp, 0, len(cfg.DynamicPatterns))
	for _, p := range cfg.DynamicPatterns {
		if re, err := regexp.Compile(p); err == nil {
			patterns = append(patterns, re)
		}
	}
	for _, f := range knownFiles {
		for i, re := range patterns {
			if re.MatchString(f) {
				result.DynamicHits[f] = cfg.DynamicPatterns[i]
				break
			}
		}
	}
}

// detectScriptsAndRootManifest runs the script-commands source (spec §4.3
// source 2) against every workspace package directory plus the project
// root, using resolvectx's manifest loader directly. The project-root
// manifest's own main/module/source/exports/bin are also unconditionally in
// scope here (source 1), since the abandoned-workspace gating in spec
// §4.3's closing paragraph applies only to a *workspace package's* primary
// entry file — the root manifest isn't a workspace package, and a
// workspace package's gated primary entry plus its exports/bin are already
// contributed by detectManifestEntries via the pre-built ResolutionContext.
// Kept separate from the ResolutionContext-driven sources because it needs
// its own filesystem access (resolvectx.LoadManifest, resolvectx.WorkspaceDirs).
func detectScriptsAndRootManifest(repoRoot string, knownFiles []string, result *Result) {
	known := make(map[string]bool, len(knownFiles))
	for _, f := range knownFiles {
		known[filepath.ToSlash(f)] = true
	}

	dirs := append([]string{""}, resolvectx.WorkspaceDirs(repoRoot)...)
	for _, dir := range dirs {
		absDir := repoRoot
		if dir != "" {
			absDir = filepath.Join(repoRoot, dir)
		}
		pkg, ok := resolvectx.LoadManifest(absDir)
		if !ok {
			continue
		}

		targets := resolvectx.BinFiles(pkg.Bin)
		targets = append(targets, resolvectx.AllExportTargets(pkg.Exports)...)
		if dir == "" {
			// Root manifest: not subject to the abandoned-workspace gate.
			if pkg.Main != "" {
				targets = append(targets, pkg.Main)
			}
			if pkg.Module != "" {
				targets = append(targets, pkg.Module)
			}
			if pkg.Source != "" {
				targets = append(targets, pkg.Source)
			}
		}

		for _, target := range targets {
			all := buildToSourceRewrites(target)
			for i := range all {
				all[i] = filepath.ToSlash(filepath.Clean(filepath.Join(dir, all[i])))
			}
			for _, c := range all {
				if known[c] {
					result.add(c)
					break
				}
			}
		}

		for _, root := range resolvectx.ExtractScriptRoots(pkg.Scripts) {
			candidate := filepath.ToSlash(filepath.Join(dir, root))
			if known[candidate] {
				result.add(candidate)
			}
		}
	}
}

// detectDynamicPackageFields reads cfg.DynamicPackageFields — manifest
// field names whose string or string-array value is a source path treated
// as an additional root (spec §6 "dynamicPackageFields", for example a
// plugin manifest's `plugins` field).
func detectDynamicPackageFields(repoRoot string, knownFiles []string, cfg Config, result *Result) {
	if len(cfg.DynamicPackageFields) == 0 {
		return
	}
	known := make(map[string]bool, len(knownFiles))
	for _, f := range knownFiles {
		known[filepath.ToSlash(f)] = true
	}

	dirs := append([]string{""}, resolvectx.WorkspaceDirs(repoRoot)...)
	for _, dir := range dirs {
		absDir := repoRoot
		if dir != "" {
			absDir = filepath.Join(repoRoot, dir)
		}
		data, err := os.ReadFile(filepath.Join(absDir, "package.json"))
		if err != nil {
			continue
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(data, &obj) != nil {
			continue
		}
		for _, field := range cfg.DynamicPackageFields {
			raw, ok := obj[field]
			if !ok {
				continue
			}
			for _, target := range stringOrStringArray(raw) {
				candidate := filepath.ToSlash(filepath.Join(dir, target))
				if known[candidate] {
					result.add(candidate)
				}
			}
		}
	}
}

func stringOrStringArray(raw json.RawMessage) []string {
	var single string
	if json.Unmarshal(raw, &single) == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		return many
	}
	return nil
}

// buildToSourceRewrites mirrors resolvectx's internal dist/lib/build/out
// rewrite for the small set of candidates this package needs to re-derive
// (the resolvectx helper itself is unexported, since its primary caller is
// resolvectx.BuildContext; entry-point detection re-walks the same
// dist-dir convention directly against the target path).
func buildToSourceRewrites(target string) []string {
	candidates := []string{target}
	dir := filepath.ToSlash(filepath.Dir(target))
	base := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	segs := strings.Split(dir, "/")
	for i, seg := range segs {
		for _, bd := range []string{"dist", "lib", "build", "out"} {
			if seg != bd {
				continue
			}
			rewritten := make([]string, len(segs))
			copy(rewritten, segs)
			rewritten[i] = "src"
			stem := strings.Join(rewritten, "/") + "/" + base
			candidates = append(candidates, stem)
			for _, ext := range []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"} {
				candidates = append(candidates, stem+ext)
			}
		}
	}
	return candidates
}
