// Package resolvectx implements C1 (path-alias extractor) and C2
// (workspace indexer): it reads configuration rooted at the project
// directory — tsconfig chains, vite configs, package manifests, go.mod,
// Java source-root layout — and produces the read-only ResolutionContext
// that the resolver (C5) consults for the rest of the scan (spec §4.1-4.2).
package resolvectx

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/dusk-indust/deadcode/internal/model"
)

// WorkspaceDirs returns every discovered monorepo package directory
// (project-relative), the same set BuildContext uses internally to
// populate ResolutionContext.WorkspacePackages. Exported for
// internal/entrypoint, which needs the raw directory list to scan each
// package's manifest for root candidates independent of whether that
// package ended up with a resolved entry point.
func WorkspaceDirs(repoRoot string) []string {
	return expandWorkspaceDirs(repoRoot, discoverWorkspacePatterns(repoRoot))
}

// BuildContext builds a ResolutionContext for repoRoot. knownFiles is the
// candidate file set (project-relative, forward-slash paths) used to probe
// whether a rewritten or fallback candidate actually exists — the
// extractor itself does no further filesystem scanning of source files.
//
// Any single config file that fails to parse is silently skipped; a
// missing config contributes nothing. BuildContext never returns an error
// (spec §4.1 "Failure semantics").
func BuildContext(repoRoot string, knownFiles []string) *model.ResolutionContext {
	ctx := model.NewResolutionContext()

	known := make(map[string]bool, len(knownFiles))
	for _, f := range knownFiles {
		known[filepath.ToSlash(f)] = true
	}

	// --- Global aliases: root tsconfig chain + vite configs.
	rootAliases := map[string]string{}
	if fileExists(filepath.Join(repoRoot, "tsconfig.json")) {
		chain := loadTSConfigChain(repoRoot, filepath.Join(repoRoot, "tsconfig.json"))
		for k, v := range chain.aliases {
			rootAliases[k] = v
		}
		if chain.baseURL != "" {
			ctx.PackageBaseURLs[""] = chain.baseURL
		}
	}
	globalRules := aliasRulesFromPaths(rootAliases)
	globalRules = append(globalRules, scanViteAliases(repoRoot)...)
	sort.SliceStable(globalRules, func(i, j int) bool {
		return len(globalRules[i].Prefix) > len(globalRules[j].Prefix)
	})
	ctx.GlobalAliases = globalRules

	// --- Go module path.
	ctx.GoModulePath = scanGoModulePath(repoRoot)

	// --- Java source roots.
	ctx.JavaSourceRoots = discoverJavaSourceRoots(knownFiles)

	// --- Workspace discovery (C2).
	patterns := discoverWorkspacePatterns(repoRoot)
	dirs := expandWorkspaceDirs(repoRoot, patterns)

	manifests := make(map[string]*PackageManifest, len(dirs))
	for _, dir := range dirs {
		pkg := loadWorkspacePackage(ctx, repoRoot, dir, known)
		if pkg != nil {
			manifests[dir] = pkg
		}

		// Per-package tsconfig overrides the global aliases for files
		// under that package directory (spec §4.5).
		absTS := filepath.Join(repoRoot, dir, "tsconfig.json")
		if fileExists(absTS) {
			chain := loadTSConfigChain(repoRoot, absTS)
			merged := map[string]string{}
			for k, v := range rootAliases {
				merged[k] = v
			}
			for k, v := range chain.aliases {
				merged[k] = v
			}
			ctx.PackageAliases[dir] = aliasRulesFromPaths(merged)
			if chain.baseURL != "" {
				ctx.PackageBaseURLs[dir] = chain.baseURL
			}
		}
	}

	markInternalDependents(ctx, manifests)

	return ctx
}

// loadWorkspacePackage loads dir's package.json (if any), records its
// WorkspacePackage entry (resolved entry point + exports map, spec §4.2),
// and returns the raw manifest for the dependency pass.
func loadWorkspacePackage(ctx *model.ResolutionContext, repoRoot, dir string, known map[string]bool) *PackageManifest {
	absDir := filepath.Join(repoRoot, dir)
	pkg, ok := LoadManifest(absDir)
	if !ok || pkg.Name == "" {
		return nil
	}

	ws := &model.WorkspacePackage{
		Name:       pkg.Name,
		Dir:        dir,
		ExportsMap: map[string]string{},
	}

	for subpath, target := range parseExportsMap(pkg.Exports) {
		resolved := resolveRelativeToDir(dir, target, known)
		if resolved != "" {
			ws.ExportsMap[subpath] = resolved
		}
	}

	ws.EntryPoint = resolvePackageEntryPoint(dir, pkg, known)

	for _, b := range BinFiles(pkg.Bin) {
		ws.BinFiles = append(ws.BinFiles, filepath.ToSlash(filepath.Join(dir, b)))
	}

	ctx.WorkspacePackages[pkg.Name] = ws
	return pkg
}

// resolvePackageEntryPoint applies the priority chain from spec §4.2:
// source > exports["."] > module > main, each rewritten build-dir-to-src
// and verified against known; if none verify, falls back to a literal
// source path parsed out of the build script, then to a fixed stem list
// (spec §9 Open Question: the fallback stem list is currently fixed, not
// project-configurable).
func resolvePackageEntryPoint(dir string, pkg *PackageManifest, known map[string]bool) string {
	var candidates []string
	if pkg.Source != "" {
		candidates = append(candidates, pkg.Source)
	}
	if dot := extractDotExport(pkg.Exports); dot != "" {
		candidates = append(candidates, dot)
	}
	if pkg.Module != "" {
		candidates = append(candidates, pkg.Module)
	}
	if pkg.Main != "" {
		candidates = append(candidates, pkg.Main)
	}

	for _, c := range candidates {
		all := buildToSourceCandidates(c)
		for i, a := range all {
			all[i] = filepath.ToSlash(filepath.Join(dir, a))
		}
		if resolved := probeKnown(known, all); resolved != "" {
			return resolved
		}
	}

	// Consult the build script for a literal source path.
	if buildCmd, ok := pkg.Scripts["build"]; ok {
		for _, root := range scriptInvocationRegex.FindAllStringSubmatch(buildCmd, -1) {
			candidate := filepath.ToSlash(filepath.Join(dir, root[1]))
			if known[candidate] {
				return candidate
			}
		}
	}

	// Fixed fallback stem list.
	for _, stem := range entryFallbackStems {
		base := filepath.ToSlash(filepath.Join(dir, stem))
		exts := append(append([]string{}, jsExtensions...), jsIndexExtensions...)
		all := make([]string, 0, len(exts)+1)
		all = append(all, base)
		for _, e := range exts {
			all = append(all, base+e)
		}
		if resolved := probeKnown(known, all); resolved != "" {
			return resolved
		}
	}

	return ""
}

// extractDotExport pulls the "." condition out of an `exports` field,
// handling the bare-string form ("exports": "./src/index.ts") and the
// object form ("exports": {".": "./src/index.ts", ...}).
func extractDotExport(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if v, ok := obj["."]; ok {
		return resolveConditionalExport(v)
	}
	return ""
}

// resolveRelativeToDir resolves a raw exports-map target (e.g. "./src/x.ts")
// relative to a package directory and probes it with source-extension
// fallback, per spec §4.2.
func resolveRelativeToDir(dir, target string, known map[string]bool) string {
	base := filepath.ToSlash(filepath.Join(dir, target))
	exts := append(append([]string{}, jsExtensions...), jsIndexExtensions...)
	all := []string{base}
	for _, e := range exts {
		all = append(all, base+e)
	}
	all = append(all, buildToSourceCandidates(base)...)
	return probeKnown(known, all)
}

// markInternalDependents implements the "abandoned workspace" guard
// (spec §4.3, §9): a workspace package's primary entry becomes eligible as
// a root only if another workspace package depends on it by name, or it
// depends on another internal package itself.
func markInternalDependents(ctx *model.ResolutionContext, manifests map[string]*PackageManifest) {
	names := make(map[string]bool, len(ctx.WorkspacePackages))
	for name := range ctx.WorkspacePackages {
		names[name] = true
	}

	dependedOn := make(map[string]bool)
	for _, ws := range ctx.WorkspacePackages {
		pkg, ok := manifests[ws.Dir]
		if !ok {
			continue
		}
		for dep := range pkg.Dependencies {
			if names[dep] {
				dependedOn[dep] = true
				ws.DependsOnInternal = true
			}
		}
		for dep := range pkg.DevDependencies {
			if names[dep] {
				dependedOn[dep] = true
			}
		}
	}
	for name, ws := range ctx.WorkspacePackages {
		if dependedOn[name] {
			ws.DependsOnInternal = true
		}
	}
}
