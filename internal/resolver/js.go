package resolver

import (
	"path/filepath"
	"strings"
)

// resolveJS implements the JavaScript/TypeScript strategy (spec §4.5).
func (r *Resolver) resolveJS(fromFile, specifier string) []string {
	if specifier == "." || strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		base := filepath.Join(dirOf(fromFile), specifier)
		return r.probe(base)
	}

	if strings.HasPrefix(specifier, "/") {
		dir := packageDirFor(r, fromFile)
		baseURL, hasBaseURL := r.ctx.PackageBaseURLs[dir]
		if !hasBaseURL {
			baseURL, hasBaseURL = r.ctx.PackageBaseURLs[""]
		}
		if !hasBaseURL {
			return nil
		}
		return r.probe(filepath.Join(baseURL, strings.TrimPrefix(specifier, "/")))
	}

	dir := packageDirFor(r, fromFile)
	for _, rule := range r.mergedAliases(dir) {
		if !strings.HasPrefix(specifier, rule.Prefix) {
			continue
		}
		rest := strings.TrimPrefix(specifier, rule.Prefix)

		if ws, ok := workspacePackageByAliasTarget(r, rule.Target); ok {
			if resolved := r.resolveWithinWorkspace(ws, rest); resolved != nil {
				return resolved
			}
		}

		return r.probe(filepath.Join(rule.Target, rest))
	}

	if ws, subpath, ok := r.matchWorkspaceBareSpecifier(specifier); ok {
		if resolved := r.resolveWithinWorkspace(ws, subpath); resolved != nil {
			return resolved
		}
	}

	if baseURL, hasBaseURL := r.ctx.PackageBaseURLs[dir]; hasBaseURL {
		if resolved := r.probe(filepath.Join(baseURL, specifier)); resolved != nil {
			return resolved
		}
	} else if baseURL, hasBaseURL := r.ctx.PackageBaseURLs[""]; hasBaseURL {
		if resolved := r.probe(filepath.Join(baseURL, specifier)); resolved != nil {
			return resolved
		}
	}

	return nil
}

// packageDirFor returns the workspace package directory that owns fromFile,
// or "" if fromFile isn't under any known workspace package (spec §4.5
// "the most-specific packageAliases for the directory containing fromFile").
func packageDirFor(r *Resolver, fromFile string) string {
	best := ""
	for _, ws := range r.ctx.WorkspacePackages {
		if ws.Dir != "" && strings.HasPrefix(fromFile, ws.Dir+"/") && len(ws.Dir) > len(best) {
			best = ws.Dir
		}
	}
	return best
}

// workspacePackageByAliasTarget returns the workspace package whose
// directory equals an alias rule's target, if any (an alias may point
// straight at a workspace package's directory rather than a plain src/
// path, in which case subpaths should first try the exportsMap).
func workspacePackageByAliasTarget(r *Resolver, target string) (*workspacePkg, bool) {
	target = strings.TrimSuffix(target, "/")
	for name, ws := range r.ctx.WorkspacePackages {
		if ws.Dir == target {
			return &workspacePkg{name: name, dir: ws.Dir, entryPoint: ws.EntryPoint, exportsMap: ws.ExportsMap}, true
		}
	}
	return nil, false
}

// matchWorkspaceBareSpecifier splits a bare specifier into a workspace
// package name (exact, or scoped/unscoped prefix) and the remaining
// subpath, per spec §4.5 "When a workspace package name is the prefix".
func (r *Resolver) matchWorkspaceBareSpecifier(specifier string) (*workspacePkg, string, bool) {
	if ws, ok := r.ctx.WorkspacePackages[specifier]; ok {
		return &workspacePkg{name: specifier, dir: ws.Dir, entryPoint: ws.EntryPoint, exportsMap: ws.ExportsMap}, "", true
	}

	var pkgName, subpath string
	if strings.HasPrefix(specifier, "@") {
		afterScope := strings.Index(specifier[1:], "/")
		if afterScope == -1 {
			return nil, "", false
		}
		scopeEnd := afterScope + 1
		secondSlash := strings.Index(specifier[scopeEnd+1:], "/")
		if secondSlash == -1 {
			return nil, "", false
		}
		splitAt := scopeEnd + 1 + secondSlash
		pkgName = specifier[:splitAt]
		subpath = specifier[splitAt+1:]
	} else {
		slash := strings.Index(specifier, "/")
		if slash == -1 {
			return nil, "", false
		}
		pkgName = specifier[:slash]
		subpath = specifier[slash+1:]
	}

	ws, ok := r.ctx.WorkspacePackages[pkgName]
	if !ok {
		return nil, "", false
	}
	return &workspacePkg{name: pkgName, dir: ws.Dir, entryPoint: ws.EntryPoint, exportsMap: ws.ExportsMap}, subpath, true
}

// workspacePkg is a minimal local view over model.WorkspacePackage used by
// the subpath-resolution helpers below.
type workspacePkg struct {
	name       string
	dir        string
	entryPoint string
	exportsMap map[string]string
}

// resolveWithinWorkspace resolves a subpath (possibly empty, meaning the
// package's own entry point) against a workspace package: exportsMap
// first, then dir/subpath, finally dir/src/subpath (spec §4.5). The
// subpath itself is not rewritten from a build directory to src/.
func (r *Resolver) resolveWithinWorkspace(ws *workspacePkg, subpath string) []string {
	if subpath == "" {
		if ws.entryPoint != "" {
			return []string{ws.entryPoint}
		}
		return nil
	}

	key := "./" + subpath
	if target, ok := ws.exportsMap[key]; ok {
		if resolved := r.probe(target); resolved != nil {
			return resolved
		}
	}

	if resolved := r.probe(filepath.Join(ws.dir, subpath)); resolved != nil {
		return resolved
	}
	return r.probe(filepath.Join(ws.dir, "src", subpath))
}
