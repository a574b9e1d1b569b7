package resolver

import (
	"path/filepath"
	"strings"
)

// resolveJava implements the Java/Kotlin six-strategy pipeline (spec
// §4.5), terminating on first success. The framework filter (strategy 4)
// runs *after* the FQN and wildcard/static-import strategies so that a
// repository which *is* the framework being filtered (e.g. the Spring
// codebase itself) doesn't discard its own internal edges (spec §9).
func (r *Resolver) resolveJava(specifier string) []string {
	// 1. Direct FQN lookup.
	if path, ok := r.idx.JavaFQNMap[specifier]; ok {
		return []string{path}
	}

	// 2. Wildcard expansion (pkg.*), limited to direct children of the
	// package directory.
	if strings.HasSuffix(specifier, ".*") {
		pkgDir := strings.ReplaceAll(strings.TrimSuffix(specifier, ".*"), ".", "/")
		if paths, ok := r.idx.JavaPackageDirMap[pkgDir]; ok {
			return append([]string{}, paths...)
		}
		return nil
	}

	// 3. Static-import reduction: strip the trailing member and retry
	// strategy 1.
	if idx := strings.LastIndex(specifier, "."); idx > 0 {
		if path, ok := r.idx.JavaFQNMap[specifier[:idx]]; ok {
			return []string{path}
		}
	}

	// 4. Framework filter.
	if hasAnyPrefix(specifier, javaFrameworkPrefixes...) {
		return nil
	}

	// 5. Source-root path resolution.
	packagePath := strings.ReplaceAll(specifier, ".", "/")
	for _, root := range r.ctx.JavaSourceRoots {
		for _, ext := range []string{".java", ".kt"} {
			candidate := filepath.ToSlash(root + "/" + packagePath + ext)
			if rec, ok := r.idx.ByPath[candidate]; ok {
				return []string{rec.RelativePath}
			}
		}
	}

	// 6. Class-name fallback: any file whose basename equals the last
	// segment, excluding anti-entry matches.
	lastSeg := specifier
	if idx := strings.LastIndex(specifier, "."); idx >= 0 {
		lastSeg = specifier[idx+1:]
	}
	var matches []string
	for path, rec := range r.idx.ByPath {
		if isAntiEntry(path) {
			continue
		}
		base := filepath.Base(path)
		if base == lastSeg+".java" || base == lastSeg+".kt" {
			matches = append(matches, rec.RelativePath)
		}
	}
	return matches
}
