package resolver

import (
	"path/filepath"
	"strings"
)

// resolveCSharp implements the C# strategy (spec §4.5 "C#"): a dotted
// namespace is treated as a directory-path hint, since the conventional
// C# project layout mirrors namespace segments onto folder names.
func (r *Resolver) resolveCSharp(specifier string) []string {
	segs := strings.Split(specifier, ".")
	for i := 0; i < len(segs); i++ {
		dir := strings.Join(segs[i:], "/")
		if files := r.csharpFilesUnder(dir); files != nil {
			return files
		}
	}

	// Last-segment heuristic: the final namespace segment frequently
	// names the containing directory even when no prefix matched above
	// (e.g. a namespace alias that doesn't mirror the folder layout).
	if len(segs) > 0 {
		last := segs[len(segs)-1]
		var matches []string
		for path, rec := range r.idx.ByPath {
			if filepath.Base(filepath.Dir(path)) == last && strings.HasSuffix(path, ".cs") {
				matches = append(matches, rec.RelativePath)
			}
		}
		if matches != nil {
			return matches
		}
	}
	return nil
}

// csharpFilesUnder returns every .cs file directly under dir.
func (r *Resolver) csharpFilesUnder(dir string) []string {
	dir = filepath.ToSlash(filepath.Clean(dir))
	var out []string
	for path := range r.idx.ByPath {
		if dirOf(path) != dir {
			continue
		}
		if strings.HasSuffix(path, ".cs") {
			out = append(out, path)
		}
	}
	return out
}
