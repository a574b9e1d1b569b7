package resolver

import (
	"path/filepath"
	"strings"
)

// resolvePython implements the Python strategy (spec §4.5 "Python"):
// dotted-absolute imports are reduced to a path and tried with
// progressively shorter prefixes (the last segment may be a symbol, not a
// submodule); relative imports (".", "..", "...mod") ascend that many
// directories from fromFile first.
func (r *Resolver) resolvePython(fromFile, specifier string) []string {
	if strings.HasPrefix(specifier, ".") {
		return r.resolvePythonRelative(fromFile, specifier)
	}
	return r.resolvePythonDotted(specifier)
}

// resolvePythonRelative ascends len(leadingDots) directories from fromFile's
// own directory and resolves the remainder (if any) the same way an
// absolute dotted path would be, rooted at that directory instead of the
// project root.
func (r *Resolver) resolvePythonRelative(fromFile, specifier string) []string {
	dots := 0
	for dots < len(specifier) && specifier[dots] == '.' {
		dots++
	}
	rest := specifier[dots:]

	dir := dirOf(fromFile)
	// One leading dot means "this package" (no ascent); each further dot
	// ascends one more directory.
	for i := 1; i < dots; i++ {
		dir = dirOf(dir)
	}

	if rest == "" {
		return r.probePythonPackage(dir)
	}

	segs := strings.Split(rest, ".")
	base := filepath.ToSlash(filepath.Join(append([]string{dir}, segs...)...))
	if resolved := r.probePythonModule(base); resolved != nil {
		return resolved
	}
	// Last segment may be a symbol name (from .pkg import symbol): retry
	// with a progressively shorter prefix.
	for len(segs) > 1 {
		segs = segs[:len(segs)-1]
		base = filepath.ToSlash(filepath.Join(append([]string{dir}, segs...)...))
		if resolved := r.probePythonModule(base); resolved != nil {
			return resolved
		}
	}
	return nil
}

// resolvePythonDotted resolves an absolute dotted specifier ("a.b.c"),
// trying the full path first and then progressively shorter prefixes so
// that "from lib.utils import capitalize" still finds lib/utils.py even
// though "capitalize" is a symbol, not a submodule (spec §4.5).
func (r *Resolver) resolvePythonDotted(specifier string) []string {
	segs := strings.Split(specifier, ".")
	for len(segs) > 0 {
		base := strings.Join(segs, "/")
		if resolved := r.probePythonModule(base); resolved != nil {
			return resolved
		}
		segs = segs[:len(segs)-1]
	}
	return nil
}

// probePythonModule tries base.py then base/__init__.py.
func (r *Resolver) probePythonModule(base string) []string {
	if rec, ok := r.idx.ByPath[base+".py"]; ok {
		return []string{rec.RelativePath}
	}
	if rec, ok := r.idx.ByPath[base+"/__init__.py"]; ok {
		return []string{rec.RelativePath}
	}
	return nil
}

// probePythonPackage resolves a bare "." (no remainder after the leading
// dots) to the package's own __init__.py.
func (r *Resolver) probePythonPackage(dir string) []string {
	if rec, ok := r.idx.ByPath[dir+"/__init__.py"]; ok {
		return []string{rec.RelativePath}
	}
	return nil
}
