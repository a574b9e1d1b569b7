package resolvectx

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// scanGoModulePath reads go.mod at the project root and returns its module
// path. Unlike the teacher's hand-rolled bufio.Scanner line match
// (graph/resolve.go's scanGoMod), this uses golang.org/x/mod/modfile so a
// malformed or unusual go.mod (block comments, multi-module workspace
// directives) still parses correctly; a missing or unparsable file yields
// an empty string, never an error (spec §4.1, §7).
func scanGoModulePath(repoRoot string) string {
	data, err := os.ReadFile(filepath.Join(repoRoot, "go.mod"))
	if err != nil {
		return ""
	}
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil || f.Module == nil {
		return ""
	}
	return f.Module.Mod.Path
}

// javaSourceRootSuffixes are the conventional Maven/Gradle source root
// suffixes searched for under the project (spec §4.1: "Java source-root
// discovery").
var javaSourceRootSuffixes = []string{
	filepath.Join("src", "main", "java"),
	filepath.Join("src", "main", "kotlin"),
	filepath.Join("src", "test", "java"),
	filepath.Join("src", "test", "kotlin"),
}

// discoverJavaSourceRoots walks knownFiles looking for any of the
// conventional Maven/Gradle layout suffixes anywhere in a path, returning
// each distinct root directory found (order: first occurrence, main before
// test in the fixed candidate order above, to keep results deterministic
// across identical inputs per spec invariant 2).
func discoverJavaSourceRoots(knownFiles []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, suffix := range javaSourceRootSuffixes {
		slashSuffix := filepath.ToSlash(suffix)
		for _, f := range knownFiles {
			idx := strings.Index(f, slashSuffix+"/")
			if idx == -1 {
				continue
			}
			root := f[:idx+len(slashSuffix)]
			if !seen[root] {
				seen[root] = true
				roots = append(roots, root)
			}
		}
	}
	return roots
}
