// Package index implements C4: the reverse-index builder. It turns the
// parsed file set into the lookup tables the resolver (C5) consults during
// the BFS — byPath, byStem, the Java FQN map, and the Java package-directory
// map (spec §3, §4.4).
package index

import (
	"path/filepath"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

// Build constructs a ReverseIndex from every parsed file record (spec
// §4.4). javaSourceRoots is the ordered list from the resolution context
// (C1), consulted when a Java/Kotlin record's own Metadata.PackageName is
// empty.
func Build(records []model.FileRecord, javaSourceRoots []string) *model.ReverseIndex {
	idx := model.NewReverseIndex()

	for i := range records {
		rec := &records[i]
		idx.ByPath[rec.RelativePath] = rec

		stem := stemOf(rec.RelativePath)
		idx.ByStem[stem] = append(idx.ByStem[stem], rec)

		if rec.Language == model.LangJava || rec.Language == model.LangKotlin {
			indexJavaFile(idx, rec, javaSourceRoots)
		}
	}

	return idx
}

// stemOf strips the file extension, keeping the rest of the path intact
// (spec §3 byStem: "path without its extension").
func stemOf(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}

// indexJavaFile contributes a Java/Kotlin record to javaFqnMap and
// javaPackageDirMap (spec §4.4): preferentially uses the parser-extracted
// packageName plus the class name inferred from the filename; when
// packageName is absent, the path is matched against the discovered source
// roots to derive the package directory instead.
func indexJavaFile(idx *model.ReverseIndex, rec *model.FileRecord, javaSourceRoots []string) {
	className := classNameFromPath(rec.RelativePath)

	var pkgDir string
	if rec.Metadata.PackageName != "" {
		pkgDir = strings.ReplaceAll(rec.Metadata.PackageName, ".", "/")
		fqn := rec.Metadata.PackageName + "." + className
		idx.JavaFQNMap[fqn] = rec.RelativePath
	} else if root := matchingSourceRoot(rec.RelativePath, javaSourceRoots); root != "" {
		rel := strings.TrimPrefix(rec.RelativePath, root+"/")
		pkgDir = filepath.ToSlash(filepath.Dir(rel))
		if pkgDir == "." {
			pkgDir = ""
		}
		fqn := strings.ReplaceAll(pkgDir, "/", ".")
		if fqn != "" {
			fqn += "."
		}
		fqn += className
		idx.JavaFQNMap[fqn] = rec.RelativePath
	}

	if pkgDir != "" {
		idx.JavaPackageDirMap[pkgDir] = append(idx.JavaPackageDirMap[pkgDir], rec.RelativePath)
	}
}

// classNameFromPath infers a class's simple name from its filename (the
// conventional one-public-class-per-file rule), per spec §4.4.
func classNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".java"), ".kt")
}

// matchingSourceRoot returns the longest discovered Java source root that
// is a path prefix of path, or "" if none match.
func matchingSourceRoot(path string, roots []string) string {
	best := ""
	for _, root := range roots {
		if strings.HasPrefix(path, root+"/") && len(root) > len(best) {
			best = root
		}
	}
	return best
}
