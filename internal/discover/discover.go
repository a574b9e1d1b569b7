// Package discover implements the candidate-file-supply collaborator
// spec §6 describes as external to the core: it walks a project root and
// returns every file the analyzer should treat as a candidate, honoring
// .gitignore, vendored-directory exclusion, and user-configured exclude
// globs. The core (internal/analyzer and below) never walks the
// filesystem itself; this is its only caller of filepath.WalkDir.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dusk-indust/deadcode/internal/parse"
)

// defaultVendorDirs are always excluded regardless of .gitignore content
// (spec §6 "excluding vendored directories ... and version-control
// metadata").
var defaultVendorDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"vendor":       true,
	"venv":         true,
	".venv":        true,
	"__pycache__":  true,
	"target":       true, // Rust/Java build output
}

// Options carries the project-relative exclude globs from the
// configuration surface (spec §6 "exclude").
type Options struct {
	Exclude []string
}

// Walk returns every candidate file under root, project-relative and
// forward-slash-normalized, sorted for deterministic downstream ordering
// (spec §5 "Ordering guarantees"). Only files with a recognized language
// extension (internal/parse.LanguageForPath) are returned — source
// discovery, not generic file listing.
func Walk(root string, opts Options) ([]string, error) {
	gi := loadGitignore(root)

	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		base := filepath.Base(rel)
		if d.IsDir() {
			if defaultVendorDirs[base] || strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if matchesAny(opts.Exclude, rel) {
			return nil
		}
		if parse.LanguageForPath(rel) == "" {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
		if strings.Contains(path, strings.Trim(p, "*")) && strings.Contains(p, "**") {
			return true
		}
	}
	return false
}

// loadGitignore reads root/.gitignore, if present. A missing or malformed
// file yields no filter, never an error (mirrors the "failure semantics"
// pattern the rest of the core applies to optional configuration, spec
// §4.1).
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
