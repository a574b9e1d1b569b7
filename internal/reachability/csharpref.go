package reachability

import (
	"regexp"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	csharpNewRe       = regexp.MustCompile(`\bnew\s+([A-Za-z_][A-Za-z0-9_]*)\s*[(<]`)
	csharpTypeOfRe    = regexp.MustCompile(`\btypeof\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)`)
	csharpGenericArgRe = regexp.MustCompile(`<\s*([A-Za-z_][A-Za-z0-9_]*)\s*>`)
)

// BuildCSharpRefEdges implements spec §4.6 step 6 and §9's open question:
// a pre-built map from a C# file to every other file it references via
// `new T()`, `typeof(T)`, or a generic type argument. Extension-method
// invocations are intentionally not modeled (they require resolving an
// unqualified method call to the static class that declares it as an
// extension, which needs a symbol table this package doesn't build); the
// three patterns here cover the common case without it.
//
// readFile supplies each C# file's raw text; classOwner maps a class's
// simple name to the file that declares it (built once from every
// record's Classes list, any language — a dead-code scan may have a C#
// file reference a class from another file the index already knows).
func BuildCSharpRefEdges(records []model.FileRecord, readFile func(string) (string, bool)) CSharpRefEdges {
	if readFile == nil {
		return nil
	}

	classOwner := make(map[string]string)
	for _, rec := range records {
		for _, cls := range rec.Classes {
			classOwner[cls.Name] = rec.RelativePath
		}
	}

	edges := CSharpRefEdges{}
	for _, rec := range records {
		if rec.Language != model.LangCSharp {
			continue
		}
		text, ok := readFile(rec.RelativePath)
		if !ok {
			continue
		}
		seen := map[string]bool{}
		collect := func(re *regexp.Regexp) {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				name := m[1]
				if owner, found := classOwner[name]; found && owner != rec.RelativePath && !seen[owner] {
					seen[owner] = true
					edges[rec.RelativePath] = append(edges[rec.RelativePath], owner)
				}
			}
		}
		collect(csharpNewRe)
		collect(csharpTypeOfRe)
		collect(csharpGenericArgRe)
	}
	return edges
}
