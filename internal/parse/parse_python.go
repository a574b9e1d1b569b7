package parse

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	pyImportRe      = regexp.MustCompile(`(?m)^\s*import\s+([A-Za-z0-9_.]+(?:\s*,\s*[A-Za-z0-9_.]+)*)`)
	pyFromImportRe  = regexp.MustCompile(`(?m)^\s*from\s+(\.*[A-Za-z0-9_.]*)\s+import\s+(.+)$`)
	pyMainBlockRe   = regexp.MustCompile(`(?m)^\s*if\s+__name__\s*==\s*['"]__main__['"]\s*:`)
)

// parsePython extracts import/from-import edges (spec §4.5 "Python") and
// the hasMainBlock metadata flag (spec §3).
func parsePython(rec *model.FileRecord, source []byte) {
	text := string(source)

	for _, m := range pyImportRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(source, m[0])
		for _, mod := range strings.Split(text[m[2]:m[3]], ",") {
			mod = strings.TrimSpace(mod)
			if mod == "" {
				continue
			}
			if idx := strings.Index(mod, " as "); idx >= 0 {
				mod = strings.TrimSpace(mod[:idx])
			}
			rec.Imports = append(rec.Imports, model.Import{Module: mod, Kind: model.ImportPythonDotted, Line: line})
		}
	}

	for _, m := range pyFromImportRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		names := text[m[4]:m[5]]
		line := lineOf(source, m[0])
		names = strings.Trim(strings.TrimSpace(names), "()")
		if strings.TrimSpace(names) == "*" {
			rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportPythonFrom, IsGlob: true, Line: line})
			continue
		}
		for _, sym := range strings.Split(names, ",") {
			sym = strings.TrimSpace(sym)
			if sym == "" {
				continue
			}
			if idx := strings.Index(sym, " as "); idx >= 0 {
				sym = strings.TrimSpace(sym[:idx])
			}
			rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportPythonFrom, Name: sym, Line: line})
		}
	}

	if pyMainBlockRe.Match(source) {
		rec.Metadata.HasMainBlock = true
	}
}
