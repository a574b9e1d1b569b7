package parse

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	csharpUsingRe = regexp.MustCompile(`(?m)^\s*using\s+(static\s+)?([A-Za-z0-9_.]+)\s*;`)
	csharpClassRe = regexp.MustCompile(`(?m)^\s*(?:public\s+|private\s+|internal\s+|protected\s+|sealed\s+|abstract\s+|partial\s+|static\s+)*(?:class|interface|struct|record)\s+([A-Za-z0-9_]+)`)
	csharpAttrRe  = regexp.MustCompile(`(?m)^\s*\[([A-Za-z_][A-Za-z0-9_.]*)(\(([^)]*)\))?\]\s*$`)
)

// parseCSharp extracts `using` directives, class declarations, and
// attributes (spec §3, §4.5 "C#"). The reachability walker's
// pre-computed reference-edge map (spec §4.6 step 6: new T(), typeof(T),
// generic arguments, extension methods) is built separately by the
// analyzer from raw source text, since it needs cross-file name
// resolution this per-file extractor doesn't have access to.
func parseCSharp(rec *model.FileRecord, source []byte) {
	text := string(source)

	for _, m := range csharpUsingRe.FindAllStringSubmatchIndex(text, -1) {
		target := text[m[4]:m[5]]
		rec.Imports = append(rec.Imports, model.Import{Module: target, Kind: model.ImportCSharpUsing, Line: lineOf(source, m[0])})
	}

	lines := strings.Split(text, "\n")
	var pending []model.Decorator
	for _, line := range lines {
		if m := csharpAttrRe.FindStringSubmatch(line); m != nil {
			var args []string
			if m[3] != "" {
				for _, a := range strings.Split(m[3], ",") {
					args = append(args, strings.TrimSpace(a))
				}
			}
			pending = append(pending, model.Decorator{Name: m[1], Args: args})
			continue
		}
		if m := csharpClassRe.FindStringSubmatch(line); m != nil {
			rec.Classes = append(rec.Classes, model.ClassInfo{Name: m[1], Decorators: pending})
			pending = nil
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		pending = nil
	}
}
