package parse

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	goPackageRe    = regexp.MustCompile(`(?m)^\s*package\s+(\w+)`)
	goImportBlockRe = regexp.MustCompile(`(?s)import\s*\(\s*(.*?)\s*\)`)
	goImportLineRe  = regexp.MustCompile(`(?m)^\s*(?:\w+\s+)?"([^"]+)"`)
	goSingleImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:\w+\s+)?"([^"]+)"`)
	goMainFuncRe    = regexp.MustCompile(`(?m)^\s*func\s+main\s*\(\s*\)`)
	goInitFuncRe    = regexp.MustCompile(`(?m)^\s*func\s+init\s*\(\s*\)`)
)

// parseGo extracts import edges and the Go-specific metadata flags the
// entry-point detector consults (spec §4.3 source 6, §4.5 "Go").
func parseGo(rec *model.FileRecord, source []byte) {
	text := string(source)

	if m := goPackageRe.FindStringSubmatch(text); m != nil {
		rec.Metadata.IsMainPackage = m[1] == "main"
	}

	if block := goImportBlockRe.FindStringSubmatchIndex(text); block != nil {
		body := text[block[2]:block[3]]
		baseLine := lineOf(source, block[2])
		for i, l := range strings.Split(body, "\n") {
			if m := goImportLineRe.FindStringSubmatch(l); m != nil {
				rec.Imports = append(rec.Imports, model.Import{Module: m[1], Kind: model.ImportGo, Line: baseLine + i})
			}
		}
	}
	for _, m := range goSingleImportRe.FindAllStringSubmatchIndex(text, -1) {
		rec.Imports = append(rec.Imports, model.Import{Module: text[m[2]:m[3]], Kind: model.ImportGo, Line: lineOf(source, m[0])})
	}

	rec.Metadata.HasMainFunction = goMainFuncRe.Match(source)
	rec.Metadata.HasInitFunction = goInitFuncRe.Match(source)
	rec.Metadata.IsTestFile = strings.HasSuffix(rec.RelativePath, "_test.go")
}
