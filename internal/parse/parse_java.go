package parse

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	javaPackageRe    = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z0-9_.]+)\s*;`)
	javaImportRe     = regexp.MustCompile(`(?m)^\s*import\s+(static\s+)?([A-Za-z0-9_.*]+)\s*;`)
	javaMainMethodRe = regexp.MustCompile(`(?m)\bpublic\s+static\s+void\s+main\s*\(`)
	javaAnnotationRe = regexp.MustCompile(`(?m)^\s*@([A-Za-z_][A-Za-z0-9_.]*)\s*(\(([^)]*)\))?\s*$`)
	javaClassRe      = regexp.MustCompile(`(?m)^\s*(?:public\s+|private\s+|protected\s+|final\s+|abstract\s+|static\s+)*(?:class|interface|enum|record)\s+([A-Za-z0-9_]+)`)
)

// springStereotypes are the Spring/Jakarta annotations the spec's
// isSpringComponent metadata flag and entry-point DI-decorator source both
// recognize (spec §3, §4.3 source 7).
var springStereotypes = map[string]bool{
	"SpringBootApplication": true,
	"RestController":        true,
	"Controller":            true,
	"Service":                true,
	"Repository":             true,
	"Component":              true,
	"Configuration":          true,
	"Bean":                   true,
}

// parseJavaKotlin extracts the package/import/class/annotation facts the
// resolver (C5) and entry-point detector (C3) consult (spec §3, §4.3,
// §4.5 "Java/Kotlin"). Kotlin shares the same surface syntax for these
// constructs closely enough that one extractor serves both (the file's
// own Language tag, set by the caller, is what actually distinguishes
// them downstream).
func parseJavaKotlin(rec *model.FileRecord, source []byte) {
	text := string(source)

	if m := javaPackageRe.FindStringSubmatch(text); m != nil {
		rec.Metadata.PackageName = m[1]
	}

	for _, m := range javaImportRe.FindAllStringSubmatchIndex(text, -1) {
		isStatic := m[2] != -1
		target := text[m[4]:m[5]]
		line := lineOf(source, m[0])
		kind := model.ImportJavaClass
		switch {
		case isStatic:
			kind = model.ImportJavaStatic
		case strings.HasSuffix(target, ".*"):
			kind = model.ImportJavaWildcard
		}
		rec.Imports = append(rec.Imports, model.Import{Module: target, Kind: kind, Line: line})
	}

	rec.Metadata.HasMainMethod = javaMainMethodRe.MatchString(text)

	parseJavaClasses(rec, text)
	for _, cls := range rec.Classes {
		for _, dec := range cls.Decorators {
			if springStereotypes[dec.Name] {
				rec.Metadata.IsSpringComponent = true
			}
			rec.Annotations = append(rec.Annotations, model.Annotation{Name: dec.Name})
		}
	}
}

func parseJavaClasses(rec *model.FileRecord, text string) {
	lines := strings.Split(text, "\n")
	var pending []model.Decorator

	for _, line := range lines {
		if m := javaAnnotationRe.FindStringSubmatch(line); m != nil {
			var args []string
			if m[3] != "" {
				for _, a := range strings.Split(m[3], ",") {
					args = append(args, strings.TrimSpace(a))
				}
			}
			pending = append(pending, model.Decorator{Name: m[1], Args: args})
			continue
		}
		if m := javaClassRe.FindStringSubmatch(line); m != nil {
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
