package parse

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

var (
	jsImportFromRe   = regexp.MustCompile(`(?m)^\s*import\b[^;'"` + "`" + `]*?\bfrom\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	jsBareImportRe   = regexp.MustCompile(`(?m)^\s*import\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]\s*;?\s*$`)
	jsRequireRe      = regexp.MustCompile(`\brequire\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]\s*\)`)
	jsDynamicImport  = regexp.MustCompile(`\bimport\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]\s*\)`)
	jsGlobImport     = regexp.MustCompile(`import\.meta\.glob(?:Eager)?\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	jsExportFromRe   = regexp.MustCompile(`(?m)^\s*export\s*(\*|\{[^}]*\})\s*from\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	jsExportNamedRe  = regexp.MustCompile(`(?m)^\s*export\s+(default\s+)?(async\s+)?(function|class|const|let|var|interface|type|enum|namespace)\s+([A-Za-z0-9_$]+)`)
	jsExportBareList = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}\s*;?\s*$`)
	jsDecoratorRe    = regexp.MustCompile(`(?m)^\s*@([A-Za-z_$][A-Za-z0-9_$.]*)\s*(\(([^)]*)\))?\s*$`)
	jsClassRe        = regexp.MustCompile(`(?m)^\s*(?:export\s+(?:default\s+)?)?class\s+([A-Za-z0-9_$]+)`)
)

// parseJS extracts imports/exports/classes for the ECMAScript family
// (JavaScript and TypeScript share a syntax for the constructs the core
// cares about: import/export statements, require(), dynamic import(), and
// class decorators).
func parseJS(rec *model.FileRecord, source []byte) {
	text := string(source)

	for _, m := range jsImportFromRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportESFrom, Line: lineOf(source, m[0])})
	}
	for _, m := range jsBareImportRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportESImport, Line: lineOf(source, m[0])})
	}
	for _, m := range jsRequireRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportCommonJSRequire, Line: lineOf(source, m[0])})
	}
	for _, m := range jsDynamicImport.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportDynamic, Line: lineOf(source, m[0])})
	}
	for _, m := range jsGlobImport.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		rec.Imports = append(rec.Imports, model.Import{Module: module, Kind: model.ImportDynamic, IsGlob: true, Line: lineOf(source, m[0])})
	}

	for _, m := range jsExportFromRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[4]:m[5]]
		rec.Exports = append(rec.Exports, model.Export{Name: "*", Type: model.ExportReExport, SourceModule: module, Line: lineOf(source, m[0])})
	}
	for _, m := range jsExportNamedRe.FindAllStringSubmatchIndex(text, -1) {
		isDefault := m[2] != -1
		kind := text[m[6]:m[7]]
		name := text[m[8]:m[9]]
		rec.Exports = append(rec.Exports, model.Export{Name: name, Type: exportTypeFor(kind), IsDefault: isDefault, Line: lineOf(source, m[0])})
	}
	for _, m := range jsExportBareList.FindAllStringSubmatchIndex(text, -1) {
		names := text[m[2]:m[3]]
		line := lineOf(source, m[0])
		for _, entry := range strings.Split(names, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			local := entry
			if idx := strings.Index(entry, " as "); idx >= 0 {
				local = strings.TrimSpace(entry[:idx])
			}
			rec.Exports = append(rec.Exports, model.Export{Name: local, Type: model.ExportConst, Line: line})
		}
	}

	parseJSClasses(rec, text)
}

func exportTypeFor(kind string) model.ExportType {
	switch kind {
	case "function":
		return model.ExportFunction
	case "class":
		return model.ExportClass
	case "interface", "type":
		return model.ExportType_
	case "namespace":
		return model.ExportNamespace
	default:
		return model.ExportConst
	}
}

// parseJSClasses attaches any decorator lines immediately preceding a
// class declaration (spec §3 "classes: list of { name, decorators }"),
// mirroring the common Angular/Nest/TypeORM style of stacking decorators
// directly above the class they annotate.
func parseJSClasses(rec *model.FileRecord, text string) {
	lines := strings.Split(text, "\n")
	var pending []model.Decorator

	for _, line := range lines {
		if m := jsDecoratorRe.FindStringSubmatch(line); m != nil {
			var args []string
			if m[3] != "" {
				for _, a := range strings.Split(m[3], ",") {
					args = append(args, strings.TrimSpace(a))
				}
			}
			pending = append(pending, model.Decorator{Name: m[1], Args: args})
			continue
		}
		if m := jsClassRe.FindStringSubmatch(line); m != nil {
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
