package resolvectx

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/dusk-indust/deadcode/internal/model"
)

// viteConfigNames are the conventional bundler config filenames scanned for
// resolve.alias entries (spec §4.1).
var viteConfigNames = []string{
	"vite.config.ts", "vite.config.js", "vite.config.mjs",
	"vitest.config.ts", "vitest.config.js",
}

// viteAliasResolveRegex matches entries of the form
// `'@': resolve(__dirname, './src')` or `"@": path.resolve(__dirname, "./src")`.
var viteAliasResolveRegex = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*(?:path\.)?resolve\(\s*__dirname\s*,\s*['"]([^'"]+)['"]\s*\)`)

// viteAliasPlainRegex matches entries of the form `'@': './src'`.
var viteAliasPlainRegex = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*['"](\.[^'"]*)['"]`)

// scanViteAliases reads every conventional vite/vitest config in dir and
// extracts `resolve.alias` entries with two regex patterns, per spec §4.1.
// A missing or unreadable config contributes nothing and never errors.
func scanViteAliases(dir string) []model.AliasRule {
	var rules []model.AliasRule
	for _, name := range viteConfigNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		text := string(data)

		for _, m := range viteAliasResolveRegex.FindAllStringSubmatch(text, -1) {
			rules = append(rules, model.AliasRule{Prefix: m[1], Target: toSlash(m[2]) + "/"})
		}
		for _, m := range viteAliasPlainRegex.FindAllStringSubmatch(text, -1) {
			rules = append(rules, model.AliasRule{Prefix: m[1], Target: toSlash(m[2]) + "/"})
		}
	}
	return rules
}
