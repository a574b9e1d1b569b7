package resolvectx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dusk-indust/deadcode/internal/model"
)

// tsconfigRaw mirrors the subset of tsconfig.json fields the extractor
// consumes. CompilerOptions.Paths values are arrays per the modern spec;
// a bare-string value is not normalized, so it fails to unmarshal and the
// whole config is skipped.
type tsconfigRaw struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

var trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)

// loadTSConfig reads and parses a single tsconfig.json, stripping comments
// and trailing commas. Any parse failure returns a zero-value config and no
// error — failure is silent per spec §4.1 / §7 (configuration parse
// failures never abort the extractor).
func loadTSConfig(path string) (tsconfigRaw, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tsconfigRaw{}, false
	}
	data = stripJSONComments(data)
	data = trailingCommaRegex.ReplaceAll(data, []byte("$1"))

	var cfg tsconfigRaw
	if err := json.Unmarshal(data, &cfg); err != nil {
		return tsconfigRaw{}, false
	}
	return cfg, true
}

func parseExtends(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

// resolvedPaths is one tsconfig's contribution to the alias table, already
// re-rooted to the project directory.
type resolvedPaths struct {
	baseURL string // project-relative, resolved from this config's own dir + its baseUrl
	aliases map[string]string
}

// loadTSConfigChain follows `extends` (including the array form) starting
// at configPath, re-rooting every `paths` entry to the project root by
// combining the tsconfig's own directory, its baseUrl (default "."), and
// the alias target. Child configs override parent entries sharing the same
// alias prefix. Cycles are detected and truncated, never causing a crash.
func loadTSConfigChain(repoRoot, configPath string) resolvedPaths {
	visited := make(map[string]bool)
	return loadChainRec(repoRoot, configPath, visited)
}

func loadChainRec(repoRoot, configPath string, visited map[string]bool) resolvedPaths {
	abs := filepath.Clean(configPath)
	if visited[abs] {
		return resolvedPaths{aliases: map[string]string{}}
	}
	visited[abs] = true

	cfg, ok := loadTSConfig(abs)
	if !ok {
		return resolvedPaths{aliases: map[string]string{}}
	}

	configDir := filepath.Dir(abs)
	result := resolvedPaths{aliases: map[string]string{}}

	// Parent configs load first so children can override.
	for _, ext := range parseExtends(cfg.Extends) {
		parentPath := ext
		if !strings.HasSuffix(parentPath, ".json") {
			parentPath += ".json"
		}
		if !filepath.IsAbs(parentPath) {
			parentPath = filepath.Join(configDir, parentPath)
		}
		parent := loadChainRec(repoRoot, parentPath, visited)
		if parent.baseURL != "" {
			result.baseURL = parent.baseURL
		}
		for k, v := range parent.aliases {
			result.aliases[k] = v
		}
	}

	baseURL := cfg.CompilerOptions.BaseURL
	if baseURL == "" {
		baseURL = "."
	}
	baseAbs := filepath.Clean(filepath.Join(configDir, baseURL))
	if rel, err := filepath.Rel(repoRoot, baseAbs); err == nil {
		result.baseURL = toSlash(rel)
	}

	for prefix, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]
		targetAbs := filepath.Clean(filepath.Join(baseAbs, target))
		rel, err := filepath.Rel(repoRoot, targetAbs)
		if err != nil {
			continue
		}
		result.aliases[prefix] = toSlash(rel)
	}

	return result
}

// toSlash normalizes a filepath.Rel result to forward slashes and strips a
// leading "./" if present.
func toSlash(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// aliasRulesFromPaths converts a tsconfig paths map (prefix -> target,
// both possibly containing a single trailing "/*") into AliasRule entries,
// sorted by descending prefix length so the longest, most specific prefix
// is tried first (spec §4.1, §9).
func aliasRulesFromPaths(aliases map[string]string) []model.AliasRule {
	rules := make([]model.AliasRule, 0, len(aliases))
	for prefix, target := range aliases {
		p := strings.TrimSuffix(prefix, "*")
		t := strings.TrimSuffix(target, "*")
		rules = append(rules, model.AliasRule{Prefix: p, Target: t})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].Prefix) != len(rules[j].Prefix) {
			return len(rules[i].Prefix) > len(rules[j].Prefix)
		}
		return rules[i].Prefix < rules[j].Prefix
	})
	return rules
}
