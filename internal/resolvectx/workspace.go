package resolvectx

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// conventionalWorkspaceDirs is the fallback list of directory names tried
// when no manifest declares an explicit workspace layout (spec §4.1).
var conventionalWorkspaceDirs = []string{"packages/*", "apps/*", "libs/*", "tools/*", "services/*"}

// nxConventionDirs are assumed when nx.json/workspace.json is present and
// no earlier source declared workspaces; neither file's contents are read
// (spec §4.1).
var nxConventionDirs = []string{"apps/*", "libs/*", "packages/*", "tools/*", "services/*"}

type pnpmWorkspaceYAML struct {
	Packages []string `yaml:"packages"`
}

type lernaJSON struct {
	Packages []string `json:"packages"`
}

type rushJSON struct {
	Projects []struct {
		ProjectFolder string `json:"projectFolder"`
	} `json:"projects"`
}

// discoverWorkspacePatterns returns the set of glob patterns identifying
// monorepo package directories, trying each declarative source in the
// order spec §4.1 lists, and falling back to convention when none apply.
func discoverWorkspacePatterns(repoRoot string) []string {
	if pkg, ok := LoadManifest(repoRoot); ok {
		if patterns := parseWorkspacePatterns(pkg.Workspaces); len(patterns) > 0 {
			return patterns
		}
	}

	if data, err := os.ReadFile(filepath.Join(repoRoot, "pnpm-workspace.yaml")); err == nil {
		var pw pnpmWorkspaceYAML
		if yaml.Unmarshal(data, &pw) == nil && len(pw.Packages) > 0 {
			return pw.Packages
		}
	}

	if data, err := os.ReadFile(filepath.Join(repoRoot, "lerna.json")); err == nil {
		var lj lernaJSON
		if json.Unmarshal(data, &lj) == nil && len(lj.Packages) > 0 {
			return lj.Packages
		}
	}

	if fileExists(filepath.Join(repoRoot, "nx.json")) || fileExists(filepath.Join(repoRoot, "workspace.json")) {
		return nxConventionDirs
	}

	if data, err := os.ReadFile(filepath.Join(repoRoot, "rush.json")); err == nil {
		var rj rushJSON
		if json.Unmarshal(data, &rj) == nil && len(rj.Projects) > 0 {
			patterns := make([]string, 0, len(rj.Projects))
			for _, p := range rj.Projects {
				if p.ProjectFolder != "" {
					patterns = append(patterns, p.ProjectFolder)
				}
			}
			if len(patterns) > 0 {
				return patterns
			}
		}
	}

	return conventionalWorkspaceDirs
}

// expandWorkspaceDirs expands glob patterns into concrete package
// directories with filepath.Glob, so a pattern reaches only as deep as its
// own segments: "**" is not expanded recursively and no filesystem walk
// bounded by maxWorkspaceDepth takes place. It then adds any top-level directory that carries its own tsconfig.json or
// package.json manifest (spec §4.1's "additionally" rule).
const maxWorkspaceDepth = 6

func expandWorkspaceDirs(repoRoot string, patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string

	add := func(absDir string) {
		info, err := os.Stat(absDir)
		if err != nil || !info.IsDir() {
			return
		}
		rel, err := filepath.Rel(repoRoot, absDir)
		if err != nil || rel == "." {
			return
		}
		if !seen[rel] {
			seen[rel] = true
			dirs = append(dirs, rel)
		}
	}

	for _, pattern := range patterns {
		absPattern := filepath.Join(repoRoot, pattern)
		matches, err := filepath.Glob(absPattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	// Any top-level directory with its own tsconfig.json or package.json
	// is a workspace candidate even without matching a glob pattern.
	entries, err := os.ReadDir(repoRoot)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			absDir := filepath.Join(repoRoot, e.Name())
			if fileExists(filepath.Join(absDir, "tsconfig.json")) || fileExists(filepath.Join(absDir, "package.json")) {
				add(absDir)
			}
		}
	}

	_ = maxWorkspaceDepth // depth bound is enforced by filepath.Glob's pattern shape (N "*" segments)
	return dirs
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
