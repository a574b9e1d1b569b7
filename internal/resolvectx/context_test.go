package resolvectx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/deadcode/internal/model"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return full
}

func TestStripJSONComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line comment", "{\"a\": 1, // trailing\n\"b\": 2}", "{\"a\": 1, \n\"b\": 2}"},
		{"block comment", "{/* header */\"a\": 1}", "{\"a\": 1}"},
		{"comment marker inside string survives", `{"a": "http://x"}`, `{"a": "http://x"}`},
		{"escaped quote inside string", `{"a": "she said \"//not a comment\""}`, `{"a": "she said \"//not a comment\""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(stripJSONComments([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadTSConfigChain_SimpleAlias(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{
		"compilerOptions": {
			"baseUrl": ".",
			"paths": { "@app/*": ["src/app/*"] }
		}
	}`)

	chain := loadTSConfigChain(dir, filepath.Join(dir, "tsconfig.json"))
	if chain.aliases["@app/*"] != "src/app/*" {
		t.Errorf("aliases[@app/*] = %q, want %q", chain.aliases["@app/*"], "src/app/*")
	}
	if chain.baseURL != "" {
		t.Errorf("baseURL = %q, want empty (baseUrl '.')", chain.baseURL)
	}
}

func TestLoadTSConfigChain_Extends(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.base.json", `{
		"compilerOptions": { "paths": { "@shared/*": ["src/shared/*"] } }
	}`)
	writeFile(t, dir, "tsconfig.json", `{
		"extends": "./tsconfig.base.json",
		"compilerOptions": { "paths": { "@app/*": ["src/app/*"] } }
	}`)

	chain := loadTSConfigChain(dir, filepath.Join(dir, "tsconfig.json"))
	if chain.aliases["@shared/*"] != "src/shared/*" {
		t.Errorf("expected inherited @shared/* alias, got %v", chain.aliases)
	}
	if chain.aliases["@app/*"] != "src/app/*" {
		t.Errorf("expected own @app/* alias, got %v", chain.aliases)
	}
}

func TestLoadTSConfigChain_ChildOverridesParent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.base.json", `{
		"compilerOptions": { "paths": { "@x/*": ["old/x/*"] } }
	}`)
	writeFile(t, dir, "tsconfig.json", `{
		"extends": "./tsconfig.base.json",
		"compilerOptions": { "paths": { "@x/*": ["new/x/*"] } }
	}`)

	chain := loadTSConfigChain(dir, filepath.Join(dir, "tsconfig.json"))
	if chain.aliases["@x/*"] != "new/x/*" {
		t.Errorf("child should override parent, got %q", chain.aliases["@x/*"])
	}
}

func TestLoadTSConfigChain_CycleTruncates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"extends": "./b.json", "compilerOptions": {"paths": {"@a/*": ["a/*"]}}}`)
	writeFile(t, dir, "b.json", `{"extends": "./a.json", "compilerOptions": {"paths": {"@b/*": ["b/*"]}}}`)

	// The recursive walk must terminate (visited-set cycle guard) rather
	// than recurse forever; a timeout here would hang the test run.
	chain := loadTSConfigChain(dir, filepath.Join(dir, "a.json"))
	if chain.aliases["@a/*"] != "a/*" {
		t.Errorf("expected @a/* to still resolve despite cycle, got %v", chain.aliases)
	}
}

func TestAliasRulesFromPaths_LongestPrefixFirst(t *testing.T) {
	rules := aliasRulesFromPaths(map[string]string{
		"@app/*":          "src/app/*",
		"@app/core/*":     "src/core/*",
		"@app/core/deep/*": "src/deep/*",
	})
	if len(rules) != 3 {
		t.Fatalf("len(rules) = %d, want 3", len(rules))
	}
	if rules[0].Prefix != "@app/core/deep/" {
		t.Errorf("rules[0].Prefix = %q, want longest prefix first", rules[0].Prefix)
	}
	if rules[len(rules)-1].Prefix != "@app/" {
		t.Errorf("rules[last].Prefix = %q, want shortest prefix last", rules[len(rules)-1].Prefix)
	}
}

func TestScanViteAliases(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vite.config.ts", `
import { defineConfig } from 'vite'
import path from 'path'

export default defineConfig({
  resolve: {
    alias: {
      '@': path.resolve(__dirname, './src'),
      '@utils': './src/utils',
    },
  },
})
`)
	rules := scanViteAliases(dir)
	found := map[string]string{}
	for _, r := range rules {
		found[r.Prefix] = r.Target
	}
	if found["@"] != "src/" {
		t.Errorf("alias @ = %q, want %q", found["@"], "src/")
	}
	if found["@utils"] != "src/utils/" {
		t.Errorf("alias @utils = %q, want %q", found["@utils"], "src/utils/")
	}
}

func TestScanGoModulePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module github.com/example/thing\n\ngo 1.25\n")
	if got := scanGoModulePath(dir); got != "github.com/example/thing" {
		t.Errorf("scanGoModulePath = %q, want %q", got, "github.com/example/thing")
	}
}

func TestScanGoModulePath_Missing(t *testing.T) {
	dir := t.TempDir()
	if got := scanGoModulePath(dir); got != "" {
		t.Errorf("scanGoModulePath on missing go.mod = %q, want empty", got)
	}
}

func TestDiscoverJavaSourceRoots(t *testing.T) {
	known := []string{
		"app/src/main/java/com/example/Main.java",
		"app/src/test/java/com/example/MainTest.java",
		"lib/src/main/kotlin/com/example/Lib.kt",
	}
	roots := discoverJavaSourceRoots(known)
	want := map[string]bool{
		"app/src/main/java": true,
		"app/src/test/java": true,
		"lib/src/main/kotlin": true,
	}
	if len(roots) != len(want) {
		t.Fatalf("len(roots) = %d, want %d (%v)", len(roots), len(want), roots)
	}
	for _, r := range roots {
		if !want[r] {
			t.Errorf("unexpected root %q", r)
		}
	}
}

func TestDiscoverWorkspacePatterns_PackageJSONArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "root", "workspaces": ["packages/*", "apps/*"]}`)
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != 2 || patterns[0] != "packages/*" || patterns[1] != "apps/*" {
		t.Errorf("patterns = %v, want [packages/* apps/*]", patterns)
	}
}

func TestDiscoverWorkspacePatterns_PackageJSONObjectForm(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "root", "workspaces": {"packages": ["libs/*"]}}`)
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != 1 || patterns[0] != "libs/*" {
		t.Errorf("patterns = %v, want [libs/*]", patterns)
	}
}

func TestDiscoverWorkspacePatterns_PnpmYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pnpm-workspace.yaml", "packages:\n  - 'packages/*'\n  - 'tools/*'\n")
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != 2 || patterns[0] != "packages/*" || patterns[1] != "tools/*" {
		t.Errorf("patterns = %v, want [packages/* tools/*]", patterns)
	}
}

func TestDiscoverWorkspacePatterns_LernaJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lerna.json", `{"packages": ["modules/*"]}`)
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != 1 || patterns[0] != "modules/*" {
		t.Errorf("patterns = %v, want [modules/*]", patterns)
	}
}

func TestDiscoverWorkspacePatterns_NxConvention(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nx.json", `{}`)
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != len(nxConventionDirs) {
		t.Errorf("patterns = %v, want nx convention dirs %v", patterns, nxConventionDirs)
	}
}

func TestDiscoverWorkspacePatterns_RushJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rush.json", `{"projects": [{"projectFolder": "apps/web"}, {"projectFolder": "apps/api"}]}`)
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != 2 || patterns[0] != "apps/web" || patterns[1] != "apps/api" {
		t.Errorf("patterns = %v, want [apps/web apps/api]", patterns)
	}
}

func TestDiscoverWorkspacePatterns_ConventionalFallback(t *testing.T) {
	dir := t.TempDir()
	patterns := discoverWorkspacePatterns(dir)
	if len(patterns) != len(conventionalWorkspaceDirs) {
		t.Errorf("patterns = %v, want conventional fallback %v", patterns, conventionalWorkspaceDirs)
	}
}

func TestExpandWorkspaceDirs_GlobAndConventionMix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "packages/foo/package.json", `{"name": "foo"}`)
	writeFile(t, dir, "packages/bar/package.json", `{"name": "bar"}`)
	writeFile(t, dir, "standalone/tsconfig.json", `{}`)

	dirs := expandWorkspaceDirs(dir, []string{"packages/*"})
	want := map[string]bool{
		"packages/foo": true,
		"packages/bar": true,
		"standalone":   true,
	}
	if len(dirs) != len(want) {
		t.Fatalf("dirs = %v, want %v", dirs, want)
	}
	for _, d := range dirs {
		if !want[filepath.ToSlash(d)] {
			t.Errorf("unexpected dir %q", d)
		}
	}
}

func TestResolvePackageEntryPoint_SourcePriority(t *testing.T) {
	known := map[string]bool{
		"packages/foo/src/index.ts": true,
		"packages/foo/dist/index.js": true,
	}
	pkg := &PackageManifest{Source: "./src/index.ts", Main: "./dist/index.js"}
	got := resolvePackageEntryPoint("packages/foo", pkg, known)
	if got != "packages/foo/src/index.ts" {
		t.Errorf("got %q, want source-priority entry", got)
	}
}

func TestResolvePackageEntryPoint_BuildToSourceRewrite(t *testing.T) {
	// Declared main points only at a build artifact; source-rewritten
	// sibling is the only thing that actually exists (spec boundary case).
	known := map[string]bool{
		"packages/foo/src/index.ts": true,
	}
	pkg := &PackageManifest{Main: "./dist/index.js"}
	got := resolvePackageEntryPoint("packages/foo", pkg, known)
	if got != "packages/foo/src/index.ts" {
		t.Errorf("got %q, want rewritten src/index.ts fallback", got)
	}
}

func TestResolvePackageEntryPoint_FixedStemFallback(t *testing.T) {
	known := map[string]bool{
		"packages/foo/src/main.ts": true,
	}
	pkg := &PackageManifest{}
	got := resolvePackageEntryPoint("packages/foo", pkg, known)
	if got != "packages/foo/src/main.ts" {
		t.Errorf("got %q, want fixed-stem fallback src/main.ts", got)
	}
}

func TestMarkInternalDependents_AbandonedWorkspaceGuard(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.WorkspacePackages["consumer"] = &model.WorkspacePackage{Name: "consumer", Dir: "pkgs/consumer"}
	ctx.WorkspacePackages["isolated"] = &model.WorkspacePackage{Name: "isolated", Dir: "pkgs/isolated"}

	manifests := map[string]*PackageManifest{
		"pkgs/consumer": {Dependencies: map[string]string{"isolated": "*"}},
		"pkgs/isolated":  {},
	}
	markInternalDependents(ctx, manifests)

	if !ctx.WorkspacePackages["consumer"].DependsOnInternal {
		t.Error("consumer should depend on an internal package")
	}
	if !ctx.WorkspacePackages["isolated"].DependsOnInternal {
		t.Error("isolated is depended upon by consumer, so it should count as internally reachable")
	}
}

func TestBuildContext_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{
		"compilerOptions": { "baseUrl": ".", "paths": { "@app/*": ["src/*"] } }
	}`)
	writeFile(t, dir, "go.mod", "module github.com/example/app\n\ngo 1.25\n")
	writeFile(t, dir, "packages/logger/package.json", `{"name": "@test/logger", "main": "./src/index.ts"}`)

	known := []string{
		"src/main.ts",
		"packages/logger/src/index.ts",
	}
	ctx := BuildContext(dir, known)

	if ctx.GoModulePath != "github.com/example/app" {
		t.Errorf("GoModulePath = %q", ctx.GoModulePath)
	}
	if len(ctx.GlobalAliases) != 1 || ctx.GlobalAliases[0].Prefix != "@app/" {
		t.Errorf("GlobalAliases = %v", ctx.GlobalAliases)
	}
	pkg, ok := ctx.WorkspacePackages["@test/logger"]
	if !ok {
		t.Fatal("expected @test/logger workspace package to be indexed")
	}
	if pkg.EntryPoint != "packages/logger/src/index.ts" {
		t.Errorf("EntryPoint = %q", pkg.EntryPoint)
	}
}
