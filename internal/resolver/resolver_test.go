package resolver

import (
	"testing"

	"github.com/dusk-indust/deadcode/internal/index"
	"github.com/dusk-indust/deadcode/internal/model"
)

// newIndex builds a ReverseIndex the same way a real scan would
// (internal/index.Build), so resolver tests exercise the real lookup
// tables rather than a hand-rolled stand-in.
func newIndex(t *testing.T, records []model.FileRecord, javaSourceRoots []string) *model.ReverseIndex {
	t.Helper()
	return index.Build(records, javaSourceRoots)
}

func rec(path string, lang model.Language) model.FileRecord {
	return model.FileRecord{RelativePath: path, Language: lang}
}

func TestResolve_UnknownLanguageReturnsNil(t *testing.T) {
	ctx := model.NewResolutionContext()
	idx := newIndex(t, nil, nil)
	r := New(ctx, idx)

	if got := r.Resolve("a.txt", "./b", model.Language("plaintext")); got != nil {
		t.Errorf("Resolve for an unsupported language = %v, want nil", got)
	}
}

// TestResolveJS_AliasResolution covers spec.md S2: a tsconfig-style path
// alias resolves to the aliased source file.
func TestResolveJS_AliasResolution(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.GlobalAliases = []model.AliasRule{{Prefix: "@/", Target: "src/"}}
	records := []model.FileRecord{
		rec("src/util.ts", model.LangTypeScript),
		rec("src/app.ts", model.LangTypeScript),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("src/app.ts", "@/util", model.LangTypeScript)
	if len(got) != 1 || got[0] != "src/util.ts" {
		t.Errorf("Resolve(@/util) = %v, want [src/util.ts]", got)
	}
}

// TestResolveJS_MostSpecificPackageAliasWins covers the "package aliases
// override a shared global prefix" rule (spec §4.5 "merged over
// globalAliases").
func TestResolveJS_MostSpecificPackageAliasWins(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.GlobalAliases = []model.AliasRule{{Prefix: "@/", Target: "src/"}}
	ctx.PackageAliases["pkgs/app"] = []model.AliasRule{{Prefix: "@/", Target: "pkgs/app/src/"}}
	ctx.WorkspacePackages["app"] = &model.WorkspacePackage{Name: "app", Dir: "pkgs/app"}

	records := []model.FileRecord{
		rec("pkgs/app/src/widget.ts", model.LangTypeScript),
		rec("pkgs/app/src/main.ts", model.LangTypeScript),
		rec("src/widget.ts", model.LangTypeScript),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("pkgs/app/src/main.ts", "@/widget", model.LangTypeScript)
	if len(got) != 1 || got[0] != "pkgs/app/src/widget.ts" {
		t.Errorf("Resolve(@/widget) from pkgs/app = %v, want [pkgs/app/src/widget.ts]", got)
	}
}

// TestResolveJS_RelativeImport covers plain "./" / "../" resolution with
// extensionless probing.
func TestResolveJS_RelativeImport(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("src/a.ts", model.LangTypeScript),
		rec("src/b.ts", model.LangTypeScript),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("src/a.ts", "./b", model.LangTypeScript)
	if len(got) != 1 || got[0] != "src/b.ts" {
		t.Errorf("Resolve(./b) = %v, want [src/b.ts]", got)
	}
}

// TestResolveJS_WorkspaceBareSpecifierBuildToSourceRedirect covers spec.md
// S3: a bare specifier naming a workspace package resolves through that
// package's exportsMap / entry point even when its manifest "main" points
// at a built dist/ file.
func TestResolveJS_WorkspaceBareSpecifierBuildToSourceRedirect(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.WorkspacePackages["lib"] = &model.WorkspacePackage{
		Name:       "lib",
		Dir:        "packages/lib",
		EntryPoint: "packages/lib/src/index.ts", // already rewritten dist -> src by resolvectx
	}
	records := []model.FileRecord{
		rec("packages/lib/src/index.ts", model.LangTypeScript),
		rec("packages/app/src/main.ts", model.LangTypeScript),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("packages/app/src/main.ts", "lib", model.LangTypeScript)
	if len(got) != 1 || got[0] != "packages/lib/src/index.ts" {
		t.Errorf("Resolve(lib) = %v, want [packages/lib/src/index.ts]", got)
	}
}

// TestResolveJS_WorkspaceSubpathExportsMap covers a workspace package's
// exportsMap subpath entry ("lib/sub" -> some repo-relative target).
func TestResolveJS_WorkspaceSubpathExportsMap(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.WorkspacePackages["lib"] = &model.WorkspacePackage{
		Name:       "lib",
		Dir:        "packages/lib",
		EntryPoint: "packages/lib/src/index.ts",
		ExportsMap: map[string]string{"./sub": "packages/lib/src/sub"},
	}
	records := []model.FileRecord{
		rec("packages/lib/src/sub.ts", model.LangTypeScript),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("packages/app/main.ts", "lib/sub", model.LangTypeScript)
	if len(got) != 1 || got[0] != "packages/lib/src/sub.ts" {
		t.Errorf("Resolve(lib/sub) = %v, want [packages/lib/src/sub.ts]", got)
	}
}

func TestResolveJS_UnresolvableSpecifierReturnsNil(t *testing.T) {
	ctx := model.NewResolutionContext()
	idx := newIndex(t, nil, nil)
	r := New(ctx, idx)

	if got := r.Resolve("src/a.ts", "some-external-package", model.LangTypeScript); got != nil {
		t.Errorf("Resolve(external) = %v, want nil", got)
	}
}
