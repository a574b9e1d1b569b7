package reachability

import (
	"testing"

	"github.com/dusk-indust/deadcode/internal/index"
	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/resolver"
)

// TestWalk_SimpleUnusedFile covers spec.md S1: a.ts imports b.ts, c.ts is
// never imported from any entry point.
func TestWalk_SimpleUnusedFile(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "src/a.ts", Language: model.LangTypeScript, Imports: []model.Import{
			{Module: "./b", Kind: model.ImportESImport},
		}},
		{RelativePath: "src/b.ts", Language: model.LangTypeScript},
		{RelativePath: "src/c.ts", Language: model.LangTypeScript},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)

	result := Walk(records, idx, res, map[string]bool{"src/a.ts": true}, nil, nil)

	if !result.Reachable["src/a.ts"] || !result.Reachable["src/b.ts"] {
		t.Errorf("expected a.ts and b.ts reachable, got %v", result.Reachable)
	}
	if result.Reachable["src/c.ts"] {
		t.Errorf("expected c.ts unreachable, got reachable")
	}
}

// TestWalk_GoSamePackageLinking covers spec.md S5: a Go package's files are
// all reachable together once any one of them is, regardless of whether an
// import specifically names the sibling.
func TestWalk_GoSamePackageLinking(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "cmd/app/main.go", Language: model.LangGo, Metadata: model.Metadata{IsMainPackage: true, HasMainFunction: true}},
		{RelativePath: "cmd/app/util.go", Language: model.LangGo},
		{RelativePath: "cmd/tools/old.go", Language: model.LangGo},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)

	result := Walk(records, idx, res, map[string]bool{"cmd/app/main.go": true}, nil, nil)

	if !result.Reachable["cmd/app/util.go"] {
		t.Errorf("expected util.go reachable via same-package linking, got %v", result.Reachable)
	}
	if result.Reachable["cmd/tools/old.go"] {
		t.Errorf("expected old.go in a different package to stay unreachable")
	}
}

// TestWalk_JavaSamePackageLinking covers spec.md S4: A.java (entry point)
// and B.java share a package and link without any direct import; C.java is
// in a different package and stays dead.
func TestWalk_JavaSamePackageLinking(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "src/main/java/com/x/A.java", Language: model.LangJava, Metadata: model.Metadata{PackageName: "com.x"}},
		{RelativePath: "src/main/java/com/x/B.java", Language: model.LangJava, Metadata: model.Metadata{PackageName: "com.x"}},
		{RelativePath: "src/main/java/com/y/C.java", Language: model.LangJava, Metadata: model.Metadata{PackageName: "com.y"}},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)

	result := Walk(records, idx, res, map[string]bool{"src/main/java/com/x/A.java": true}, nil, nil)

	if !result.Reachable["src/main/java/com/x/B.java"] {
		t.Errorf("expected B.java reachable via same-package linking, got %v", result.Reachable)
	}
	if result.Reachable["src/main/java/com/y/C.java"] {
		t.Errorf("expected C.java in a different package to stay unreachable")
	}
}

// TestWalk_RustModDeclaration exercises step 5 of the walk (mod
// declarations), independent of any `use` import.
func TestWalk_RustModDeclaration(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "src/lib.rs", Language: model.LangRust, Mods: []string{"util"}},
		{RelativePath: "src/util.rs", Language: model.LangRust},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)

	result := Walk(records, idx, res, map[string]bool{"src/lib.rs": true}, nil, nil)

	if !result.Reachable["src/util.rs"] {
		t.Errorf("expected util.rs reachable via mod declaration, got %v", result.Reachable)
	}
}

// TestWalk_CSharpRefEdges exercises step 6: a C# reference edge
// (new T()/typeof(T)/generic argument) reaches a file no import names.
func TestWalk_CSharpRefEdges(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "Program.cs", Language: model.LangCSharp},
		{RelativePath: "Widget.cs", Language: model.LangCSharp},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)
	refs := CSharpRefEdges{"Program.cs": {"Widget.cs"}}

	result := Walk(records, idx, res, map[string]bool{"Program.cs": true}, nil, refs)

	if !result.Reachable["Widget.cs"] {
		t.Errorf("expected Widget.cs reachable via C# ref edge, got %v", result.Reachable)
	}
}

// TestWalk_Preseeded exercises spec.md S6's supporting mechanism: a
// glob-matched file is reachable even though nothing in roots imports it
// directly.
func TestWalk_Preseeded(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "src/main.ts", Language: model.LangTypeScript},
		{RelativePath: "src/plugins/foo.plugin.ts", Language: model.LangTypeScript},
	}
	idx := index.Build(records, nil)
	res := resolver.New(model.NewResolutionContext(), idx)

	result := Walk(records, idx, res, map[string]bool{"src/main.ts": true},
		map[string]bool{"src/plugins/foo.plugin.ts": true}, nil)

	if !result.Reachable["src/plugins/foo.plugin.ts"] {
		t.Errorf("expected preseeded plugin file reachable, got %v", result.Reachable)
	}
}

func TestGlobMatches_MatchesConfiguredPattern(t *testing.T) {
	records := []model.FileRecord{
		{RelativePath: "src/main.ts", Language: model.LangTypeScript, Imports: []model.Import{
			{Module: "./plugins/*.plugin.ts", IsGlob: true},
		}},
	}
	known := []string{"src/plugins/foo.plugin.ts", "src/plugins/bar.plugin.ts", "src/other.ts"}

	got := GlobMatches(records, known)

	if !got["src/plugins/foo.plugin.ts"] || !got["src/plugins/bar.plugin.ts"] {
		t.Errorf("expected both plugin files matched, got %v", got)
	}
	if got["src/other.ts"] {
		t.Errorf("expected non-matching file excluded, got %v", got)
	}
}
