package resolver

import (
	"testing"

	"github.com/dusk-indust/deadcode/internal/model"
)

// TestResolveGo_ModulePathAware covers S5's shape: a Go import path under
// the project's own module resolves to every non-test file in that package
// directory.
func TestResolveGo_ModulePathAware(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.GoModulePath = "example.com/app"
	records := []model.FileRecord{
		rec("cmd/app/main.go", model.LangGo),
		rec("cmd/app/util.go", model.LangGo),
		rec("cmd/app/main_test.go", model.LangGo),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("x.go", "example.com/app/cmd/app", model.LangGo)
	want := map[string]bool{"cmd/app/main.go": true, "cmd/app/util.go": true}
	if len(got) != 2 {
		t.Fatalf("Resolve(example.com/app/cmd/app) = %v, want 2 files", got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected file in result: %s", p)
		}
	}
}

func TestResolveGo_DirectorySegmentFallback(t *testing.T) {
	ctx := model.NewResolutionContext() // no GoModulePath discovered
	records := []model.FileRecord{
		rec("cmd/tools/tools.go", model.LangGo),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("x.go", "some/vendored/cmd/tools", model.LangGo)
	if len(got) != 1 || got[0] != "cmd/tools/tools.go" {
		t.Errorf("Resolve(some/vendored/cmd/tools) = %v, want [cmd/tools/tools.go]", got)
	}
}

func TestResolveGo_LastSegmentHeuristic(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("internal/widget/widget.go", model.LangGo),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("x.go", "github.com/other/module/widget", model.LangGo)
	if len(got) != 1 || got[0] != "internal/widget/widget.go" {
		t.Errorf("Resolve(.../widget) = %v, want [internal/widget/widget.go]", got)
	}
}

func TestResolveGo_ExcludesAntiEntryAndTestFiles(t *testing.T) {
	ctx := model.NewResolutionContext()
	ctx.GoModulePath = "example.com/app"
	records := []model.FileRecord{
		rec("cmd/tools/old.go", model.LangGo),
		rec("cmd/tools/tools_test.go", model.LangGo),
		rec("deprecated/tools/stale.go", model.LangGo),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	if got := r.Resolve("x.go", "example.com/app/deprecated/tools", model.LangGo); got != nil {
		t.Errorf("Resolve(deprecated/tools) = %v, want nil", got)
	}
}
