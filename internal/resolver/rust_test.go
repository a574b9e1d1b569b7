package resolver

import (
	"testing"

	"github.com/dusk-indust/deadcode/internal/model"
)

func TestResolveRust_CrateRelative(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("myapp/src/lib.rs", model.LangRust),
		rec("myapp/src/util.rs", model.LangRust),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("myapp/src/lib.rs", "crate::util", model.LangRust)
	if len(got) != 1 || got[0] != "myapp/src/util.rs" {
		t.Errorf("Resolve(crate::util) = %v, want [myapp/src/util.rs]", got)
	}
}

func TestResolveRust_SelfModule(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("myapp/src/lib.rs", model.LangRust),
		rec("myapp/src/util.rs", model.LangRust),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("myapp/src/lib.rs", "self::util", model.LangRust)
	if len(got) != 1 || got[0] != "myapp/src/util.rs" {
		t.Errorf("Resolve(self::util) = %v, want [myapp/src/util.rs]", got)
	}
}

func TestResolveRust_SuperModule(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("myapp/src/mod_a/current.rs", model.LangRust),
		rec("myapp/src/mod_a/sibling.rs", model.LangRust),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("myapp/src/mod_a/current.rs", "super::sibling", model.LangRust)
	if len(got) != 1 || got[0] != "myapp/src/mod_a/sibling.rs" {
		t.Errorf("Resolve(super::sibling) = %v, want [myapp/src/mod_a/sibling.rs]", got)
	}
}

func TestResolveRust_ModDirectoryFallback(t *testing.T) {
	ctx := model.NewResolutionContext()
	records := []model.FileRecord{
		rec("myapp/src/lib.rs", model.LangRust),
		rec("myapp/src/sub/mod.rs", model.LangRust),
	}
	idx := newIndex(t, records, nil)
	r := New(ctx, idx)

	got := r.Resolve("myapp/src/lib.rs", "crate::sub", model.LangRust)
	if len(got) != 1 || got[0] != "myapp/src/sub/mod.rs" {
		t.Errorf("Resolve(crate::sub) = %v, want [myapp/src/sub/mod.rs]", got)
	}
}
