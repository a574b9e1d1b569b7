package classify

import (
	"testing"

	"github.com/dusk-indust/deadcode/internal/model"
)

func TestClassify_ReachableFilesProduceNoFinding(t *testing.T) {
	candidates := []string{"src/a.ts", "src/b.ts"}
	reachable := map[string]bool{"src/a.ts": true, "src/b.ts": true}

	result := Classify(candidates, reachable, nil, nil, nil, 1)

	if len(result.FullyDeadFiles) != 0 {
		t.Errorf("expected no dead findings, got %v", result.FullyDeadFiles)
	}
	if result.Summary.ReachableCount != 2 {
		t.Errorf("ReachableCount = %d, want 2", result.Summary.ReachableCount)
	}
}

// TestClassify_DeadFileGetsUnreachableVerdict covers spec.md S1's closing
// shape: an unreachable candidate becomes a full finding with its own
// evidence.
func TestClassify_DeadFileGetsUnreachableVerdict(t *testing.T) {
	candidates := []string{"src/c.ts"}
	reachable := map[string]bool{}
	recordsByPath := map[string]*model.FileRecord{
		"src/c.ts": {RelativePath: "src/c.ts", Exports: []model.Export{{Name: "helper"}}},
	}
	stats := map[string]FileStat{"src/c.ts": {SizeBytes: 512, LineCount: 20}}

	result := Classify(candidates, reachable, recordsByPath, nil, stats, 1)

	if len(result.FullyDeadFiles) != 1 {
		t.Fatalf("expected 1 dead finding, got %d", len(result.FullyDeadFiles))
	}
	f := result.FullyDeadFiles[0]
	if f.Verdict != VerdictUnreachable {
		t.Errorf("Verdict = %s, want %s", f.Verdict, VerdictUnreachable)
	}
	if f.SizeBytes != 512 || f.LineCount != 20 {
		t.Errorf("SizeBytes/LineCount = %d/%d, want 512/20", f.SizeBytes, f.LineCount)
	}
	if len(f.Exports) != 1 || f.Exports[0].Name != "helper" {
		t.Errorf("Exports = %v, want [helper]", f.Exports)
	}
	if f.EntryPointsSearched != 1 {
		t.Errorf("EntryPointsSearched = %d, want 1", f.EntryPointsSearched)
	}
	if result.Summary.FullyDeadCount != 1 || result.Summary.TotalDeadBytes != 512 {
		t.Errorf("Summary = %+v, want FullyDeadCount=1 TotalDeadBytes=512", result.Summary)
	}
}

// TestClassify_DynamicMatchIsPossiblyLive covers spec.md S6: a file that
// matches a configured dynamic-loading pattern is reported separately from
// the fully-dead set, with the matched pattern recorded as evidence.
func TestClassify_DynamicMatchIsPossiblyLive(t *testing.T) {
	candidates := []string{"src/plugins/foo.plugin.ts"}
	reachable := map[string]bool{}
	dynamicHits := map[string]string{"src/plugins/foo.plugin.ts": "src/plugins/*.plugin.ts"}
	stats := map[string]FileStat{"src/plugins/foo.plugin.ts": {SizeBytes: 100, LineCount: 5}}

	result := Classify(candidates, reachable, nil, dynamicHits, stats, 1)

	if len(result.FullyDeadFiles) != 0 {
		t.Errorf("expected dynamic match excluded from FullyDeadFiles, got %v", result.FullyDeadFiles)
	}
	if len(result.SkippedDynamic) != 1 {
		t.Fatalf("expected 1 skipped-dynamic finding, got %d", len(result.SkippedDynamic))
	}
	f := result.SkippedDynamic[0]
	if f.Verdict != VerdictPossiblyLive {
		t.Errorf("Verdict = %s, want %s", f.Verdict, VerdictPossiblyLive)
	}
	if f.MatchedDynamicPattern != "src/plugins/*.plugin.ts" {
		t.Errorf("MatchedDynamicPattern = %q, want the configured pattern", f.MatchedDynamicPattern)
	}
	if result.Summary.SkippedDynamicCount != 1 {
		t.Errorf("SkippedDynamicCount = %d, want 1", result.Summary.SkippedDynamicCount)
	}
	if result.Summary.TotalDeadBytes != 0 {
		t.Errorf("TotalDeadBytes = %d, want 0 (possibly-live isn't counted as dead)", result.Summary.TotalDeadBytes)
	}
}

func TestClassify_SummaryAggregateCounts(t *testing.T) {
	candidates := []string{"a.ts", "b.ts", "c.ts", "d.ts"}
	reachable := map[string]bool{"a.ts": true}
	dynamicHits := map[string]string{"b.ts": "*.plugin.ts"}
	stats := map[string]FileStat{
		"c.ts": {SizeBytes: 100, LineCount: 1},
		"d.ts": {SizeBytes: 200, LineCount: 2},
	}

	result := Classify(candidates, reachable, nil, dynamicHits, stats, 3)

	want := Summary{
		CandidateCount:      4,
		EntryPointCount:     3,
		ReachableCount:      1,
		FullyDeadCount:      2,
		SkippedDynamicCount: 1,
		TotalDeadBytes:      300,
	}
	if result.Summary != want {
		t.Errorf("Summary = %+v, want %+v", result.Summary, want)
	}
}

func TestSortFindings_DescendingSizeThenLexicalPath(t *testing.T) {
	candidates := []string{"z.ts", "a.ts", "m.ts"}
	reachable := map[string]bool{}
	stats := map[string]FileStat{
		"z.ts": {SizeBytes: 100},
		"a.ts": {SizeBytes: 100},
		"m.ts": {SizeBytes: 200},
	}

	result := Classify(candidates, reachable, nil, nil, stats, 0)

	got := []string{result.FullyDeadFiles[0].Path, result.FullyDeadFiles[1].Path, result.FullyDeadFiles[2].Path}
	want := []string{"m.ts", "a.ts", "z.ts"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sorted findings = %v, want %v", got, want)
			break
		}
	}
}
