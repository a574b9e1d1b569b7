// Package classify implements C7: the classifier. It compares the
// reachable set the walker (C6) produced against every candidate file and
// emits a verdict for each one that isn't live (spec §4.7).
package classify

import (
	"sort"

	"github.com/dusk-indust/deadcode/internal/model"
)

// Verdict is the classification assigned to a non-reachable candidate
// file (spec §4.7).
type Verdict string

const (
	VerdictUnreachable          Verdict = "unreachable"
	VerdictPossiblyLive         Verdict = "possibly-live"
	VerdictPartiallyUnreachable Verdict = "partially-unreachable"
)

// Finding is the evidence block recorded for a single dead or
// possibly-dead file (spec §4.7).
type Finding struct {
	Path           string
	Verdict        Verdict
	SizeBytes      int64
	LineCount      int
	Exports        []model.Export
	EntryPointsSearched int
	MatchedDynamicPattern string // non-empty only for VerdictPossiblyLive
}

// Result is the full classification output (spec §6 "Result shape").
type Result struct {
	FullyDeadFiles    []Finding
	PartiallyDeadFiles []Finding
	SkippedDynamic    []Finding
	EntryPoints       []string
	Summary           Summary
}

// Summary carries the aggregate counts the CLI/dashboard surfaces (spec §6).
type Summary struct {
	CandidateCount   int
	EntryPointCount  int
	ReachableCount   int
	FullyDeadCount   int
	SkippedDynamicCount int
	TotalDeadBytes   int64
}

// FileStat is the size/line-count pair the caller supplies per candidate
// path (the classifier never touches the filesystem itself — spec §5
// "resolver never reads the filesystem" applies equally here).
type FileStat struct {
	SizeBytes int64
	LineCount int
}

// Classify produces the verdict set (spec §4.7). candidates is every file
// the discovery collaborator returned (spec §6); reachable is C6's output;
// recordsByPath carries each candidate's own exports for the evidence
// block; dynamicHits maps a path to the configured dynamicPatterns entry
// it matched (spec §4.3 source of the possibly-live verdict); stats
// carries each file's size and line count for the findings; and
// entryPointCount is copied into the summary.
func Classify(candidates []string, reachable map[string]bool, recordsByPath map[string]*model.FileRecord, dynamicHits map[string]string, stats map[string]FileStat, entryPointCount int) *Result {
	result := &Result{Summary: Summary{CandidateCount: len(candidates), EntryPointCount: entryPointCount}}

	for _, path := range candidates {
		if reachable[path] {
			result.Summary.ReachableCount++
			continue
		}

		stat := stats[path]
		var exports []model.Export
		if rec, ok := recordsByPath[path]; ok {
			exports = rec.Exports
		}

		finding := Finding{
			Path:                path,
			SizeBytes:           stat.SizeBytes,
			LineCount:           stat.LineCount,
			Exports:             exports,
			EntryPointsSearched: entryPointCount,
		}

		if pattern, ok := dynamicHits[path]; ok {
			finding.Verdict = VerdictPossiblyLive
			finding.MatchedDynamicPattern = pattern
			result.SkippedDynamic = append(result.SkippedDynamic, finding)
			result.Summary.SkippedDynamicCount++
			continue
		}

		// partially-unreachable is reserved for export-level analysis
		// (spec §4.7); the current classifier never emits it because the
		// walker only tracks file-level reachability, never which
		// specific export was imported.
		finding.Verdict = VerdictUnreachable
		result.FullyDeadFiles = append(result.FullyDeadFiles, finding)
		result.Summary.FullyDeadCount++
		result.Summary.TotalDeadBytes += stat.SizeBytes
	}

	sortFindings(result.FullyDeadFiles)
	sortFindings(result.PartiallyDeadFiles)
	sortFindings(result.SkippedDynamic)

	return result
}

// sortFindings orders findings by descending size with a lexical
// tiebreaker on path (spec §5 "Ordering guarantees").
func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].SizeBytes != findings[j].SizeBytes {
			return findings[i].SizeBytes > findings[j].SizeBytes
		}
		return findings[i].Path < findings[j].Path
	})
}
