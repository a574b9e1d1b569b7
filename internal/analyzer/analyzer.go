// Package analyzer wires the whole scan together: discovery -> parsing ->
// C1/C2 (resolvectx) -> C3 (entrypoint) -> C4 (index) -> C5 (resolver) ->
// C6 (reachability) -> C7 (classify). It is the only package that owns
// the end-to-end sequencing spec §2's data-flow diagram describes; every
// package it calls is otherwise independent and untestable-in-isolation
// only by choice, not by coupling.
package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/dusk-indust/deadcode/internal/classify"
	"github.com/dusk-indust/deadcode/internal/discover"
	"github.com/dusk-indust/deadcode/internal/entrypoint"
	"github.com/dusk-indust/deadcode/internal/index"
	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/parse"
	"github.com/dusk-indust/deadcode/internal/parseworkers"
	"github.com/dusk-indust/deadcode/internal/reachability"
	"github.com/dusk-indust/deadcode/internal/remoteparse"
	"github.com/dusk-indust/deadcode/internal/resolvectx"
	"github.com/dusk-indust/deadcode/internal/resolver"
)

// Config is the configuration surface spec §6 fixes, plus the project
// root and worker-pool size (spec §5 "Parsing is parallelized across
// worker processes in a pool of size min(cores, 8), configurable").
type Config struct {
	ProjectRoot string

	Exclude                 []string
	DynamicPatterns         []string
	DIDecorators            []string
	DIContainerPatterns     []string
	DynamicPackageFields    []string
	GeneratedPatterns       []string
	UseUnifiedEntryDetector bool

	Workers int

	// RemoteEndpoints switches the parse phase from the local errgroup
	// pool to remoteparse's Agent2Agent-derived worker dispatch (spec §5
	// "remote" mode). Empty means local.
	RemoteEndpoints []string
	RemoteClient    remoteparse.Client
	RemoteChunkSize int
}

// Phase names used in progress events, in the order they occur.
const (
	PhaseDiscover    = "discover"
	PhaseParse       = "parse"
	PhaseContext     = "context"
	PhaseEntryPoints = "entrypoints"
	PhaseReachability = "reachability"
	PhaseClassify    = "classify"
)

// Event is the progress callback payload (spec §6 "Progress protocol").
type Event struct {
	Phase   string
	Percent float64
	Detail  string
	Current int
	Total   int
}

// ProgressFunc receives phase-boundary and in-parsing-chunk progress
// events. Passing nil is valid and disables reporting entirely.
type ProgressFunc func(Event)

// progressChunk is how many files the parse phase processes between
// progress callbacks (spec §5 "the driver yields to the scheduler every N
// files so progress callbacks fire").
const progressChunk = 200

// Result is the scan's output (spec §6 "Result shape").
type Result struct {
	FullyDeadFiles     []classify.Finding
	PartiallyDeadFiles []classify.Finding
	SkippedDynamic     []classify.Finding
	ExcludedGenerated  []string
	EntryPoints        []string
	Summary            classify.Summary
}

// Scan runs a full scan of cfg.ProjectRoot and returns the classified
// result (spec §2 data flow, §8 "a scan always succeeds"). ctx is observed
// at phase boundaries (spec §5 "Cancellation"); within a phase, only the
// local parse pool also stops starting new files once ctx is done, and
// other work already in flight runs to completion.
func Scan(ctx context.Context, cfg Config, progress ProgressFunc) (*Result, error) {
	report := func(ev Event) {
		if progress != nil {
			progress(ev)
		}
	}

	report(Event{Phase: PhaseDiscover, Percent: 0})
	all, err := discover.Walk(cfg.ProjectRoot, discover.Options{Exclude: cfg.Exclude})
	if err != nil {
		return nil, err
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	candidates, excludedGenerated := splitGenerated(cfg.ProjectRoot, all, cfg.GeneratedPatterns)
	report(Event{Phase: PhaseDiscover, Percent: 100, Total: len(candidates)})

	records, stats, parseErr := parseAll(ctx, cfg, candidates, report)
	if parseErr != nil {
		return nil, parseErr
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	report(Event{Phase: PhaseContext, Percent: 0})
	rctx := resolvectx.BuildContext(cfg.ProjectRoot, candidates)
	report(Event{Phase: PhaseContext, Percent: 100})
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	idx := index.Build(records, rctx.JavaSourceRoots)

	readFile := fileContentReader(cfg.ProjectRoot)

	report(Event{Phase: PhaseEntryPoints, Percent: 0})
	epCfg := entrypoint.Config{
		DynamicPatterns:      cfg.DynamicPatterns,
		DIDecorators:         cfg.DIDecorators,
		DIContainerPatterns:  cfg.DIContainerPatterns,
		DynamicPackageFields: cfg.DynamicPackageFields,
	}
	epResult := entrypoint.Detect(cfg.ProjectRoot, rctx, records, candidates, epCfg, readFile)
	report(Event{Phase: PhaseEntryPoints, Percent: 100, Total: len(epResult.Roots)})
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	report(Event{Phase: PhaseReachability, Percent: 0})
	res := resolver.New(rctx, idx)
	globs := reachability.GlobMatches(records, candidates)
	csharpRefs := reachability.BuildCSharpRefEdges(records, readFile)
	walkResult := reachability.Walk(records, idx, res, epResult.Roots, globs, csharpRefs)
	report(Event{Phase: PhaseReachability, Percent: 100, Total: len(walkResult.Reachable)})
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	report(Event{Phase: PhaseClassify, Percent: 0})
	recordsByPath := make(map[string]*model.FileRecord, len(records))
	for i := range records {
		recordsByPath[records[i].RelativePath] = &records[i]
	}
	classified := classify.Classify(candidates, walkResult.Reachable, recordsByPath, epResult.DynamicHits, stats, len(epResult.Roots))
	report(Event{Phase: PhaseClassify, Percent: 100})

	entryPoints := make([]string, 0, len(epResult.Roots))
	for p := range epResult.Roots {
		entryPoints = append(entryPoints, p)
	}
	sort.Strings(entryPoints)

	return &Result{
		FullyDeadFiles:     classified.FullyDeadFiles,
		PartiallyDeadFiles: classified.PartiallyDeadFiles,
		SkippedDynamic:     classified.SkippedDynamic,
		ExcludedGenerated:  excludedGenerated,
		EntryPoints:        entryPoints,
		Summary:            classified.Summary,
	}, nil
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// parseAll reads and parses every candidate file using internal/parseworkers'
// local errgroup pool of size min(cores, 8) (cfg.Workers replaces cores
// when set, and is still capped at 8), or its
// remote dispatch when cfg.RemoteEndpoints is set, reporting progress every
// progressChunk files (spec §5). Parsed records never retain source text
// beyond this function's scope (spec §5 "Resource budgets").
func parseAll(ctx context.Context, cfg Config, candidates []string, report ProgressFunc) ([]model.FileRecord, map[string]classify.FileStat, error) {
	progress := func(done, total int) {
		if done%progressChunk == 0 || done == total {
			report(Event{Phase: PhaseParse, Current: done, Total: total, Percent: 100 * float64(done) / float64(total)})
		}
	}

	var records []model.FileRecord
	var rawStats map[string]parseworkers.Stat
	var err error

	if len(cfg.RemoteEndpoints) > 0 && cfg.RemoteClient != nil {
		records, rawStats, err = parseworkers.RunRemote(ctx, cfg.RemoteClient, cfg.ProjectRoot, candidates, cfg.RemoteEndpoints, cfg.RemoteChunkSize, progress)
	} else {
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > 8 {
			workers = 8
		}
		if workers < 1 {
			workers = 1
		}
		records, rawStats, err = parseworkers.RunLocal(ctx, cfg.ProjectRoot, candidates, workers, progress)
	}
	if err != nil {
		return nil, nil, err
	}

	stats := make(map[string]classify.FileStat, len(rawStats))
	for path, s := range rawStats {
		stats[path] = classify.FileStat{SizeBytes: s.SizeBytes, LineCount: s.LineCount}
	}
	return records, stats, nil
}

// fileContentReader returns a closure the entrypoint/reachability
// packages use to read a candidate's raw text on demand (spec §4.3
// sources 3/8/9 and §4.6 step 6 need bytes the FileRecord contract
// doesn't carry).
func fileContentReader(root string) func(string) (string, bool) {
	return func(rel string) (string, bool) {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

// splitGenerated removes files matching a configured generatedPatterns
// regex (by path or a leading "Code generated" content marker) from the
// candidate set, tracking them separately as excludedGenerated (spec §6,
// §7 "a scan always succeeds ... plus auxiliary sets for ... generator-
// excluded files").
func splitGenerated(root string, all []string, patterns []string) (candidates []string, excluded []string) {
	if len(patterns) == 0 {
		return all, nil
	}
	var res []*regexp.Regexp
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			res = append(res, re)
		}
	}

	for _, f := range all {
		matched := false
		for _, re := range res {
			if re.MatchString(f) {
				matched = true
				break
			}
		}
		if !matched {
			if data, err := os.ReadFile(filepath.Join(root, f)); err == nil {
				head := data
				if len(head) > 200 {
					head = head[:200]
				}
				if strings.Contains(string(head), "Code generated") || strings.Contains(string(head), "DO NOT EDIT") {
					matched = true
				}
			}
		}
		if matched {
			excluded = append(excluded, f)
		} else {
			candidates = append(candidates, f)
		}
	}
	return candidates, excluded
}
