// Package parseworkers runs the parse phase (spec §5) across a local
// errgroup-based worker pool or, for monorepos too large for one machine,
// a set of remote parse workers. Grounded on the teacher's
// internal/orchestrator/fanout.go FanOut, repointed from "dispatch to
// specialist agents" to "dispatch parse chunks."
package parseworkers

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/parse"
	"github.com/dusk-indust/deadcode/internal/remoteparse"
)

// Stat is the size/line-count pair recorded alongside each parsed file.
type Stat struct {
	SizeBytes int64
	LineCount int
}

// ProgressFunc reports completed/total after every file (local mode) or
// every chunk (remote mode). May be nil.
type ProgressFunc func(done, total int)

// RunLocal parses every candidate under root using an errgroup.Group pool
// of the given size (spec §5 "min(cores, 8)"), mirroring FanOut.Run's
// first-error-cancels-the-rest semantics.
func RunLocal(ctx context.Context, root string, candidates []string, workers int, progress ProgressFunc) ([]model.FileRecord, map[string]Stat, error) {
	records := make([]model.FileRecord, len(candidates))
	stats := make([]Stat, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := 0
	for i, rel := range candidates {
		i, rel := i, rel
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			abs := filepath.Join(root, rel)
			data, err := os.ReadFile(abs)
			if err != nil {
				records[i] = model.FileRecord{RelativePath: rel, Language: parse.LanguageForPath(rel)}
			} else {
				stats[i] = Stat{SizeBytes: int64(len(data)), LineCount: countLines(data)}
				records[i] = parse.File(rel, data, parse.LanguageForPath(rel))
			}

			mu.Lock()
			done++
			cur := done
			mu.Unlock()
			if progress != nil {
				progress(cur, len(candidates))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	statMap := make(map[string]Stat, len(candidates))
	for i, rel := range candidates {
		statMap[rel] = stats[i]
	}
	return records, statMap, nil
}

// RunRemote splits candidates into chunkSize-sized chunks and dispatches
// each to one endpoint from endpoints (round-robin), fanning out with the
// same errgroup.WithContext cancel-on-first-error pattern as RunLocal
// (spec §5 "remote" pool mode).
func RunRemote(ctx context.Context, client remoteparse.Client, root string, candidates []string, endpoints []string, chunkSize int, progress ProgressFunc) ([]model.FileRecord, map[string]Stat, error) {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	var chunks [][]string
	for i := 0; i < len(candidates); i += chunkSize {
		end := i + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunks = append(chunks, candidates[i:end])
	}

	results := make([][]model.FileRecord, len(chunks))
	stats := make(map[string]Stat, len(candidates))
	var statsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	var doneFiles int
	var progMu sync.Mutex

	for ci, chunk := range chunks {
		ci, chunk := ci, chunk
		endpoint := endpoints[ci%len(endpoints)]
		g.Go(func() error {
			contents := make(map[string][]byte, len(chunk))
			for _, rel := range chunk {
				data, err := os.ReadFile(filepath.Join(root, rel))
				if err == nil {
					contents[rel] = data
					statsMu.Lock()
					stats[rel] = Stat{SizeBytes: int64(len(data)), LineCount: countLines(data)}
					statsMu.Unlock()
				}
			}

			task, err := client.SendChunk(gctx, endpoint, remoteparse.ParseChunkRequest{
				ProjectRoot: root,
				Paths:       chunk,
				Contents:    contents,
			})
			if err != nil {
				return err
			}
			records, err := remoteparse.DecodeArtifactRecords(task)
			if err != nil {
				return err
			}
			results[ci] = records

			progMu.Lock()
			doneFiles += len(chunk)
			cur := doneFiles
			progMu.Unlock()
			if progress != nil {
				progress(cur, len(candidates))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var all []model.FileRecord
	for _, r := range results {
		all = append(all, r...)
	}
	return all, stats, nil
}

func countLines(data []byte) int {
	n := 1
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
