package store

import (
	"context"

	"github.com/dusk-indust/deadcode/internal/classify"
)

// VerdictStore persists one scan's file/verdict/import graph so later
// `explain` queries and the MCP server don't need the full scan in memory.
// All graph DB access goes through this interface, matching the teacher's
// own ADR-006 pattern (internal/graph/store.go).
type VerdictStore interface {
	InitSchema(ctx context.Context) error
	PersistResult(ctx context.Context, candidates []string, languages map[string]string, reachable map[string]bool, findings []classify.Finding, edges map[string][]string) error
	WhyDead(ctx context.Context, path string) (*Explanation, error)
	Close() error
}

// Explanation is the evidence WhyDead returns for a single file.
type Explanation struct {
	Path       string
	Verdict    string
	Language   string
	ImportedBy []string
}
