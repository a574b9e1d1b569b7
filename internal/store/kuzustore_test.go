//go:build cgo

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deadcode/internal/classify"
)

func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "verdicts.kuzu"))
	require.NoError(t, err, "NewFileStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func TestKuzuStore_InitSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestKuzuStore_PersistAndWhyDead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	candidates := []string{"main.go", "util.go", "dead.go"}
	reachable := map[string]bool{"main.go": true, "util.go": true, "dead.go": false}
	findings := []classify.Finding{
		{Path: "dead.go", Verdict: classify.VerdictUnreachable, SizeBytes: 42, LineCount: 3},
	}
	edges := map[string][]string{"main.go": {"util.go"}}

	require.NoError(t, s.PersistResult(ctx, candidates, nil, reachable, findings, edges))

	ex, err := s.WhyDead(ctx, "dead.go")
	require.NoError(t, err)
	require.NotNil(t, ex)
	require.Equal(t, "unreachable", ex.Verdict)

	ex, err = s.WhyDead(ctx, "util.go")
	require.NoError(t, err)
	require.NotNil(t, ex)
	require.Equal(t, "reachable", ex.Verdict)
	require.Contains(t, ex.ImportedBy, "main.go")
}

func TestKuzuStore_WhyDeadMissing(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.WhyDead(context.Background(), "nonexistent.go")
	require.NoError(t, err)
	require.Nil(t, ex)
}
