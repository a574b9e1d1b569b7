package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deadcode/internal/analyzer"
)

func TestScan_DeadScanFixture(t *testing.T) {
	root, err := filepath.Abs("../../testdata/fixtures/dead_scan")
	require.NoError(t, err)

	result, err := analyzer.Scan(context.Background(), analyzer.Config{ProjectRoot: root}, nil)
	require.NoError(t, err)

	require.Contains(t, result.EntryPoints, "main.go")

	var deadPaths []string
	for _, f := range result.FullyDeadFiles {
		deadPaths = append(deadPaths, f.Path)
	}
	require.Contains(t, deadPaths, "dead.go")
	require.NotContains(t, deadPaths, "main.go")
	require.NotContains(t, deadPaths, "live.go")
}

func TestScan_EmptyProjectSucceeds(t *testing.T) {
	root := t.TempDir()

	result, err := analyzer.Scan(context.Background(), analyzer.Config{ProjectRoot: root}, nil)
	require.NoError(t, err)
	require.Empty(t, result.FullyDeadFiles)
	require.Equal(t, 0, result.Summary.CandidateCount)
}

func TestScan_ReportsProgressEvents(t *testing.T) {
	root, err := filepath.Abs("../../testdata/fixtures/dead_scan")
	require.NoError(t, err)

	var phases []string
	progress := func(ev analyzer.Event) {
		if len(phases) == 0 || phases[len(phases)-1] != ev.Phase {
			phases = append(phases, ev.Phase)
		}
	}

	_, err = analyzer.Scan(context.Background(), analyzer.Config{ProjectRoot: root}, progress)
	require.NoError(t, err)
	require.Contains(t, phases, analyzer.PhaseDiscover)
	require.Contains(t, phases, analyzer.PhaseParse)
	require.Contains(t, phases, analyzer.PhaseClassify)
}
