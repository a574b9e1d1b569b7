package explain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_DeadFileWithImporters(t *testing.T) {
	out := Format(Evidence{
		Path:                "dead.go",
		Verdict:             "unreachable",
		EntryPointsSearched: 3,
		ImportedBy:          []string{"unused_caller.go"},
	})
	require.Contains(t, out, "dead.go")
	require.Contains(t, out, "verdict:              unreachable")
	require.Contains(t, out, "entry points searched: 3")
	require.Contains(t, out, "unused_caller.go")
}

func TestFormat_NoImporters(t *testing.T) {
	out := Format(Evidence{Path: "orphan.go", Verdict: "unreachable"})
	require.Contains(t, out, "(nothing)")
}

func TestFormat_PossiblyLive(t *testing.T) {
	out := Format(Evidence{
		Path:                  "plugin.go",
		Verdict:               "possibly-live",
		MatchedDynamicPattern: `reflect\.ValueOf`,
	})
	require.Contains(t, out, "matched dynamic pattern")
	require.Contains(t, out, `reflect\.ValueOf`)
}
