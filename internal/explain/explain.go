// Package explain renders the evidence behind a single file's verdict,
// adapted from the teacher's internal/status package: the same
// per-item table-printing idiom (internal/status.printStageTable),
// repointed from decomposition-stage completion to a dead-code verdict's
// entry-points-searched / dynamic-pattern / importer evidence.
package explain

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/deadcode/internal/analyzer"
	"github.com/dusk-indust/deadcode/internal/classify"
)

// Evidence is the BFS evidence `explain` prints for one candidate file.
type Evidence struct {
	Path                  string
	Verdict               string
	EntryPointsSearched   int
	MatchedDynamicPattern string
	ImportedBy            []string
}

// Format renders ev the way the teacher's printStageTable renders a
// DecompositionStatus: a short header line followed by an indented
// evidence table.
func Format(ev Evidence) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", ev.Path)
	fmt.Fprintf(&sb, "  verdict:              %s\n", ev.Verdict)
	fmt.Fprintf(&sb, "  entry points searched: %d\n", ev.EntryPointsSearched)

	if ev.MatchedDynamicPattern != "" {
		fmt.Fprintf(&sb, "  matched dynamic pattern: %s\n", ev.MatchedDynamicPattern)
	}

	if len(ev.ImportedBy) == 0 {
		sb.WriteString("  imported by:          (nothing)\n")
	} else {
		sb.WriteString("  imported by:\n")
		for _, p := range ev.ImportedBy {
			fmt.Fprintf(&sb, "    - %s\n", p)
		}
	}

	return sb.String()
}

// StatusEntryPoint, StatusDead, and StatusReachable are the three outcomes
// Lookup distinguishes: a target is either one of the scan's own entry
// points, a dead/possibly-live finding with BFS evidence attached, or a
// plain reachable file with no finding recorded for it at all.
const (
	StatusEntryPoint = "entry-point"
	StatusDead       = "dead"
	StatusReachable  = "reachable"
)

// Lookup locates target in a completed scan Result and returns the status
// plus, for StatusDead, the Evidence describing why. Shared by the CLI's
// `explain` command and the MCP server's `explain_file` tool so both
// render the same re-scan-and-search logic instead of duplicating it.
func Lookup(result *analyzer.Result, target string) (status string, ev Evidence) {
	for _, ep := range result.EntryPoints {
		if ep == target {
			return StatusEntryPoint, Evidence{Path: target, Verdict: StatusEntryPoint}
		}
	}

	for _, findings := range [][]classify.Finding{result.FullyDeadFiles, result.PartiallyDeadFiles, result.SkippedDynamic} {
		if f, ok := findFinding(findings, target); ok {
			return StatusDead, Evidence{
				Path:                  f.Path,
				Verdict:               string(f.Verdict),
				EntryPointsSearched:   f.EntryPointsSearched,
				MatchedDynamicPattern: f.MatchedDynamicPattern,
			}
		}
	}

	return StatusReachable, Evidence{Path: target, Verdict: StatusReachable}
}

func findFinding(findings []classify.Finding, path string) (classify.Finding, bool) {
	for _, f := range findings {
		if f.Path == path {
			return f, true
		}
	}
	return classify.Finding{}, false
}
