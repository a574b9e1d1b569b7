// Package resultexport serializes an analyzer.Result to a stable JSON
// document, adapted from the teacher's internal/export/json.go
// DecompositionExport pattern: a top-level struct plus encoding/json,
// rather than the task-file-parsing machinery the original file also
// carried (that part has no equivalent in a dead-code scan and was left
// behind, see DESIGN.md).
package resultexport

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dusk-indust/deadcode/internal/classify"
)

// ScanExport is the top-level JSON export structure for a completed scan.
type ScanExport struct {
	ExportedAt         string             `json:"exportedAt"`
	Summary            classify.Summary   `json:"summary"`
	EntryPoints        []string           `json:"entryPoints"`
	FullyDeadFiles     []classify.Finding `json:"fullyDeadFiles"`
	PartiallyDeadFiles []classify.Finding `json:"partiallyDeadFiles,omitempty"`
	SkippedDynamic     []classify.Finding `json:"skippedDynamic"`
	ExcludedGenerated  []string           `json:"excludedGenerated,omitempty"`
}

// ScanResult is the minimal shape resultexport needs from
// internal/analyzer.Result, restated here so this package doesn't import
// analyzer (it is a leaf formatting concern, not a pipeline stage).
type ScanResult struct {
	FullyDeadFiles     []classify.Finding
	PartiallyDeadFiles []classify.Finding
	SkippedDynamic     []classify.Finding
	ExcludedGenerated  []string
	EntryPoints        []string
	Summary            classify.Summary
}

// Build converts a scan result into the export shape, stamping the export
// time (callers supply it so this package never calls time.Now() from
// inside anything a test might replay).
func Build(result ScanResult, exportedAt time.Time) ScanExport {
	return ScanExport{
		ExportedAt:         exportedAt.UTC().Format(time.RFC3339),
		Summary:            result.Summary,
		EntryPoints:        result.EntryPoints,
		FullyDeadFiles:     result.FullyDeadFiles,
		PartiallyDeadFiles: result.PartiallyDeadFiles,
		SkippedDynamic:     result.SkippedDynamic,
		ExcludedGenerated:  result.ExcludedGenerated,
	}
}

// Write marshals export as indented JSON to w.
func Write(w io.Writer, export ScanExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
