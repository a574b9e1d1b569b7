package mcptools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dusk-indust/deadcode/internal/analyzer"
	"github.com/dusk-indust/deadcode/internal/classify"
	"github.com/dusk-indust/deadcode/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DeadCodeService wraps internal/analyzer.Scan as an MCP tool so editors and
// agents can request a scan without shelling out to the CLI.
type DeadCodeService struct{}

// NewDeadCodeService constructs a DeadCodeService. It holds no state of its
// own; every scan config.Load()s the target project's deadcode.yml fresh.
func NewDeadCodeService() *DeadCodeService {
	return &DeadCodeService{}
}

// ScanInput is the input for the scan_dead_code MCP tool.
type ScanInput struct {
	RepoPath string   `json:"repoPath" jsonschema:"absolute path to the repository to scan"`
	Exclude  []string `json:"exclude,omitempty" jsonschema:"additional glob patterns to exclude, on top of deadcode.yml"`
	Workers  int      `json:"workers,omitempty" jsonschema:"parse worker-pool size (default: min(cores,8))"`
}

// ScanOutput is the result of the scan_dead_code MCP tool.
type ScanOutput struct {
	FullyDeadFiles     []classify.Finding `json:"fullyDeadFiles"`
	PartiallyDeadFiles []classify.Finding `json:"partiallyDeadFiles"`
	SkippedDynamic     []classify.Finding `json:"skippedDynamic"`
	ExcludedGenerated  []string           `json:"excludedGenerated"`
	EntryPoints        []string           `json:"entryPoints"`
	Summary            classify.Summary   `json:"summary"`
}

// Scan runs a full dead-code scan of input.RepoPath and returns the
// classified result.
func (s *DeadCodeService) Scan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScanInput,
) (*mcp.CallToolResult, ScanOutput, error) {
	if input.RepoPath == "" {
		return nil, ScanOutput{}, fmt.Errorf("repoPath is required")
	}
	root := input.RepoPath
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, ScanOutput{}, fmt.Errorf("resolving repoPath: %w", err)
		}
		root = abs
	}

	projCfg, err := config.Load(root)
	if err != nil {
		projCfg = &config.ProjectConfig{}
	}

	cfg := analyzer.Config{
		ProjectRoot:             root,
		Exclude:                 append(projCfg.Exclude, input.Exclude...),
		DynamicPatterns:         projCfg.DynamicPatterns,
		DIDecorators:            projCfg.DIDecorators,
		DIContainerPatterns:     projCfg.DIContainerPatterns,
		DynamicPackageFields:    projCfg.DynamicPackageFields,
		GeneratedPatterns:       projCfg.GeneratedPatterns,
		UseUnifiedEntryDetector: projCfg.UseUnifiedEntryDetector,
		Workers:                 input.Workers,
	}
	if cfg.Workers == 0 {
		cfg.Workers = projCfg.Workers
	}

	result, err := analyzer.Scan(ctx, cfg, nil)
	if err != nil {
		return nil, ScanOutput{}, fmt.Errorf("scan: %w", err)
	}

	return nil, ScanOutput{
		FullyDeadFiles:     result.FullyDeadFiles,
		PartiallyDeadFiles: result.PartiallyDeadFiles,
		SkippedDynamic:     result.SkippedDynamic,
		ExcludedGenerated:  result.ExcludedGenerated,
		EntryPoints:        result.EntryPoints,
		Summary:            result.Summary,
	}, nil
}
