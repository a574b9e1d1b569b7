package mcptools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/deadcode/internal/analyzer"
	"github.com/dusk-indust/deadcode/internal/config"
	"github.com/dusk-indust/deadcode/internal/explain"
)

// ExplainInput is the input for the explain_file MCP tool.
type ExplainInput struct {
	RepoPath string `json:"repoPath" jsonschema:"absolute path to the repository to scan"`
	Path     string `json:"path" jsonschema:"project-relative path of the file to explain"`
}

// ExplainOutput is the evidence explain_file returns for one file.
type ExplainOutput struct {
	Status                string   `json:"status"`
	Verdict               string   `json:"verdict"`
	EntryPointsSearched   int      `json:"entryPointsSearched"`
	MatchedDynamicPattern string   `json:"matchedDynamicPattern,omitempty"`
	ImportedBy            []string `json:"importedBy,omitempty"`
}

// ExplainService re-scans a repository and reports why a single file was
// (or wasn't) classified as dead, the MCP-tool counterpart to `deadcode
// explain`'s re-scan path (cmd/deadcode/explain.go's explainFromScan).
type ExplainService struct{}

// NewExplainService constructs an ExplainService. It holds no state: every
// call re-scans, same as the CLI's no-`--store` path.
func NewExplainService() *ExplainService {
	return &ExplainService{}
}

// Explain scans input.RepoPath and reports input.Path's verdict evidence.
func (s *ExplainService) Explain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExplainInput,
) (*mcp.CallToolResult, ExplainOutput, error) {
	if input.RepoPath == "" || input.Path == "" {
		return nil, ExplainOutput{}, fmt.Errorf("repoPath and path are both required")
	}
	root := input.RepoPath
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, ExplainOutput{}, fmt.Errorf("resolving repoPath: %w", err)
		}
		root = abs
	}

	projCfg, err := config.Load(root)
	if err != nil {
		projCfg = &config.ProjectConfig{}
	}

	cfg := analyzer.Config{
		ProjectRoot:             root,
		Exclude:                 projCfg.Exclude,
		DynamicPatterns:         projCfg.DynamicPatterns,
		DIDecorators:            projCfg.DIDecorators,
		DIContainerPatterns:     projCfg.DIContainerPatterns,
		DynamicPackageFields:    projCfg.DynamicPackageFields,
		GeneratedPatterns:       projCfg.GeneratedPatterns,
		UseUnifiedEntryDetector: projCfg.UseUnifiedEntryDetector,
		Workers:                 projCfg.Workers,
	}

	result, err := analyzer.Scan(ctx, cfg, nil)
	if err != nil {
		return nil, ExplainOutput{}, fmt.Errorf("scan: %w", err)
	}

	status, ev := explain.Lookup(result, input.Path)
	return nil, ExplainOutput{
		Status:                status,
		Verdict:               ev.Verdict,
		EntryPointsSearched:   ev.EntryPointsSearched,
		MatchedDynamicPattern: ev.MatchedDynamicPattern,
		ImportedBy:            ev.ImportedBy,
	}, nil
}
